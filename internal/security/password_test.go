package security

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, errHash := HashPassword("abc123")
	if errHash != nil {
		t.Fatalf("hash password: %v", errHash)
	}
	if hash == "abc123" {
		t.Fatalf("hash must not equal the plaintext")
	}

	if !CheckPassword(hash, "abc123") {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatalf("expected mismatched password to fail")
	}
	if CheckPassword("not-a-hash", "abc123") {
		t.Fatalf("expected malformed hash to fail")
	}
}
