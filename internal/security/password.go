package security

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the work factor applied to stored account passwords.
const bcryptCost = 12

// HashPassword derives the bcrypt hash kept in the users table. Seeded and
// created accounts never store the plaintext.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored account hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
