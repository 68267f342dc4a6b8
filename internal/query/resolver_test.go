package query

import (
	"errors"
	"testing"
)

func TestResolveDefaults(t *testing.T) {
	resolved, err := Resolve(Params{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Offset != 0 {
		t.Fatalf("offset = %d, want 0", resolved.Offset)
	}
	if resolved.Limit != DefaultPageSize {
		t.Fatalf("limit = %d, want %d", resolved.Limit, DefaultPageSize)
	}
	if resolved.SortField != SortByAmount || resolved.Direction != Ascending {
		t.Fatalf("sort = %s %s, want amount ASC", resolved.SortField, resolved.Direction)
	}
}

func TestResolvePageAndSize(t *testing.T) {
	resolved, err := Resolve(Params{Page: "2", Size: "5"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Offset != 10 {
		t.Fatalf("offset = %d, want 10", resolved.Offset)
	}
	if resolved.Limit != 5 {
		t.Fatalf("limit = %d, want 5", resolved.Limit)
	}
}

func TestResolveClampsOversizedPages(t *testing.T) {
	resolved, err := Resolve(Params{Size: "10000"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Limit != MaxPageSize {
		t.Fatalf("limit = %d, want %d", resolved.Limit, MaxPageSize)
	}
}

func TestResolveSortTokens(t *testing.T) {
	cases := []struct {
		sort      string
		field     SortField
		direction Direction
	}{
		{"amount", SortByAmount, Ascending},
		{"amount,desc", SortByAmount, Descending},
		{"amount,ASC", SortByAmount, Ascending},
		{"id,desc", SortByID, Descending},
	}
	for _, tc := range cases {
		resolved, err := Resolve(Params{Sort: tc.sort})
		if err != nil {
			t.Fatalf("resolve sort %q: %v", tc.sort, err)
		}
		if resolved.SortField != tc.field || resolved.Direction != tc.direction {
			t.Fatalf("sort %q = %s %s, want %s %s", tc.sort, resolved.SortField, resolved.Direction, tc.field, tc.direction)
		}
	}
}

func TestResolveRejectsMalformedParams(t *testing.T) {
	bad := []Params{
		{Page: "abc"},
		{Page: "-1"},
		{Size: "0"},
		{Size: "abc"},
		{Sort: "owner"},
		{Sort: "amount,sideways"},
		{Sort: "amount,desc,extra"},
	}
	for _, raw := range bad {
		_, err := Resolve(raw)
		if err == nil {
			t.Fatalf("expected error for params %+v", raw)
		}
		var qe *Error
		if !errors.As(err, &qe) {
			t.Fatalf("expected *query.Error for params %+v, got %T", raw, err)
		}
	}
}

func TestResolveRejectsPageOffsetOverflow(t *testing.T) {
	bad := []Params{
		{Page: "922337203685477580", Size: "100"},
		{Page: "9223372036854775807"},
	}
	for _, raw := range bad {
		resolved, err := Resolve(raw)
		if err == nil {
			t.Fatalf("expected error for params %+v, got offset %d", raw, resolved.Offset)
		}
		var qe *Error
		if !errors.As(err, &qe) {
			t.Fatalf("expected *query.Error for params %+v, got %T", raw, err)
		}
	}

	// The largest page that still fits must resolve with a non-negative offset.
	resolved, err := Resolve(Params{Page: "92233720368547758", Size: "100"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Offset < 0 {
		t.Fatalf("offset = %d, want >= 0", resolved.Offset)
	}
}

func TestOrderClauseAppendsIDTieBreak(t *testing.T) {
	resolved := Resolved{SortField: SortByAmount, Direction: Descending}
	if got := resolved.OrderClause(); got != "amount DESC, id ASC" {
		t.Fatalf("order clause = %q, want %q", got, "amount DESC, id ASC")
	}

	resolved = Resolved{SortField: SortByID, Direction: Ascending}
	if got := resolved.OrderClause(); got != "id ASC" {
		t.Fatalf("order clause = %q, want %q", got, "id ASC")
	}
}
