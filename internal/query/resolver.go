// Package query normalizes raw page/size/sort request parameters into a
// bounded, deterministic query descriptor.
package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Paging defaults and bounds.
const (
	// DefaultPageSize is applied when no size parameter is present.
	DefaultPageSize = 20
	// MaxPageSize bounds the records returned by a single list call.
	MaxPageSize = 100
)

// SortField is the closed set of sortable card columns.
type SortField string

const (
	// SortByAmount sorts by the card amount.
	SortByAmount SortField = "amount"
	// SortByID sorts by the card id.
	SortByID SortField = "id"
)

// Direction is a sort direction.
type Direction string

const (
	// Ascending sorts smallest first.
	Ascending Direction = "ASC"
	// Descending sorts largest first.
	Descending Direction = "DESC"
)

// Error describes a malformed query parameter. The transport layer treats it
// as a client error rather than a server failure.
type Error struct {
	Param string // Parameter name: page, size, or sort.
	Value string // Offending raw value.
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("query: invalid %s %q", e.Param, e.Value)
}

// Params carries the raw, optional query parameters as received on the wire.
type Params struct {
	Page string `form:"page"`
	Size string `form:"size"`
	Sort string `form:"sort"`
}

// Resolved is the canonical query descriptor derived from Params.
type Resolved struct {
	Offset    int
	Limit     int
	SortField SortField
	Direction Direction
}

// OrderClause renders the descriptor as a SQL ORDER BY expression. The id
// tie-break keeps paging stable when amounts collide.
func (r Resolved) OrderClause() string {
	if r.SortField == SortByID {
		return fmt.Sprintf("id %s", r.Direction)
	}
	return fmt.Sprintf("%s %s, id ASC", r.SortField, r.Direction)
}

// Resolve validates raw parameters and produces the canonical descriptor.
// Missing parameters fall back to page 0, size 20, sort amount ascending;
// malformed parameters are an error, never silently defaulted.
func Resolve(raw Params) (Resolved, error) {
	resolved := Resolved{
		Offset:    0,
		Limit:     DefaultPageSize,
		SortField: SortByAmount,
		Direction: Ascending,
	}

	page := 0
	if trimmed := strings.TrimSpace(raw.Page); trimmed != "" {
		n, err := strconv.Atoi(trimmed)
		if err != nil || n < 0 {
			return Resolved{}, &Error{Param: "page", Value: raw.Page}
		}
		page = n
	}

	if trimmed := strings.TrimSpace(raw.Size); trimmed != "" {
		size, err := strconv.Atoi(trimmed)
		if err != nil || size < 1 {
			return Resolved{}, &Error{Param: "size", Value: raw.Size}
		}
		if size > MaxPageSize {
			size = MaxPageSize
		}
		resolved.Limit = size
	}

	// The offset must stay non-negative; reject pages whose product with
	// the effective size would wrap.
	if page > math.MaxInt/resolved.Limit {
		return Resolved{}, &Error{Param: "page", Value: raw.Page}
	}
	resolved.Offset = page * resolved.Limit

	if trimmed := strings.TrimSpace(raw.Sort); trimmed != "" {
		field, direction, err := parseSort(trimmed)
		if err != nil {
			return Resolved{}, err
		}
		resolved.SortField = field
		resolved.Direction = direction
	}

	return resolved, nil
}

// parseSort parses "field" or "field,direction" sort tokens.
func parseSort(token string) (SortField, Direction, error) {
	parts := strings.Split(token, ",")
	if len(parts) > 2 {
		return "", "", &Error{Param: "sort", Value: token}
	}

	var field SortField
	switch strings.ToLower(strings.TrimSpace(parts[0])) {
	case string(SortByAmount):
		field = SortByAmount
	case string(SortByID):
		field = SortByID
	default:
		return "", "", &Error{Param: "sort", Value: token}
	}

	direction := Ascending
	if len(parts) == 2 {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "asc":
			direction = Ascending
		case "desc":
			direction = Descending
		default:
			return "", "", &Error{Param: "sort", Value: token}
		}
	}

	return field, direction, nil
}
