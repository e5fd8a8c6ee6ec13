package pagination

import (
	"errors"
	"fmt"
)

// Paging defaults for the character catalog.
const (
	PageSize      = 9
	DefaultOffset = 210
	MinOffset     = 0
)

// Common validation errors.
var (
	ErrInvalidOffset = errors.New("offset must be non-negative")
	ErrInvalidLimit  = errors.New("limit must be positive")
)

// Params holds one page request.
type Params struct {
	// Offset is the number of catalog records to skip.
	Offset int

	// Limit is the number of records requested.
	Limit int
}

// NewParams returns params for the page starting at offset with the fixed page size.
func NewParams(offset int) Params {
	return Params{Offset: offset, Limit: PageSize}
}

// FirstPage returns params for the initial page.
func FirstPage() Params {
	return NewParams(DefaultOffset)
}

// Validate checks that the params describe a readable page (value receiver).
func (p Params) Validate() error {
	if p.Offset < MinOffset {
		return fmt.Errorf("%w: got %d", ErrInvalidOffset, p.Offset)
	}
	if p.Limit <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, p.Limit)
	}
	return nil
}

// Next returns the params for the page after p.
func (p Params) Next() Params {
	return Params{Offset: p.Offset + p.Limit, Limit: p.Limit}
}

// IsLastPage reports whether a page of n records ends the catalog.
func (p Params) IsLastPage(n int) bool {
	return n < p.Limit
}
