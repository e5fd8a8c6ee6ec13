// Package pagination provides offset-based paging over the character catalog.
//
// The catalog is read in fixed pages of PageSize records. A page shorter than
// PageSize marks the end of the catalog:
//   - Params: offset/limit pair with validation
//   - Next: the params for the page that follows
//   - IsLastPage: end-of-catalog detection from a page length
package pagination
