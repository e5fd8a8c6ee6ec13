// Package marvel is the data service for the Marvel character catalog.
//
// Client issues plain HTTP GET requests against the public API, checks the
// response status, decodes the JSON envelope and normalizes raw records into
// Character values. It holds no mutable state and is shared by every view.
package marvel
