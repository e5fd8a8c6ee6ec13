package marvel

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoResults indicates a successful response with an empty result set.
var ErrNoResults = errors.New("no characters in response")

// FetchError reports a response whose status is outside the 2xx range.
type FetchError struct {
	URL    string
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("could not fetch %s, status %d", e.URL, e.Status)
}

// IsNotFound reports whether err wraps a FetchError with status 404.
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Status == http.StatusNotFound
}
