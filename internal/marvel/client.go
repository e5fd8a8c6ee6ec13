package marvel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/herodex/internal/logging"
	"github.com/rshade/herodex/internal/pagination"
)

// DefaultBaseURL is the public Marvel API root.
const DefaultBaseURL = "https://gateway.marvel.com:443/v1/public/"

// Client fetches and normalizes characters from the Marvel API.
// It is safe for concurrent use.
type Client struct {
	// HTTPClient performs the requests. Replaceable in tests.
	HTTPClient *http.Client

	baseURL string
	apiKey  string
	logger  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.HTTPClient = &http.Client{Timeout: d}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.ComponentLogger(logger, "marvel")
	}
}

// NewClient returns a client for the API rooted at baseURL.
// An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	c := &Client{
		HTTPClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchJSON issues a GET to rawURL and decodes the JSON body into out.
// A status outside 2xx yields a *FetchError carrying the URL and status.
func (c *Client) FetchJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", redact(rawURL), err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = redact(ue.URL)
		}
		return fmt.Errorf("fetching %s: %w", redact(rawURL), err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("url", redact(rawURL)).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("marvel request")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &FetchError{URL: redact(rawURL), Status: resp.StatusCode}
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", redact(rawURL), err)
	}
	return nil
}

// GetAllCharacters returns one page of PageSize characters starting at offset,
// in server order. A negative offset selects pagination.DefaultOffset.
func (c *Client) GetAllCharacters(ctx context.Context, offset int) ([]Character, error) {
	if offset < 0 {
		offset = pagination.DefaultOffset
	}
	params := pagination.NewParams(offset)

	q := url.Values{}
	q.Set("limit", strconv.Itoa(params.Limit))
	q.Set("offset", strconv.Itoa(params.Offset))

	var env envelope
	if err := c.FetchJSON(ctx, c.endpoint("characters", q), &env); err != nil {
		return nil, err
	}

	chars := make([]Character, 0, len(env.Data.Results))
	for _, raw := range env.Data.Results {
		chars = append(chars, normalize(raw))
	}
	return chars, nil
}

// GetCharacterByID returns the character with the given id. A missing id
// surfaces as the underlying *FetchError (status 404).
func (c *Client) GetCharacterByID(ctx context.Context, id int) (Character, error) {
	var env envelope
	if err := c.FetchJSON(ctx, c.endpoint("characters/"+strconv.Itoa(id), url.Values{}), &env); err != nil {
		return Character{}, err
	}
	if len(env.Data.Results) == 0 {
		return Character{}, fmt.Errorf("character %d: %w", id, ErrNoResults)
	}
	return normalize(env.Data.Results[0]), nil
}

func (c *Client) endpoint(path string, q url.Values) string {
	if c.apiKey != "" {
		q.Set("apikey", c.apiKey)
	}
	return c.baseURL + path + "?" + q.Encode()
}

// redact strips the apikey query parameter so URLs can be logged and shown.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Has("apikey") {
		q.Set("apikey", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
