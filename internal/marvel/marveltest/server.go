// Package marveltest serves a fake Marvel catalog over httptest for tests.
package marveltest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/rshade/herodex/internal/marvel"
)

// APIKey is the key the fake server expects.
const APIKey = "test-key"

// FirstID is the id of the first record produced by Catalog.
const FirstID = 1011000

// Record is one raw catalog entry.
type Record struct {
	ID          int
	Name        string
	Description string
	ThumbPath   string
	ThumbExt    string
	URLs        []string
	Comics      []string
}

// Catalog returns n records with sequential ids starting at FirstID.
func Catalog(n int) []Record {
	records := make([]Record, n)
	for i := range records {
		id := FirstID + i
		records[i] = Record{
			ID:          id,
			Name:        "Character " + strconv.Itoa(id),
			Description: "Description of " + strconv.Itoa(id),
			ThumbPath:   "http://i.annihil.us/u/prod/marvel/i/mg/" + strconv.Itoa(id),
			ThumbExt:    "jpg",
			URLs: []string{
				"http://marvel.com/characters/" + strconv.Itoa(id),
				"http://marvel.com/universe/" + strconv.Itoa(id),
			},
			Comics: []string{"Comic A " + strconv.Itoa(id), "Comic B " + strconv.Itoa(id)},
		}
	}
	return records
}

// Server is a fake catalog API.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	records  []Record
	failures map[string]int
	requests []string
}

// NewServer starts a fake API holding records. It is closed on test cleanup.
func NewServer(t testing.TB, records []Record) *Server {
	t.Helper()

	s := &Server{records: records, failures: map[string]int{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// BaseURL returns the API root to pass to marvel.NewClient.
func (s *Server) BaseURL() string {
	return s.URL + "/v1/public/"
}

// Client returns a marvel.Client wired to the fake server.
func (s *Server) Client() *marvel.Client {
	c := marvel.NewClient(s.BaseURL(), APIKey)
	c.HTTPClient = s.Server.Client()
	return c
}

// Fail makes every request whose path ends with suffix answer with status.
func (s *Server) Fail(suffix string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[suffix] = status
}

// Requests returns the request URIs received so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.URL.RequestURI())
	failures := s.failures
	s.mu.Unlock()

	for suffix, status := range failures {
		if strings.HasSuffix(r.URL.Path, suffix) {
			http.Error(w, http.StatusText(status), status)
			return
		}
	}

	if r.URL.Query().Get("apikey") != APIKey {
		http.Error(w, `{"code":"InvalidCredentials"}`, http.StatusUnauthorized)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/v1/public/")
	switch {
	case path == "characters":
		s.handleList(w, r)
	case strings.HasPrefix(path, "characters/"):
		s.handleOne(w, strings.TrimPrefix(path, "characters/"))
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	start := min(offset, len(s.records))
	end := min(start+limit, len(s.records))
	writeResults(w, s.records[start:end])
}

func (s *Server) handleOne(w http.ResponseWriter, rawID string) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		http.Error(w, "bad id", http.StatusConflict)
		return
	}
	for _, rec := range s.records {
		if rec.ID == id {
			writeResults(w, []Record{rec})
			return
		}
	}
	http.Error(w, `{"code":404,"status":"We couldn't find that character"}`, http.StatusNotFound)
}

func writeResults(w http.ResponseWriter, records []Record) {
	results := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		urls := make([]map[string]string, 0, len(rec.URLs))
		for _, u := range rec.URLs {
			urls = append(urls, map[string]string{"type": "detail", "url": u})
		}
		items := make([]map[string]string, 0, len(rec.Comics))
		for _, c := range rec.Comics {
			items = append(items, map[string]string{"name": c})
		}
		results = append(results, map[string]any{
			"id":          rec.ID,
			"name":        rec.Name,
			"description": rec.Description,
			"thumbnail":   map[string]string{"path": rec.ThumbPath, "extension": rec.ThumbExt},
			"urls":        urls,
			"comics":      map[string]any{"items": items},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code": http.StatusOK,
		"data": map[string]any{"count": len(results), "results": results},
	})
}
