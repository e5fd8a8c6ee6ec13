package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rshade/herodex/internal/marvel"
	"github.com/rshade/herodex/internal/pagination"
)

// PageResponse is the body of GET /api/characters.
type PageResponse struct {
	Offset     int                `json:"offset"`
	Limit      int                `json:"limit"`
	Count      int                `json:"count"`
	Ended      bool               `json:"ended"`
	NextOffset int                `json:"next_offset"`
	Results    []marvel.Character `json:"results"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(c echo.Context) error {
	params := pagination.FirstPage()
	if raw := c.QueryParam("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "offset must be an integer")
		}
		params = pagination.NewParams(offset)
	}
	if err := params.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	chars, err := s.source.GetAllCharacters(c.Request().Context(), params.Offset)
	if err != nil {
		return upstreamError(err)
	}
	if chars == nil {
		chars = []marvel.Character{}
	}

	return c.JSON(http.StatusOK, PageResponse{
		Offset:     params.Offset,
		Limit:      params.Limit,
		Count:      len(chars),
		Ended:      params.IsLastPage(len(chars)),
		NextOffset: params.Next().Offset,
		Results:    chars,
	})
}

func (s *Server) handleGet(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}
	return s.writeCharacter(c, id)
}

func (s *Server) handleRandom(c echo.Context) error {
	return s.writeCharacter(c, s.pickID())
}

func (s *Server) writeCharacter(c echo.Context, id int) error {
	char, err := s.source.GetCharacterByID(c.Request().Context(), id)
	if err != nil {
		return upstreamError(err)
	}
	return c.JSON(http.StatusOK, char)
}

// upstreamError maps a data service failure to an HTTP error. Upstream 4xx
// and 5xx statuses pass through; anything else is a bad gateway.
func upstreamError(err error) *echo.HTTPError {
	var fetchErr *marvel.FetchError
	switch {
	case errors.Is(err, marvel.ErrNoResults), marvel.IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, "character not found").SetInternal(err)
	case errors.As(err, &fetchErr) && isErrorStatus(fetchErr.Status):
		return echo.NewHTTPError(fetchErr.Status, "upstream request failed").SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusBadGateway, "upstream unavailable").SetInternal(err)
	}
}

func isErrorStatus(status int) bool {
	return status >= http.StatusBadRequest && status <= 599
}
