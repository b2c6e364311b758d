package httpserver

import (
	"movieshelf/errs"
	"movieshelf/movie"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// IdentityRequest addresses one movie by its identity triple, from the query
// string or a JSON body. Year is a pointer so that year 0 is a valid value.
type IdentityRequest struct {
	Title string `json:"title" query:"title" validate:"required,notblank,max=500"`
	Genre string `json:"genre" query:"genre" validate:"max=200"`
	Year  *int   `json:"year" query:"year" validate:"required"`
}

func (r IdentityRequest) ToIdentity() movie.Identity {
	id := movie.Identity{Title: r.Title, Genre: r.Genre}
	if r.Year != nil {
		id.Year = *r.Year
	}
	return id
}

// SearchRequest carries the raw search form. Empty fields do not filter.
type SearchRequest struct {
	Title string `query:"title"`
	Genre string `query:"genre"`
	Year  string `query:"year"`
}

func (r SearchRequest) ToFilter() (movie.Filter, error) {
	f := movie.Filter{Title: r.Title, Genre: r.Genre}

	if raw := strings.TrimSpace(r.Year); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return movie.Filter{}, movie.ErrInvalidQuery
		}
		f.Year = &year
	}
	return f, nil
}

func bindIdentity(c echo.Context) (movie.Identity, error) {
	var req IdentityRequest
	if err := c.Bind(&req); err != nil {
		return movie.Identity{}, errs.Errorf(errs.EINVALID, "invalid movie identity")
	}
	// An empty year query parameter binds as zero.
	if bindsQuery(c.Request().Method) && c.QueryParams().Has("year") && strings.TrimSpace(c.QueryParam("year")) == "" {
		req.Year = nil
	}
	if err := c.Validate(&req); err != nil {
		return movie.Identity{}, err
	}
	return req.ToIdentity(), nil
}

// bindsQuery mirrors echo's DefaultBinder, which binds query parameters only
// for these methods.
func bindsQuery(method string) bool {
	return method == http.MethodGet || method == http.MethodDelete || method == http.MethodHead
}
