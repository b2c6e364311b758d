package movie

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"movieshelf/errs"
)

const (
	fieldSeparator = ","
	fieldCount     = 5
)

// Source loads the raw catalog records, in catalog order.
type Source interface {
	LoadMovies(ctx context.Context) ([]Movie, error)
}

type LoadErrorKind string

const (
	LoadNotFound      LoadErrorKind = "not_found"
	LoadIOFailure     LoadErrorKind = "io_failure"
	LoadMalformedYear LoadErrorKind = "malformed_year"
)

// LoadError is returned when a catalog cannot be loaded. It unwraps to the
// underlying cause and to an *errs.Error carrying the matching app code.
type LoadError struct {
	Kind   LoadErrorKind
	Source string
	Line   int
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Line > 0 && e.Err != nil:
		return fmt.Sprintf("load catalog %s: %s at line %d: %v", e.Source, e.Kind, e.Line, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("load catalog %s: %s: %v", e.Source, e.Kind, e.Err)
	}
	return fmt.Sprintf("load catalog %s: %s", e.Source, e.Kind)
}

func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.appError()}
	}
	return []error{e.appError(), e.Err}
}

func (e *LoadError) appError() *errs.Error {
	switch e.Kind {
	case LoadNotFound:
		return errs.Errorf(errs.ENOTFOUND, "catalog source %s not found", e.Source)
	case LoadMalformedYear:
		return errs.Errorf(errs.EINVALID, "catalog source %s has a malformed year at line %d", e.Source, e.Line)
	}
	return errs.Errorf(errs.EINTERNAL, "catalog source %s cannot be read", e.Source)
}

// IsLoadError reports whether err is a *LoadError of the given kind.
func IsLoadError(err error, kind LoadErrorKind) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Kind == kind
}

// Catalog is the immutable, ordered set of movies loaded at startup.
type Catalog struct {
	movies []Movie
}

// NewCatalog copies movies into a new catalog.
func NewCatalog(movies []Movie) *Catalog {
	c := &Catalog{movies: make([]Movie, len(movies))}
	copy(c.movies, movies)
	return c
}

// All returns a copy of every movie, in catalog order.
func (c *Catalog) All() []Movie {
	if c == nil {
		return []Movie{}
	}
	out := make([]Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.movies)
}

// Find returns the first movie whose identity is exactly id.
func (c *Catalog) Find(id Identity) (Movie, bool) {
	if c == nil {
		return Movie{}, false
	}
	for _, m := range c.movies {
		if m.Identity() == id {
			return m, true
		}
	}
	return Movie{}, false
}

// Genres returns the distinct genres in first-seen order. Genres differing
// only in case are reported once, spelled as first seen.
func (c *Catalog) Genres() []string {
	genres := []string{}
	if c == nil {
		return genres
	}
	seen := make(map[string]struct{})
	for _, m := range c.movies {
		key := strings.ToLower(m.Genre)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		genres = append(genres, m.Genre)
	}
	return genres
}

// ParseCatalog reads one movie per line as "title,genre,year,director,actors".
// Lines without exactly five fields are skipped. A non-numeric year aborts
// the whole load.
func ParseCatalog(r io.Reader, source string) ([]Movie, error) {
	movies := []Movie{}
	reader := bufio.NewReader(r)

	line := 0
	for {
		text, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, &LoadError{Kind: LoadIOFailure, Source: source, Err: readErr}
		}
		if text == "" && readErr != nil {
			break
		}
		line++

		m, ok, err := parseLine(strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r"))
		if err != nil {
			return nil, &LoadError{Kind: LoadMalformedYear, Source: source, Line: line, Err: err}
		}
		if ok {
			movies = append(movies, m)
		}
		if readErr != nil {
			break
		}
	}

	return movies, nil
}

// parseLine reports ok=false for a line without exactly five fields. Years
// must fit in 32 bits.
func parseLine(text string) (Movie, bool, error) {
	fields := splitFields(text)
	if len(fields) != fieldCount {
		return Movie{}, false, nil
	}

	year, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 32)
	if err != nil {
		return Movie{}, false, err
	}

	return Movie{
		Title:    strings.TrimSpace(fields[0]),
		Genre:    strings.TrimSpace(fields[1]),
		Year:     int(year),
		Director: strings.TrimSpace(fields[3]),
		Actors:   strings.TrimSpace(fields[4]),
	}, true, nil
}

// splitFields splits on commas and drops trailing empty fields, so
// "a,b,2019,d," counts as four fields.
func splitFields(line string) []string {
	fields := strings.Split(line, fieldSeparator)
	n := len(fields)
	for n > 1 && fields[n-1] == "" {
		n--
	}
	return fields[:n]
}
