package flatfile

import (
	"context"
	"errors"
	"io/fs"
	"movieshelf/movie"
	"os"
)

// Source reads the catalog from a text file with one movie per line.
type Source struct {
	Path string
}

func NewSource(path string) *Source {
	return &Source{Path: path}
}

func (s *Source) LoadMovies(_ context.Context) ([]movie.Movie, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &movie.LoadError{Kind: movie.LoadNotFound, Source: s.Path, Err: err}
	}
	if err != nil {
		return nil, &movie.LoadError{Kind: movie.LoadIOFailure, Source: s.Path, Err: err}
	}
	defer f.Close()

	return movie.ParseCatalog(f, s.Path)
}
