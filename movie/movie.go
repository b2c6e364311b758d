package movie

import (
	"fmt"

	"movieshelf/errs"
)

var (
	ErrInvalidQuery  = errs.Errorf(errs.EINVALID, "invalid search query")
	ErrMovieNotFound = errs.Errorf(errs.ENOTFOUND, "movie not found")
)

type Movie struct {
	Title    string `json:"title"`
	Genre    string `json:"genre"`
	Year     int    `json:"year"`
	Director string `json:"director"`
	Actors   string `json:"actors"`
}

// Identity is the triple a movie is addressed by. Titles alone are not unique.
type Identity struct {
	Title string `json:"title"`
	Genre string `json:"genre"`
	Year  int    `json:"year"`
}

func (m Movie) Identity() Identity {
	return Identity{Title: m.Title, Genre: m.Genre, Year: m.Year}
}

// String renders the display label, e.g. "기생충 (드라마, 2019)".
func (id Identity) String() string {
	return fmt.Sprintf("%s (%s, %d)", id.Title, id.Genre, id.Year)
}
