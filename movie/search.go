package movie

import "strings"

// Filter holds the optional search criteria. Zero values match everything.
type Filter struct {
	// Title is matched as a case-insensitive substring of the movie title.
	Title string
	// Genre is matched case-insensitively against the whole genre.
	Genre string
	// Year, when set, must equal the movie year.
	Year *int
}

func (f Filter) matches(m Movie, title string) bool {
	if title != "" && !strings.Contains(strings.ToLower(m.Title), title) {
		return false
	}
	if f.Genre != "" && !strings.EqualFold(m.Genre, f.Genre) {
		return false
	}
	if f.Year != nil && m.Year != *f.Year {
		return false
	}
	return true
}

// Search returns the movies matching every criterion of f, in catalog order.
func Search(c *Catalog, f Filter) []Movie {
	results := []Movie{}
	if c == nil {
		return results
	}

	title := strings.ToLower(f.Title)
	for _, m := range c.movies {
		if f.matches(m, title) {
			results = append(results, m)
		}
	}
	return results
}
