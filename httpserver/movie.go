package httpserver

import (
	"movieshelf/errs"
	"movieshelf/movie"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	catalogFailureNotice = "영화 정보를 불러오는 데 실패했습니다: "
	featuredHeadline     = "오늘의 추천 영화: "
)

type featuredResponse struct {
	movie.Featured
	Headline string `json:"headline"`
	Button   string `json:"button"`
}

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/catalog/status", s.handleCatalogStatus)
	g.GET("/movies", s.handleListMovies)
	g.GET("/movies/search", s.handleSearchMovies)
	g.GET("/movies/detail", s.handleMovieDetail)
	g.GET("/genres", s.handleListGenres)
	g.GET("/featured", s.handleFeatured)
}

// handleCatalogStatus godoc
// @Summary Catalog Status
// @Description Whether the catalog was loaded, with a notice when loading failed
// @Tags movies
// @Produce json
// @Success 200 {object} movie.Status
// @Router /api/catalog/status [get]
func (s *Server) handleCatalogStatus(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}

	status := svc.CatalogStatus()
	if !status.Loaded {
		return writeNotice(c, http.StatusOK, status, catalogFailureNotice+status.Error)
	}
	return writeSuccess(c, http.StatusOK, status)
}

// handleListMovies godoc
// @Summary List Movies
// @Description The whole catalog in catalog order
// @Tags movies
// @Produce json
// @Success 200 {array} movie.Movie
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, svc.Catalog())
}

// handleSearchMovies godoc
// @Summary Search Movies
// @Description Filter movies by title substring, genre and year. All criteria are optional and combined with AND.
// @Tags movies
// @Produce json
// @Param title query string false "Title substring (case-insensitive)"
// @Param genre query string false "Genre (case-insensitive, exact)"
// @Param year query int false "Release year"
// @Success 200 {array} movie.Movie
// @Failure 400 {object} APIResponse
// @Router /api/movies/search [get]
func (s *Server) handleSearchMovies(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}

	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return movie.ErrInvalidQuery
	}
	filter, err := req.ToFilter()
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, svc.Search(filter))
}

// handleMovieDetail godoc
// @Summary Movie Detail
// @Description Resolve a movie by title, genre and year
// @Tags movies
// @Produce json
// @Param title query string true "Title"
// @Param genre query string false "Genre"
// @Param year query int true "Release year"
// @Success 200 {object} movie.Movie
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/detail [get]
func (s *Server) handleMovieDetail(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}

	id, err := bindIdentity(c)
	if err != nil {
		return err
	}
	m, err := svc.Detail(id)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, map[string]interface{}{
		"movie":      m,
		"inWishlist": svc.InWishlist(id),
		"label":      id.String(),
	})
}

// handleListGenres godoc
// @Summary List Genres
// @Description Genre picker options. The first, empty option means any genre.
// @Tags movies
// @Produce json
// @Success 200 {array} string
// @Router /api/genres [get]
func (s *Server) handleListGenres(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, append([]string{""}, svc.Genres()...))
}

// handleFeatured godoc
// @Summary Today's Recommendation
// @Tags movies
// @Produce json
// @Success 200 {object} featuredResponse
// @Failure 404 {object} APIResponse
// @Router /api/featured [get]
func (s *Server) handleFeatured(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}

	f, err := svc.Featured()
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, featuredResponse{
		Featured: f,
		Headline: featuredHeadline + f.Movie.Title,
		Button:   wishlistButton(f.InWishlist),
	})
}

func (s *Server) movieService() (movie.Service, error) {
	if s.MovieService == nil {
		return nil, errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}
	return s.MovieService, nil
}
