package httpserver

import (
	"movieshelf/movie"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	buttonAdd    = "찜하기"
	buttonRemove = "찜 취소"

	addedNotice   = "이(가) 찜한 목록에 추가되었습니다."
	removedNotice = "이(가) 찜한 목록에서 제거되었습니다."
)

// wishlistState is what a view needs to redraw its wishlist button.
type wishlistState struct {
	movie.Identity
	Label      string `json:"label"`
	InWishlist bool   `json:"inWishlist"`
	Button     string `json:"button"`
}

func newWishlistState(id movie.Identity, in bool) wishlistState {
	return wishlistState{
		Identity:   id,
		Label:      id.String(),
		InWishlist: in,
		Button:     wishlistButton(in),
	}
}

// wishlistButton is the label of the button that flips the current state.
func wishlistButton(in bool) string {
	if in {
		return buttonRemove
	}
	return buttonAdd
}

func (s *Server) RegisterWishlistRoutes(g *echo.Group) {
	g.GET("", s.handleListWishlist)
	g.POST("", s.handleAddToWishlist)
	g.DELETE("", s.handleRemoveFromWishlist)
	g.POST("/toggle", s.handleToggleWishlist)
	g.GET("/contains", s.handleWishlistContains)
}

// handleListWishlist godoc
// @Summary List Wishlist
// @Description Wishlisted movies in the order they were added
// @Tags wishlist
// @Produce json
// @Success 200 {array} movie.WishlistEntry
// @Router /api/wishlist [get]
func (s *Server) handleListWishlist(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, svc.Wishlist())
}

// handleAddToWishlist godoc
// @Summary Add To Wishlist
// @Tags wishlist
// @Accept json
// @Produce json
// @Param movie body IdentityRequest true "Movie identity"
// @Success 201 {object} wishlistState
// @Success 200 {object} wishlistState "already in the wishlist"
// @Failure 400 {object} APIResponse
// @Router /api/wishlist [post]
func (s *Server) handleAddToWishlist(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}

	id, err := bindIdentity(c)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if svc.AddToWishlist(id) {
		status = http.StatusCreated
	}
	return writeNotice(c, status, newWishlistState(id, true), id.String()+addedNotice)
}

// handleRemoveFromWishlist godoc
// @Summary Remove From Wishlist
// @Description Removing a movie that is not wishlisted is not an error
// @Tags wishlist
// @Accept json
// @Produce json
// @Param movie body IdentityRequest true "Movie identity"
// @Success 200 {object} wishlistState
// @Failure 400 {object} APIResponse
// @Router /api/wishlist [delete]
func (s *Server) handleRemoveFromWishlist(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}

	id, err := bindIdentity(c)
	if err != nil {
		return err
	}

	if !svc.RemoveFromWishlist(id) {
		return writeSuccess(c, http.StatusOK, newWishlistState(id, false))
	}
	return writeNotice(c, http.StatusOK, newWishlistState(id, false), id.String()+removedNotice)
}

// handleToggleWishlist godoc
// @Summary Toggle Wishlist
// @Description Adds the movie when absent, removes it otherwise, and returns the new state
// @Tags wishlist
// @Accept json
// @Produce json
// @Param movie body IdentityRequest true "Movie identity"
// @Success 200 {object} wishlistState
// @Failure 400 {object} APIResponse
// @Router /api/wishlist/toggle [post]
func (s *Server) handleToggleWishlist(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}

	id, err := bindIdentity(c)
	if err != nil {
		return err
	}

	in := svc.ToggleWishlist(id)
	notice := id.String() + removedNotice
	if in {
		notice = id.String() + addedNotice
	}
	return writeNotice(c, http.StatusOK, newWishlistState(id, in), notice)
}

// handleWishlistContains godoc
// @Summary Wishlist Membership
// @Tags wishlist
// @Produce json
// @Param title query string true "Title"
// @Param genre query string false "Genre"
// @Param year query int true "Release year"
// @Success 200 {object} wishlistState
// @Failure 400 {object} APIResponse
// @Router /api/wishlist/contains [get]
func (s *Server) handleWishlistContains(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}

	id, err := bindIdentity(c)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, newWishlistState(id, svc.InWishlist(id)))
}
