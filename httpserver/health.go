package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type healthResponse struct {
	Status  string `json:"status"`
	Catalog string `json:"catalog"`
	Movies  int    `json:"movies"`
}

func (s *Server) RegisterHealthRoutes() {
	s.Router.GET("/healthcheck", s.healthCheck)
}

// healthCheck godoc
// @Summary Health Check
// @Description Check if server is alive. A failed catalog load keeps the server up, catalog reports "empty" then.
// @Tags health
// @Success 200 {object} healthResponse
// @Router /healthcheck [get]
func (s *Server) healthCheck(c echo.Context) error {
	resp := healthResponse{Status: "OK", Catalog: "none"}
	if s.MovieService != nil {
		status := s.MovieService.CatalogStatus()
		resp.Movies = status.Count
		resp.Catalog = "loaded"
		if !status.Loaded {
			resp.Catalog = "empty"
		}
	}
	return writeSuccess(c, http.StatusOK, resp)
}
