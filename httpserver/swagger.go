package httpserver

import echoSwagger "github.com/swaggo/echo-swagger"

// RegisterSwaggerRoutes serves the API docs generated by swag from the
// handler annotations.
//
// @title movieshelf API
// @version 1.0
// @description Movie catalog search and wishlist.
// @BasePath /
func (s *Server) RegisterSwaggerRoutes() {
	s.Router.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.DocExpansion("none")))
}
