package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterAuthConfigRoutes() {
	s.Router.GET("/auth_config", s.handleAuthConfig)
}

// handleAuthConfig hands frontends the identity provider settings they
// need to start a login flow. It is the only unauthenticated data route.
func (s *Server) handleAuthConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, AuthConfigResponse{
		Domain:   s.AuthDomain,
		ClientID: s.AuthClientID,
		Audience: s.AuthAudience,
	})
}
