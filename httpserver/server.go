package httpserver

import (
	"context"
	"errors"
	"net/http"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/danrneal/fs-casting-agency/actor"
	"github.com/danrneal/fs-casting-agency/auth"
	"github.com/danrneal/fs-casting-agency/errs"
	"github.com/danrneal/fs-casting-agency/movie"
	"github.com/danrneal/fs-casting-agency/pkg/config"
	"github.com/danrneal/fs-casting-agency/pkg/sentry"
)

// Scopes guarding each endpoint.
const (
	ScopeReadMovies   = "read:movies"
	ScopeCreateMovies = "create:movies"
	ScopeUpdateMovies = "update:movies"
	ScopeDeleteMovies = "delete:movies"
	ScopeReadActors   = "read:actors"
	ScopeCreateActors = "create:actors"
	ScopeUpdateActors = "update:actors"
	ScopeDeleteActors = "delete:actors"
)

// permissionsKey is the context key holding the caller's granted scopes.
const permissionsKey = "permissions"

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	MovieService movie.Service

	ActorService actor.Service

	AuthService auth.Service

	// Identity provider settings exposed at /auth_config
	AuthDomain   string
	AuthClientID string
	AuthAudience string
}

func Default(cfg *config.Config) *Server {
	origins := cfg.AllowedOrigins()
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: origins,
		AuthDomain:   cfg.Auth.Domain,
		AuthClientID: cfg.Auth.ClientID,
		AuthAudience: cfg.Auth.Audience,
	}

	s.Router.HTTPErrorHandler = customHTTPErrorHandler
	s.Router.Validator = NewValidator()
	s.RegisterGlobalMiddlewares()
	s.RegisterHealthRoutes()
	s.RegisterAuthConfigRoutes()
	s.RegisterMovieRoutes()
	s.RegisterActorRoutes()
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

// RequireScope gates a route behind one permission scope. Authorization
// runs before the handler ever touches data; the granted scopes are
// stored on the request context for downstream use.
func (s *Server) RequireScope(scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)

			permissions, err := s.AuthService.Authorize(c.Request().Context(), header, scope)
			if err != nil {
				return err
			}

			c.Set(permissionsKey, permissions)
			return next(c)
		}
	}
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// customHTTPErrorHandler converts every failure into the uniform error
// envelope, keeping the authorization error's own code and status intact.
func customHTTPErrorHandler(err error, c echo.Context) {
	status, body := errorEnvelope(err)

	if status == http.StatusInternalServerError {
		sentry.WithContext(c).Error(err)
	}

	// Don't write response if already committed
	if !c.Response().Committed {
		if err := c.JSON(status, body); err != nil {
			c.Logger().Error(err)
		}
	}
}

func errorEnvelope(err error) (int, ErrorResponse) {
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		return authErr.Status, ErrorResponse{
			Success:     false,
			ErrorCode:   authErr.Code,
			Description: authErr.Description,
		}
	}

	if he, ok := err.(*echo.HTTPError); ok {
		switch he.Code {
		case http.StatusNotFound:
			return http.StatusNotFound, notFoundResponse
		case http.StatusMethodNotAllowed:
			return http.StatusMethodNotAllowed, ErrorResponse{
				Success:     false,
				ErrorCode:   "method_not_allowed",
				Description: "Incorrect request method was specified",
			}
		default:
			return he.Code, ErrorResponse{
				Success:     false,
				ErrorCode:   "bad_request",
				Description: "The request was malformed in some way",
			}
		}
	}

	switch errs.ErrorCode(err) {
	case errs.EINVALID:
		return http.StatusBadRequest, ErrorResponse{
			Success:     false,
			ErrorCode:   "bad_request",
			Description: "The request was malformed in some way",
		}
	case errs.ENOTFOUND:
		return http.StatusNotFound, notFoundResponse
	case errs.EUNPROCESSABLE:
		return http.StatusUnprocessableEntity, ErrorResponse{
			Success:     false,
			ErrorCode:   "unprocessable_entity",
			Description: "The request was unable to be fulfilled",
		}
	case errs.EUNAUTHORIZED:
		return http.StatusUnauthorized, ErrorResponse{
			Success:     false,
			ErrorCode:   "unauthorized",
			Description: "The request lacked valid credentials",
		}
	case errs.EFORBIDDEN:
		return http.StatusForbidden, ErrorResponse{
			Success:     false,
			ErrorCode:   "forbidden",
			Description: "Permission not found.",
		}
	case errs.ECONFLICT:
		return http.StatusConflict, ErrorResponse{
			Success:     false,
			ErrorCode:   "conflict",
			Description: "The request conflicts with existing state",
		}
	case errs.ENOTIMPLEMENTED:
		return http.StatusNotImplemented, ErrorResponse{
			Success:     false,
			ErrorCode:   "not_implemented",
			Description: "The requested operation is not implemented",
		}
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Success:     false,
			ErrorCode:   "internal_server_error",
			Description: "Something went wrong on the server",
		}
	}
}

var notFoundResponse = ErrorResponse{
	Success:     false,
	ErrorCode:   "not_found",
	Description: "The resource could not be found on the server",
}
