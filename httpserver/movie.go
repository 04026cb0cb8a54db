package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/danrneal/fs-casting-agency/errs"
)

func (s *Server) RegisterMovieRoutes() {
	g := s.Router.Group("/movies")
	g.GET("", s.handleListMovies, s.RequireScope(ScopeReadMovies))
	g.POST("", s.handleCreateMovie, s.RequireScope(ScopeCreateMovies))
	g.PATCH("/:movie_id", s.handleUpdateMovie, s.RequireScope(ScopeUpdateMovies))
	g.DELETE("/:movie_id", s.handleDeleteMovie, s.RequireScope(ScopeDeleteMovies))
}

func (s *Server) handleListMovies(c echo.Context) error {
	page := pageParam(c)

	movies, total, err := s.MovieService.ListMovies(c.Request().Context(), page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MovieListResponse{
		Success:     true,
		Movies:      formatMovies(movies),
		TotalMovies: total,
	})
}

func (s *Server) handleCreateMovie(c echo.Context) error {
	var req CreateMovieRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "malformed request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	created, err := s.MovieService.CreateMovie(c.Request().Context(), req.ToNewMovie())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MovieCreatedResponse{
		Success:        true,
		CreatedMovieID: created.ID,
		OldMovie:       nil,
		NewMovie:       formatMovie(created),
	})
}

func (s *Server) handleUpdateMovie(c echo.Context) error {
	id, err := entityID(c, "movie_id")
	if err != nil {
		return err
	}

	var req UpdateMovieRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "malformed request body")
	}

	old, updated, err := s.MovieService.UpdateMovie(c.Request().Context(), id, req.ToPatch())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MovieUpdatedResponse{
		Success:        true,
		UpdatedMovieID: updated.ID,
		OldMovie:       formatMovie(old),
		NewMovie:       formatMovie(updated),
	})
}

func (s *Server) handleDeleteMovie(c echo.Context) error {
	id, err := entityID(c, "movie_id")
	if err != nil {
		return err
	}

	deleted, err := s.MovieService.DeleteMovie(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MovieDeletedResponse{
		Success:        true,
		DeletedMovieID: deleted.ID,
		OldMovie:       formatMovie(deleted),
		NewMovie:       nil,
	})
}

// pageParam reads the page query parameter, falling back to the first
// page when it is absent or not an integer.
func pageParam(c echo.Context) int {
	raw := c.QueryParam("page")
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}

// entityID parses a numeric path parameter. A non-numeric id can never
// name a stored row, so it reads as a missing resource.
func entityID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, errs.Errorf(errs.ENOTFOUND, "no resource at this path")
	}
	return id, nil
}
