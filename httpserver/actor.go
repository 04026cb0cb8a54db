package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/danrneal/fs-casting-agency/errs"
)

func (s *Server) RegisterActorRoutes() {
	g := s.Router.Group("/actors")
	g.GET("", s.handleListActors, s.RequireScope(ScopeReadActors))
	g.POST("", s.handleCreateActor, s.RequireScope(ScopeCreateActors))
	g.PATCH("/:actor_id", s.handleUpdateActor, s.RequireScope(ScopeUpdateActors))
	g.DELETE("/:actor_id", s.handleDeleteActor, s.RequireScope(ScopeDeleteActors))
}

func (s *Server) handleListActors(c echo.Context) error {
	page := pageParam(c)

	actors, total, err := s.ActorService.ListActors(c.Request().Context(), page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ActorListResponse{
		Success:     true,
		Actors:      formatActors(actors),
		TotalActors: total,
	})
}

func (s *Server) handleCreateActor(c echo.Context) error {
	var req CreateActorRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "malformed request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	created, err := s.ActorService.CreateActor(c.Request().Context(), req.ToNewActor())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ActorCreatedResponse{
		Success:        true,
		CreatedActorID: created.ID,
		OldActor:       nil,
		NewActor:       formatActor(created),
	})
}

func (s *Server) handleUpdateActor(c echo.Context) error {
	id, err := entityID(c, "actor_id")
	if err != nil {
		return err
	}

	var req UpdateActorRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "malformed request body")
	}

	old, updated, err := s.ActorService.UpdateActor(c.Request().Context(), id, req.ToPatch())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ActorUpdatedResponse{
		Success:        true,
		UpdatedActorID: updated.ID,
		OldActor:       formatActor(old),
		NewActor:       formatActor(updated),
	})
}

func (s *Server) handleDeleteActor(c echo.Context) error {
	id, err := entityID(c, "actor_id")
	if err != nil {
		return err
	}

	deleted, err := s.ActorService.DeleteActor(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ActorDeletedResponse{
		Success:        true,
		DeletedActorID: deleted.ID,
		OldActor:       formatActor(deleted),
		NewActor:       nil,
	})
}
