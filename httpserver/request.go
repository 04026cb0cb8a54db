package httpserver

import (
	"github.com/danrneal/fs-casting-agency/actor"
	"github.com/danrneal/fs-casting-agency/movie"
)

type CreateMovieRequest struct {
	Title       string   `json:"title" validate:"required,notblank"`
	ReleaseDate string   `json:"release_date" validate:"required,notblank"`
	Poster      string   `json:"poster" validate:"required,notblank"`
	Actors      []string `json:"actors"`
}

func (r CreateMovieRequest) ToNewMovie() movie.NewMovie {
	return movie.NewMovie{
		Title:       r.Title,
		ReleaseDate: r.ReleaseDate,
		Poster:      r.Poster,
		ActorNames:  r.Actors,
	}
}

// UpdateMovieRequest carries a partial overwrite. A field left out of the
// request body stays nil and the stored value is kept; an actors array that
// is present but empty clears the cast.
type UpdateMovieRequest struct {
	Title       *string   `json:"title"`
	ReleaseDate *string   `json:"release_date"`
	Poster      *string   `json:"poster"`
	Actors      *[]string `json:"actors"`
}

func (r UpdateMovieRequest) ToPatch() movie.Patch {
	return movie.Patch{
		Title:       r.Title,
		ReleaseDate: r.ReleaseDate,
		Poster:      r.Poster,
		ActorNames:  r.Actors,
	}
}

type CreateActorRequest struct {
	Name      string   `json:"name" validate:"required,notblank"`
	Birthdate string   `json:"birthdate" validate:"required,notblank"`
	Gender    string   `json:"gender" validate:"required,notblank"`
	Image     string   `json:"image" validate:"required,notblank"`
	Movies    []string `json:"movies"`
}

func (r CreateActorRequest) ToNewActor() actor.NewActor {
	return actor.NewActor{
		Name:        r.Name,
		Birthdate:   r.Birthdate,
		Gender:      r.Gender,
		Image:       r.Image,
		MovieTitles: r.Movies,
	}
}

type UpdateActorRequest struct {
	Name      *string   `json:"name"`
	Birthdate *string   `json:"birthdate"`
	Gender    *string   `json:"gender"`
	Image     *string   `json:"image"`
	Movies    *[]string `json:"movies"`
}

func (r UpdateActorRequest) ToPatch() actor.Patch {
	return actor.Patch{
		Name:        r.Name,
		Birthdate:   r.Birthdate,
		Gender:      r.Gender,
		Image:       r.Image,
		MovieTitles: r.Movies,
	}
}
