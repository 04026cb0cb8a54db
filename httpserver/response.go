package httpserver

import (
	"github.com/danrneal/fs-casting-agency/actor"
	"github.com/danrneal/fs-casting-agency/movie"
)

// ErrorResponse is the envelope every failed request is answered with.
type ErrorResponse struct {
	Success     bool   `json:"success"`
	ErrorCode   string `json:"error_code"`
	Description string `json:"description"`
}

type MovieResponse struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	ReleaseDate string             `json:"release_date"`
	Poster      string             `json:"poster"`
	Actors      []ActorRefResponse `json:"actors"`
}

type ActorRefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ActorResponse struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Birthdate string             `json:"birthdate"`
	Gender    string             `json:"gender"`
	Image     string             `json:"image"`
	Movies    []MovieRefResponse `json:"movies"`
}

type MovieRefResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}

type MovieListResponse struct {
	Success     bool            `json:"success"`
	Movies      []MovieResponse `json:"movies"`
	TotalMovies int64           `json:"total_movies"`
}

type MovieCreatedResponse struct {
	Success        bool           `json:"success"`
	CreatedMovieID int64          `json:"created_movie_id"`
	OldMovie       *MovieResponse `json:"old_movie"`
	NewMovie       *MovieResponse `json:"new_movie"`
}

type MovieUpdatedResponse struct {
	Success        bool           `json:"success"`
	UpdatedMovieID int64          `json:"updated_movie_id"`
	OldMovie       *MovieResponse `json:"old_movie"`
	NewMovie       *MovieResponse `json:"new_movie"`
}

type MovieDeletedResponse struct {
	Success        bool           `json:"success"`
	DeletedMovieID int64          `json:"deleted_movie_id"`
	OldMovie       *MovieResponse `json:"old_movie"`
	NewMovie       *MovieResponse `json:"new_movie"`
}

type ActorListResponse struct {
	Success     bool            `json:"success"`
	Actors      []ActorResponse `json:"actors"`
	TotalActors int64           `json:"total_actors"`
}

type ActorCreatedResponse struct {
	Success        bool           `json:"success"`
	CreatedActorID int64          `json:"created_actor_id"`
	OldActor       *ActorResponse `json:"old_actor"`
	NewActor       *ActorResponse `json:"new_actor"`
}

type ActorUpdatedResponse struct {
	Success        bool           `json:"success"`
	UpdatedActorID int64          `json:"updated_actor_id"`
	OldActor       *ActorResponse `json:"old_actor"`
	NewActor       *ActorResponse `json:"new_actor"`
}

type ActorDeletedResponse struct {
	Success        bool           `json:"success"`
	DeletedActorID int64          `json:"deleted_actor_id"`
	OldActor       *ActorResponse `json:"old_actor"`
	NewActor       *ActorResponse `json:"new_actor"`
}

type AuthConfigResponse struct {
	Domain   string `json:"domain"`
	ClientID string `json:"client_id"`
	Audience string `json:"audience"`
}

func formatMovie(m movie.Movie) *MovieResponse {
	actors := make([]ActorRefResponse, 0, len(m.Actors))
	for _, a := range m.Actors {
		actors = append(actors, ActorRefResponse{ID: a.ID, Name: a.Name})
	}
	return &MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseDate: m.ReleaseDate.Format(movie.DateLayout),
		Poster:      m.Poster,
		Actors:      actors,
	}
}

func formatMovies(movies []movie.Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, *formatMovie(m))
	}
	return out
}

func formatActor(a actor.Actor) *ActorResponse {
	movies := make([]MovieRefResponse, 0, len(a.Movies))
	for _, m := range a.Movies {
		movies = append(movies, MovieRefResponse{
			ID:          m.ID,
			Title:       m.Title,
			ReleaseDate: m.ReleaseDate.Format(actor.DateLayout),
		})
	}
	return &ActorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Birthdate: a.Birthdate.Format(actor.DateLayout),
		Gender:    a.Gender,
		Image:     a.Image,
		Movies:    movies,
	}
}

func formatActors(actors []actor.Actor) []ActorResponse {
	out := make([]ActorResponse, 0, len(actors))
	for _, a := range actors {
		out = append(out, *formatActor(a))
	}
	return out
}
