package movie

import (
	"context"
	"strings"
	"time"

	"github.com/danrneal/fs-casting-agency/errs"
)

// PageSize is the fixed number of movies per listing page.
const PageSize = 25

type Service interface {
	ListMovies(ctx context.Context, page int) ([]Movie, int64, error)
	CreateMovie(ctx context.Context, n NewMovie) (Movie, error)
	UpdateMovie(ctx context.Context, id int64, p Patch) (old Movie, updated Movie, err error)
	DeleteMovie(ctx context.Context, id int64) (Movie, error)
}

type Repository interface {
	// ListMovies returns one page of movies ordered by title ascending,
	// plus the total number of movies.
	ListMovies(ctx context.Context, offset, limit int) ([]Movie, int64, error)
	GetMovie(ctx context.Context, id int64) (Movie, error)
	CreateMovie(ctx context.Context, m Movie) (Movie, error)
	// UpdateMovie persists m's scalar fields; when replaceActors is set the
	// join rows are fully replaced with m.Actors in the same transaction.
	UpdateMovie(ctx context.Context, m Movie, replaceActors bool) (Movie, error)
	DeleteMovie(ctx context.Context, id int64) error
}

// ActorResolver translates actor names into persisted actor references.
// The first unresolved name aborts with an EINVALID error.
type ActorResolver interface {
	ActorsByName(ctx context.Context, names []string) ([]ActorRef, error)
}

type Usecase struct {
	r      Repository
	actors ActorResolver
}

func NewUsecase(r Repository, actors ActorResolver) *Usecase {
	return &Usecase{r: r, actors: actors}
}

func (uc *Usecase) ListMovies(ctx context.Context, page int) ([]Movie, int64, error) {
	if page < 1 {
		return nil, 0, ErrEmptyPage
	}

	movies, total, err := uc.r.ListMovies(ctx, (page-1)*PageSize, PageSize)
	if err != nil {
		return nil, 0, err
	}

	if len(movies) == 0 {
		return nil, 0, ErrEmptyPage
	}

	return movies, total, nil
}

func (uc *Usecase) CreateMovie(ctx context.Context, n NewMovie) (Movie, error) {
	if err := n.Validate(); err != nil {
		return Movie{}, err
	}

	releaseDate, err := time.Parse(DateLayout, n.ReleaseDate)
	if err != nil {
		return Movie{}, ErrInvalidDate
	}

	actors, err := uc.actors.ActorsByName(ctx, n.ActorNames)
	if err != nil {
		return Movie{}, err
	}

	return uc.r.CreateMovie(ctx, Movie{
		Title:       n.Title,
		ReleaseDate: releaseDate,
		Poster:      n.Poster,
		Actors:      actors,
	})
}

func (uc *Usecase) UpdateMovie(ctx context.Context, id int64, p Patch) (Movie, Movie, error) {
	if p.Empty() {
		return Movie{}, Movie{}, ErrEmptyPatch
	}

	m, err := uc.r.GetMovie(ctx, id)
	if err != nil {
		return Movie{}, Movie{}, err
	}
	old := m

	if p.Title != nil {
		m.Title = *p.Title
	}

	if p.ReleaseDate != nil {
		releaseDate, err := time.Parse(DateLayout, *p.ReleaseDate)
		if err != nil {
			return Movie{}, Movie{}, ErrInvalidDate
		}
		m.ReleaseDate = releaseDate
	}

	if p.Poster != nil {
		m.Poster = *p.Poster
	}

	replaceActors := p.ActorNames != nil
	if replaceActors {
		actors, err := uc.actors.ActorsByName(ctx, *p.ActorNames)
		if err != nil {
			return Movie{}, Movie{}, err
		}
		m.Actors = actors
	}

	updated, err := uc.r.UpdateMovie(ctx, m, replaceActors)
	if err != nil {
		return Movie{}, Movie{}, err
	}

	return old, updated, nil
}

func (uc *Usecase) DeleteMovie(ctx context.Context, id int64) (Movie, error) {
	m, err := uc.r.GetMovie(ctx, id)
	if err != nil {
		return Movie{}, err
	}

	if err := uc.r.DeleteMovie(ctx, id); err != nil {
		return Movie{}, err
	}

	return m, nil
}

func (n NewMovie) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return errs.Errorf(errs.EINVALID, "movie: title is required")
	}

	if strings.TrimSpace(n.ReleaseDate) == "" {
		return errs.Errorf(errs.EINVALID, "movie: release_date is required")
	}

	if strings.TrimSpace(n.Poster) == "" {
		return errs.Errorf(errs.EINVALID, "movie: poster is required")
	}

	return nil
}
