package actor

import (
	"context"
	"strings"
	"time"

	"github.com/danrneal/fs-casting-agency/errs"
)

// PageSize is the fixed number of actors per listing page.
const PageSize = 25

type Service interface {
	ListActors(ctx context.Context, page int) ([]Actor, int64, error)
	CreateActor(ctx context.Context, n NewActor) (Actor, error)
	UpdateActor(ctx context.Context, id int64, p Patch) (old Actor, updated Actor, err error)
	DeleteActor(ctx context.Context, id int64) (Actor, error)
}

type Repository interface {
	// ListActors returns one page of actors ordered by name ascending,
	// plus the total number of actors.
	ListActors(ctx context.Context, offset, limit int) ([]Actor, int64, error)
	GetActor(ctx context.Context, id int64) (Actor, error)
	CreateActor(ctx context.Context, a Actor) (Actor, error)
	// UpdateActor persists a's scalar fields; when replaceMovies is set the
	// join rows are fully replaced with a.Movies in the same transaction.
	UpdateActor(ctx context.Context, a Actor, replaceMovies bool) (Actor, error)
	DeleteActor(ctx context.Context, id int64) error
}

// MovieResolver translates movie titles into persisted movie references.
// The first unresolved title aborts with an EINVALID error.
type MovieResolver interface {
	MoviesByTitle(ctx context.Context, titles []string) ([]MovieRef, error)
}

type Usecase struct {
	r      Repository
	movies MovieResolver
}

func NewUsecase(r Repository, movies MovieResolver) *Usecase {
	return &Usecase{r: r, movies: movies}
}

func (uc *Usecase) ListActors(ctx context.Context, page int) ([]Actor, int64, error) {
	if page < 1 {
		return nil, 0, ErrEmptyPage
	}

	actors, total, err := uc.r.ListActors(ctx, (page-1)*PageSize, PageSize)
	if err != nil {
		return nil, 0, err
	}

	if len(actors) == 0 {
		return nil, 0, ErrEmptyPage
	}

	return actors, total, nil
}

func (uc *Usecase) CreateActor(ctx context.Context, n NewActor) (Actor, error) {
	if err := n.Validate(); err != nil {
		return Actor{}, err
	}

	birthdate, err := time.Parse(DateLayout, n.Birthdate)
	if err != nil {
		return Actor{}, ErrInvalidDate
	}

	movies, err := uc.movies.MoviesByTitle(ctx, n.MovieTitles)
	if err != nil {
		return Actor{}, err
	}

	return uc.r.CreateActor(ctx, Actor{
		Name:      n.Name,
		Birthdate: birthdate,
		Gender:    n.Gender,
		Image:     n.Image,
		Movies:    movies,
	})
}

func (uc *Usecase) UpdateActor(ctx context.Context, id int64, p Patch) (Actor, Actor, error) {
	if p.Empty() {
		return Actor{}, Actor{}, ErrEmptyPatch
	}

	a, err := uc.r.GetActor(ctx, id)
	if err != nil {
		return Actor{}, Actor{}, err
	}
	old := a

	if p.Name != nil {
		a.Name = *p.Name
	}

	if p.Birthdate != nil {
		birthdate, err := time.Parse(DateLayout, *p.Birthdate)
		if err != nil {
			return Actor{}, Actor{}, ErrInvalidDate
		}
		a.Birthdate = birthdate
	}

	if p.Gender != nil {
		a.Gender = *p.Gender
	}

	if p.Image != nil {
		a.Image = *p.Image
	}

	replaceMovies := p.MovieTitles != nil
	if replaceMovies {
		movies, err := uc.movies.MoviesByTitle(ctx, *p.MovieTitles)
		if err != nil {
			return Actor{}, Actor{}, err
		}
		a.Movies = movies
	}

	updated, err := uc.r.UpdateActor(ctx, a, replaceMovies)
	if err != nil {
		return Actor{}, Actor{}, err
	}

	return old, updated, nil
}

func (uc *Usecase) DeleteActor(ctx context.Context, id int64) (Actor, error) {
	a, err := uc.r.GetActor(ctx, id)
	if err != nil {
		return Actor{}, err
	}

	if err := uc.r.DeleteActor(ctx, id); err != nil {
		return Actor{}, err
	}

	return a, nil
}

func (n NewActor) Validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return errs.Errorf(errs.EINVALID, "actor: name is required")
	}

	if strings.TrimSpace(n.Birthdate) == "" {
		return errs.Errorf(errs.EINVALID, "actor: birthdate is required")
	}

	if strings.TrimSpace(n.Gender) == "" {
		return errs.Errorf(errs.EINVALID, "actor: gender is required")
	}

	if strings.TrimSpace(n.Image) == "" {
		return errs.Errorf(errs.EINVALID, "actor: image is required")
	}

	return nil
}
