package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/danrneal/fs-casting-agency/actor"
	"github.com/danrneal/fs-casting-agency/errs"
	"github.com/danrneal/fs-casting-agency/movie"
)

// ActorModel represents the database model for actors
type ActorModel struct {
	ID        int64        `gorm:"primaryKey"`
	Name      string       `gorm:"not null"`
	Birthdate time.Time    `gorm:"type:date;not null"`
	Gender    string       `gorm:"not null"`
	Image     string       `gorm:"not null"`
	Movies    []MovieModel `gorm:"many2many:movie_actors"`
}

// TableName specifies the table name for GORM
func (ActorModel) TableName() string {
	return "actors"
}

// ActorRepository implements actor.Repository and movie.ActorResolver
type ActorRepository struct {
	db *gorm.DB
}

// NewActorRepository creates a new actor repository
func NewActorRepository(db *gorm.DB) *ActorRepository {
	return &ActorRepository{db: db}
}

func (r *ActorRepository) ListActors(ctx context.Context, offset, limit int) ([]actor.Actor, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&ActorModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []ActorModel
	err := r.db.WithContext(ctx).
		Preload("Movies", orderMoviesByTitle).
		Order("name").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	actors := make([]actor.Actor, len(models))
	for i, model := range models {
		actors[i] = toActor(model)
	}
	return actors, total, nil
}

func (r *ActorRepository) GetActor(ctx context.Context, id int64) (actor.Actor, error) {
	model, err := getActorModel(r.db.WithContext(ctx), id)
	if err != nil {
		return actor.Actor{}, err
	}
	return toActor(model), nil
}

// CreateActor inserts the actor row plus one join row per resolved movie.
// Movie rows themselves are never written through this path.
func (r *ActorRepository) CreateActor(ctx context.Context, a actor.Actor) (actor.Actor, error) {
	model := ActorModel{
		Name:      a.Name,
		Birthdate: a.Birthdate,
		Gender:    a.Gender,
		Image:     a.Image,
		Movies:    movieModelRefs(a.Movies),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Movies.*").Create(&model).Error
	})
	if err != nil {
		return actor.Actor{}, err
	}

	return r.GetActor(ctx, model.ID)
}

func (r *ActorRepository) UpdateActor(ctx context.Context, a actor.Actor, replaceMovies bool) (actor.Actor, error) {
	var updated ActorModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := ActorModel{
			ID:        a.ID,
			Name:      a.Name,
			Birthdate: a.Birthdate,
			Gender:    a.Gender,
			Image:     a.Image,
		}
		err := tx.Model(&model).
			Select("name", "birthdate", "gender", "image").
			Updates(&model).Error
		if err != nil {
			return err
		}

		if replaceMovies {
			err := tx.Model(&model).
				Association("Movies").
				Replace(movieModelRefs(a.Movies))
			if err != nil {
				return err
			}
		}

		updated, err = getActorModel(tx, a.ID)
		return err
	})
	if err != nil {
		return actor.Actor{}, err
	}

	return toActor(updated), nil
}

// DeleteActor removes the actor row; join rows follow via the schema's
// ON DELETE CASCADE, movie rows stay untouched.
func (r *ActorRepository) DeleteActor(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&ActorModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return actor.ErrNotFound
	}
	return nil
}

// ActorsByName resolves actor names to persisted references, in input
// order. Names are matched exactly; ties break on the lowest id. The
// first unknown name aborts the whole resolution.
func (r *ActorRepository) ActorsByName(ctx context.Context, names []string) ([]movie.ActorRef, error) {
	refs := make([]movie.ActorRef, 0, len(names))

	for _, name := range names {
		var model ActorModel
		err := r.db.WithContext(ctx).
			Where("name = ?", name).
			Order("id").
			First(&model).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.EINVALID, "no actor named %q", name)
		} else if err != nil {
			return nil, err
		}

		refs = append(refs, movie.ActorRef{ID: model.ID, Name: model.Name})
	}

	return refs, nil
}

func getActorModel(db *gorm.DB, id int64) (ActorModel, error) {
	var model ActorModel
	err := db.Preload("Movies", orderMoviesByTitle).First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ActorModel{}, actor.ErrNotFound
	} else if err != nil {
		return ActorModel{}, err
	}
	return model, nil
}

func orderMoviesByTitle(db *gorm.DB) *gorm.DB {
	return db.Order("movies.title")
}

func movieModelRefs(refs []actor.MovieRef) []MovieModel {
	models := make([]MovieModel, len(refs))
	for i, ref := range refs {
		models[i] = MovieModel{ID: ref.ID, Title: ref.Title, ReleaseDate: ref.ReleaseDate}
	}
	return models
}

func toActor(model ActorModel) actor.Actor {
	movies := make([]actor.MovieRef, len(model.Movies))
	for i, m := range model.Movies {
		movies[i] = actor.MovieRef{ID: m.ID, Title: m.Title, ReleaseDate: m.ReleaseDate}
	}

	return actor.Actor{
		ID:        model.ID,
		Name:      model.Name,
		Birthdate: model.Birthdate,
		Gender:    model.Gender,
		Image:     model.Image,
		Movies:    movies,
	}
}
