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

// MovieModel represents the database model for movies
type MovieModel struct {
	ID          int64        `gorm:"primaryKey"`
	Title       string       `gorm:"not null"`
	ReleaseDate time.Time    `gorm:"type:date;not null"`
	Poster      string       `gorm:"not null"`
	Actors      []ActorModel `gorm:"many2many:movie_actors"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository and actor.MovieResolver
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) ListMovies(ctx context.Context, offset, limit int) ([]movie.Movie, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&MovieModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []MovieModel
	err := r.db.WithContext(ctx).
		Preload("Actors", orderActorsByName).
		Order("title").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toMovie(model)
	}
	return movies, total, nil
}

func (r *MovieRepository) GetMovie(ctx context.Context, id int64) (movie.Movie, error) {
	model, err := getMovieModel(r.db.WithContext(ctx), id)
	if err != nil {
		return movie.Movie{}, err
	}
	return toMovie(model), nil
}

// CreateMovie inserts the movie row plus one join row per resolved actor.
// Actor rows themselves are never written through this path.
func (r *MovieRepository) CreateMovie(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	model := MovieModel{
		Title:       m.Title,
		ReleaseDate: m.ReleaseDate,
		Poster:      m.Poster,
		Actors:      actorModelRefs(m.Actors),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Actors.*").Create(&model).Error
	})
	if err != nil {
		return movie.Movie{}, err
	}

	return r.GetMovie(ctx, model.ID)
}

func (r *MovieRepository) UpdateMovie(ctx context.Context, m movie.Movie, replaceActors bool) (movie.Movie, error) {
	var updated MovieModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := MovieModel{
			ID:          m.ID,
			Title:       m.Title,
			ReleaseDate: m.ReleaseDate,
			Poster:      m.Poster,
		}
		err := tx.Model(&model).
			Select("title", "release_date", "poster").
			Updates(&model).Error
		if err != nil {
			return err
		}

		if replaceActors {
			err := tx.Model(&model).
				Association("Actors").
				Replace(actorModelRefs(m.Actors))
			if err != nil {
				return err
			}
		}

		updated, err = getMovieModel(tx, m.ID)
		return err
	})
	if err != nil {
		return movie.Movie{}, err
	}

	return toMovie(updated), nil
}

// DeleteMovie removes the movie row; join rows follow via the schema's
// ON DELETE CASCADE, actor rows stay untouched.
func (r *MovieRepository) DeleteMovie(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&MovieModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return movie.ErrNotFound
	}
	return nil
}

// MoviesByTitle resolves movie titles to persisted references, in input
// order. Titles are matched exactly; ties break on the lowest id. The
// first unknown title aborts the whole resolution.
func (r *MovieRepository) MoviesByTitle(ctx context.Context, titles []string) ([]actor.MovieRef, error) {
	refs := make([]actor.MovieRef, 0, len(titles))

	for _, title := range titles {
		var model MovieModel
		err := r.db.WithContext(ctx).
			Where("title = ?", title).
			Order("id").
			First(&model).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.EINVALID, "no movie titled %q", title)
		} else if err != nil {
			return nil, err
		}

		refs = append(refs, actor.MovieRef{
			ID:          model.ID,
			Title:       model.Title,
			ReleaseDate: model.ReleaseDate,
		})
	}

	return refs, nil
}

func getMovieModel(db *gorm.DB, id int64) (MovieModel, error) {
	var model MovieModel
	err := db.Preload("Actors", orderActorsByName).First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return MovieModel{}, movie.ErrNotFound
	} else if err != nil {
		return MovieModel{}, err
	}
	return model, nil
}

func orderActorsByName(db *gorm.DB) *gorm.DB {
	return db.Order("actors.name")
}

func actorModelRefs(refs []movie.ActorRef) []ActorModel {
	models := make([]ActorModel, len(refs))
	for i, ref := range refs {
		models[i] = ActorModel{ID: ref.ID, Name: ref.Name}
	}
	return models
}

func toMovie(model MovieModel) movie.Movie {
	actors := make([]movie.ActorRef, len(model.Actors))
	for i, a := range model.Actors {
		actors[i] = movie.ActorRef{ID: a.ID, Name: a.Name}
	}

	return movie.Movie{
		ID:          model.ID,
		Title:       model.Title,
		ReleaseDate: model.ReleaseDate,
		Poster:      model.Poster,
		Actors:      actors,
	}
}
