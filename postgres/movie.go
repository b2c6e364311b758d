package postgres

import (
	"context"
	"fmt"
	"movieshelf/movie"

	"gorm.io/gorm"
)

const importBatchSize = 500

// MovieModel represents the database model for catalog entries.
// id follows import order, which is the catalog order.
type MovieModel struct {
	ID       uint   `gorm:"primaryKey"`
	Title    string `gorm:"not null"`
	Genre    string `gorm:"not null;default:''"`
	Year     int    `gorm:"not null"`
	Director string `gorm:"not null;default:''"`
	Actors   string `gorm:"not null;default:''"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Source on top of the movies table.
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) LoadMovies(ctx context.Context) ([]movie.Movie, error) {
	var models []MovieModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, &movie.LoadError{Kind: movie.LoadIOFailure, Source: "postgres:movies", Err: err}
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = movie.Movie{
			Title:    model.Title,
			Genre:    model.Genre,
			Year:     model.Year,
			Director: model.Director,
			Actors:   model.Actors,
		}
	}
	return movies, nil
}

// ReplaceMovies swaps the whole table for movies in a single transaction.
func (r *MovieRepository) ReplaceMovies(ctx context.Context, movies []movie.Movie) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("TRUNCATE TABLE movies RESTART IDENTITY").Error; err != nil {
			return fmt.Errorf("truncate movies: %w", err)
		}
		if len(movies) == 0 {
			return nil
		}

		models := make([]MovieModel, len(movies))
		for i, m := range movies {
			models[i] = MovieModel{
				Title:    m.Title,
				Genre:    m.Genre,
				Year:     m.Year,
				Director: m.Director,
				Actors:   m.Actors,
			}
		}
		if err := tx.CreateInBatches(models, importBatchSize).Error; err != nil {
			return fmt.Errorf("insert movies: %w", err)
		}
		return nil
	})
}
