package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trainymonked/reviews/internal/models"
)

type RatingRepository interface {
	FindByPieceAndAuthor(db *gorm.DB, pieceID, authorID string) (*models.PieceRating, error)
	Upsert(db *gorm.DB, rating *models.PieceRating) (*models.PieceRating, error)
}

type ratingRepository struct{}

func NewRatingRepository() RatingRepository {
	return &ratingRepository{}
}

// FindByPieceAndAuthor returns (nil, nil) when the caller has not rated
// the piece yet.
func (r *ratingRepository) FindByPieceAndAuthor(db *gorm.DB, pieceID, authorID string) (*models.PieceRating, error) {
	var rating models.PieceRating
	err := db.Where("piece_id = ? AND author_id = ?", pieceID, authorID).First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}

// Upsert inserts the rating, or updates stars in place when a row for
// (piece_id, author_id) already exists. The unique index makes this safe
// when two requests from the same user race on the first insert. The
// persisted row is re-read so the caller always gets the canonical id.
func (r *ratingRepository) Upsert(db *gorm.DB, rating *models.PieceRating) (*models.PieceRating, error) {
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "piece_id"}, {Name: "author_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"stars", "updated_at"}),
	}).Create(rating).Error
	if err != nil {
		return nil, err
	}

	return r.FindByPieceAndAuthor(db, rating.PieceID, rating.AuthorID)
}
