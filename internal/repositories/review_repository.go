package repositories

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/trainymonked/reviews/internal/models"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	FindByID(db *gorm.DB, id string) (*models.Review, error)
	FindByIDWithDetails(db *gorm.DB, id string) (*models.Review, error)
	FindAll(db *gorm.DB) ([]models.Review, error)
	FindByPiece(db *gorm.DB, pieceID string) ([]models.Review, error)
	Update(db *gorm.DB, review *models.Review) error
	Delete(db *gorm.DB, id string) error
}

type reviewRepository struct{}

func NewReviewRepository() ReviewRepository {
	return &reviewRepository{}
}

func (r *reviewRepository) Create(db *gorm.DB, review *models.Review) error {
	return db.Create(review).Error
}

func (r *reviewRepository) FindByID(db *gorm.DB, id string) (*models.Review, error) {
	var review models.Review
	if err := db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByIDWithDetails(db *gorm.DB, id string) (*models.Review, error) {
	var review models.Review
	err := db.Preload("Author").
		Preload("Piece").
		Preload("Piece.Group").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.Author").
		First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindAll(db *gorm.DB) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Preload("Author").Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) FindByPiece(db *gorm.DB, pieceID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Preload("Author").
		Where("piece_id = ?", pieceID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) Update(db *gorm.DB, review *models.Review) error {
	result := db.Model(&models.Review{}).Where("id = ?", review.ID).Updates(map[string]interface{}{
		"title":     review.Title,
		"text":      review.Text,
		"grade":     review.Grade,
		"images":    datatypes.JSONSlice[string](review.Images),
		"piece_id":  review.PieceID,
		"author_id": review.AuthorID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// Delete removes the review and its dependent comment and like rows in one
// transaction. The FK constraints cascade on Postgres; the explicit deletes
// keep the behavior identical on databases that do not enforce them.
func (r *reviewRepository) Delete(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&models.ReviewComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("review_id = ?", id).Delete(&models.ReviewLike{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Review{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrReviewNotFound
		}
		return nil
	})
}
