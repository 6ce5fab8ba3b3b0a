package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/trainymonked/reviews/internal/models"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository interface {
	Create(db *gorm.DB, comment *models.ReviewComment) error
	FindByID(db *gorm.DB, id string) (*models.ReviewComment, error)
	FindByReview(db *gorm.DB, reviewID string) ([]models.ReviewComment, error)
	Delete(db *gorm.DB, id string) error
}

type commentRepository struct{}

func NewCommentRepository() CommentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(db *gorm.DB, comment *models.ReviewComment) error {
	return db.Create(comment).Error
}

func (r *commentRepository) FindByID(db *gorm.DB, id string) (*models.ReviewComment, error) {
	var comment models.ReviewComment
	if err := db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindByReview(db *gorm.DB, reviewID string) ([]models.ReviewComment, error) {
	var comments []models.ReviewComment
	err := db.Preload("Author").
		Where("review_id = ?", reviewID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.ReviewComment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}
