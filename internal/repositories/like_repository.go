package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trainymonked/reviews/internal/models"
)

type LikeRepository interface {
	FindByReviewAndAuthor(db *gorm.DB, reviewID, authorID string) (*models.ReviewLike, error)
	CreateIfAbsent(db *gorm.DB, like *models.ReviewLike) (*models.ReviewLike, bool, error)
	SetLiked(db *gorm.DB, id string, liked bool) error
	CountLiked(db *gorm.DB, reviewID string) (int64, error)
	CountLikedForReviews(db *gorm.DB, reviewIDs []string) (map[string]int64, error)
}

type likeRepository struct{}

func NewLikeRepository() LikeRepository {
	return &likeRepository{}
}

// FindByReviewAndAuthor returns (nil, nil) when the caller has no like row
// for the review yet.
func (r *likeRepository) FindByReviewAndAuthor(db *gorm.DB, reviewID, authorID string) (*models.ReviewLike, error) {
	var like models.ReviewLike
	err := db.Where("review_id = ? AND author_id = ?", reviewID, authorID).First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &like, nil
}

// CreateIfAbsent inserts the like unless a row for (review_id, author_id)
// already exists. Returns the persisted row and whether this call created
// it; when a concurrent request won the insert, the winner's row comes
// back with created=false so the caller can flip it instead.
func (r *likeRepository) CreateIfAbsent(db *gorm.DB, like *models.ReviewLike) (*models.ReviewLike, bool, error) {
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "review_id"}, {Name: "author_id"}},
		DoNothing: true,
	}).Create(like)
	if result.Error != nil {
		return nil, false, result.Error
	}

	if result.RowsAffected > 0 {
		return like, true, nil
	}

	existing, err := r.FindByReviewAndAuthor(db, like.ReviewID, like.AuthorID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *likeRepository) SetLiked(db *gorm.DB, id string, liked bool) error {
	return db.Model(&models.ReviewLike{}).Where("id = ?", id).Update("liked", liked).Error
}

// CountLiked is the display count: rows flipped to liked=false stay in the
// table but are excluded here.
func (r *likeRepository) CountLiked(db *gorm.DB, reviewID string) (int64, error) {
	var count int64
	err := db.Model(&models.ReviewLike{}).
		Where("review_id = ? AND liked = ?", reviewID, true).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) CountLikedForReviews(db *gorm.DB, reviewIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(reviewIDs))
	if len(reviewIDs) == 0 {
		return counts, nil
	}

	type row struct {
		ReviewID string
		Count    int64
	}
	var rows []row
	err := db.Model(&models.ReviewLike{}).
		Select("review_id, COUNT(*) as count").
		Where("review_id IN ? AND liked = ?", reviewIDs, true).
		Group("review_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.ReviewID] = r.Count
	}
	return counts, nil
}
