package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/trainymonked/reviews/internal/apperrors"
	"github.com/trainymonked/reviews/internal/auth"
	"github.com/trainymonked/reviews/internal/models"
	"github.com/trainymonked/reviews/internal/repositories"
	"github.com/trainymonked/reviews/internal/services/dto"
)

type LikeService interface {
	// Toggle flips the caller's like for a review, creating the row with
	// liked=true on first use. Rows are reused, never deleted.
	Toggle(caller *auth.Context, reviewID string) (*dto.LikeResponse, error)
}

type likeService struct {
	db         *gorm.DB
	likeRepo   repositories.LikeRepository
	reviewRepo repositories.ReviewRepository
}

func NewLikeService(db *gorm.DB, likeRepo repositories.LikeRepository, reviewRepo repositories.ReviewRepository) LikeService {
	return &likeService{
		db:         db,
		likeRepo:   likeRepo,
		reviewRepo: reviewRepo,
	}
}

func (s *likeService) Toggle(caller *auth.Context, reviewID string) (*dto.LikeResponse, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthorized
	}

	if _, err := s.reviewRepo.FindByID(s.db, reviewID); err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, err
	}

	like, err := s.likeRepo.FindByReviewAndAuthor(s.db, reviewID, caller.UserID)
	if err != nil {
		return nil, err
	}

	if like == nil {
		created := &models.ReviewLike{
			ReviewID: reviewID,
			AuthorID: caller.UserID,
			Liked:    true,
		}
		persisted, wasCreated, err := s.likeRepo.CreateIfAbsent(s.db, created)
		if err != nil {
			return nil, err
		}
		if wasCreated {
			return likeResponse(persisted), nil
		}
		// A concurrent toggle won the insert, fall through and flip its row
		like = persisted
	}

	if err := s.likeRepo.SetLiked(s.db, like.ID, !like.Liked); err != nil {
		return nil, err
	}
	like.Liked = !like.Liked

	return likeResponse(like), nil
}

func likeResponse(like *models.ReviewLike) *dto.LikeResponse {
	return &dto.LikeResponse{
		ID:       like.ID,
		ReviewID: like.ReviewID,
		AuthorID: like.AuthorID,
		Liked:    like.Liked,
	}
}
