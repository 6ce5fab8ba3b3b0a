package services

import (
	"strconv"

	"gorm.io/gorm"

	"github.com/trainymonked/reviews/internal/apperrors"
	"github.com/trainymonked/reviews/internal/auth"
	"github.com/trainymonked/reviews/internal/models"
	"github.com/trainymonked/reviews/internal/repositories"
	"github.com/trainymonked/reviews/internal/services/dto"
)

type RatingService interface {
	// Rate upserts the caller's star rating for a piece. Rating the same
	// value again performs no write and returns the stored row unchanged.
	Rate(caller *auth.Context, pieceID, stars string) (*dto.RatingResponse, error)
}

type ratingService struct {
	db         *gorm.DB
	ratingRepo repositories.RatingRepository
	pieceRepo  repositories.PieceRepository
}

func NewRatingService(db *gorm.DB, ratingRepo repositories.RatingRepository, pieceRepo repositories.PieceRepository) RatingService {
	return &ratingService{
		db:         db,
		ratingRepo: ratingRepo,
		pieceRepo:  pieceRepo,
	}
}

func (s *ratingService) Rate(caller *auth.Context, pieceID, stars string) (*dto.RatingResponse, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !validStars(stars) {
		return nil, apperrors.ErrInvalidStars
	}

	exists, err := s.pieceRepo.Exists(s.db, pieceID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrPieceNotFound
	}

	existing, err := s.ratingRepo.FindByPieceAndAuthor(s.db, pieceID, caller.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Stars == stars {
		// Idempotent no-op
		return ratingResponse(existing), nil
	}

	rating, err := s.ratingRepo.Upsert(s.db, &models.PieceRating{
		PieceID:  pieceID,
		AuthorID: caller.UserID,
		Stars:    stars,
	})
	if err != nil {
		return nil, err
	}

	return ratingResponse(rating), nil
}

func validStars(stars string) bool {
	n, err := strconv.Atoi(stars)
	return err == nil && n >= 1 && n <= 5
}

func ratingResponse(rating *models.PieceRating) *dto.RatingResponse {
	return &dto.RatingResponse{
		ID:        rating.ID,
		PieceID:   rating.PieceID,
		AuthorID:  rating.AuthorID,
		Stars:     rating.Stars,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
}
