package services

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/trainymonked/reviews/internal/apperrors"
	"github.com/trainymonked/reviews/internal/auth"
	"github.com/trainymonked/reviews/internal/logger"
	"github.com/trainymonked/reviews/internal/models"
	"github.com/trainymonked/reviews/internal/repositories"
	"github.com/trainymonked/reviews/internal/services/dto"
	"github.com/trainymonked/reviews/internal/storage"
)

type ReviewService interface {
	Create(ctx context.Context, caller *auth.Context, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	Update(ctx context.Context, caller *auth.Context, id string, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, caller *auth.Context, id string) error
	Get(ctx context.Context, id string) (*dto.ReviewResponse, error)
	List(ctx context.Context) ([]*dto.ReviewResponse, error)
}

type reviewService struct {
	db         *gorm.DB
	reviewRepo repositories.ReviewRepository
	pieceRepo  repositories.PieceRepository
	likeRepo   repositories.LikeRepository
	store      storage.Storage
	presenter  *ReviewPresenter
}

func NewReviewService(
	db *gorm.DB,
	reviewRepo repositories.ReviewRepository,
	pieceRepo repositories.PieceRepository,
	likeRepo repositories.LikeRepository,
	store storage.Storage,
	presenter *ReviewPresenter,
) ReviewService {
	return &reviewService{
		db:         db,
		reviewRepo: reviewRepo,
		pieceRepo:  pieceRepo,
		likeRepo:   likeRepo,
		store:      store,
		presenter:  presenter,
	}
}

func (s *reviewService) Create(ctx context.Context, caller *auth.Context, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !validGrade(req.Grade) {
		return nil, apperrors.ErrInvalidGrade
	}

	exists, err := s.pieceRepo.Exists(s.db, req.PieceID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrPieceNotFound
	}

	review := &models.Review{
		Title:    req.Title,
		Text:     req.Text,
		Grade:    req.Grade,
		Images:   datatypes.JSONSlice[string](req.Images),
		PieceID:  req.PieceID,
		AuthorID: caller.UserID,
	}
	if err := s.reviewRepo.Create(s.db, review); err != nil {
		return nil, err
	}

	return s.Get(ctx, review.ID)
}

func (s *reviewService) Update(ctx context.Context, caller *auth.Context, id string, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthorized
	}

	review, err := s.reviewRepo.FindByID(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, err
	}
	if !caller.CanModify(review.AuthorID) {
		return nil, apperrors.ErrNotResourceOwner
	}
	if !validGrade(req.Grade) {
		return nil, apperrors.ErrInvalidGrade
	}

	pieceID := review.PieceID
	if req.PieceID != "" && req.PieceID != review.PieceID {
		exists, err := s.pieceRepo.Exists(s.db, req.PieceID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.ErrPieceNotFound
		}
		pieceID = req.PieceID
	}

	// Reconcile the stored image set against the new target list: every
	// previously stored image absent from req.Images gets removed from
	// storage. Cleanup is best-effort, the row update proceeds regardless.
	if removed := imagesToRemove(req.OldImages, req.Images); len(removed) > 0 {
		if err := s.store.DeleteMany(ctx, removed); err != nil {
			logger.Warn("failed to delete replaced review images",
				"review_id", id, "paths", removed, "error", err)
		}
	}

	review.Title = req.Title
	review.Text = req.Text
	review.Grade = req.Grade
	review.Images = datatypes.JSONSlice[string](req.Images)
	review.PieceID = pieceID
	// AuthorID stays as stored: an admin editing someone else's review
	// must not take authorship of it.

	if err := s.reviewRepo.Update(s.db, review); err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *reviewService) Delete(ctx context.Context, caller *auth.Context, id string) error {
	if caller == nil {
		return apperrors.ErrUnauthorized
	}

	review, err := s.reviewRepo.FindByID(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return apperrors.ErrReviewNotFound
		}
		return err
	}
	if !caller.CanModify(review.AuthorID) {
		return apperrors.ErrNotResourceOwner
	}

	if len(review.Images) > 0 {
		if err := s.store.DeleteMany(ctx, review.Images); err != nil {
			logger.Warn("failed to delete review images",
				"review_id", id, "paths", []string(review.Images), "error", err)
		}
	}

	if err := s.reviewRepo.Delete(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return apperrors.ErrReviewNotFound
		}
		return err
	}
	return nil
}

func (s *reviewService) Get(ctx context.Context, id string) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindByIDWithDetails(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, err
	}

	likeCount, err := s.likeRepo.CountLiked(s.db, id)
	if err != nil {
		return nil, err
	}

	resp := s.presenter.reviewResponse(ctx, review, likeCount)
	resp.Comments = make([]*dto.CommentResponse, 0, len(review.Comments))
	for i := range review.Comments {
		resp.Comments = append(resp.Comments, commentResponse(&review.Comments[i]))
	}
	return resp, nil
}

func (s *reviewService) List(ctx context.Context) ([]*dto.ReviewResponse, error) {
	reviews, err := s.reviewRepo.FindAll(s.db)
	if err != nil {
		return nil, err
	}
	return s.presenter.reviewResponses(ctx, s.db, reviews)
}

// imagesToRemove returns storage paths for every previously stored image
// whose identity is missing from the new target list, in stored order.
func imagesToRemove(old []dto.StoredImage, target []string) []string {
	keep := make(map[string]struct{}, len(target))
	for _, path := range target {
		keep[path] = struct{}{}
	}

	var removed []string
	for _, img := range old {
		if _, ok := keep[img.FullPath]; !ok {
			removed = append(removed, img.Path)
		}
	}
	return removed
}

func validGrade(grade string) bool {
	n, err := strconv.Atoi(grade)
	return err == nil && n >= 1 && n <= 10
}
