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

type CommentService interface {
	Add(caller *auth.Context, reviewID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListByReview(reviewID string) ([]*dto.CommentResponse, error)
	Delete(caller *auth.Context, id string) error
}

type commentService struct {
	db          *gorm.DB
	commentRepo repositories.CommentRepository
	reviewRepo  repositories.ReviewRepository
	userRepo    repositories.UserRepository
}

func NewCommentService(
	db *gorm.DB,
	commentRepo repositories.CommentRepository,
	reviewRepo repositories.ReviewRepository,
	userRepo repositories.UserRepository,
) CommentService {
	return &commentService{
		db:          db,
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
	}
}

func (s *commentService) Add(caller *auth.Context, reviewID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthorized
	}

	if _, err := s.reviewRepo.FindByID(s.db, reviewID); err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, err
	}

	comment := &models.ReviewComment{
		Text:     req.Text,
		ReviewID: reviewID,
		AuthorID: caller.UserID,
	}
	if err := s.commentRepo.Create(s.db, comment); err != nil {
		return nil, err
	}

	if author, err := s.userRepo.FindByID(s.db, caller.UserID); err == nil {
		comment.Author = *author
	}
	return commentResponse(comment), nil
}

func (s *commentService) ListByReview(reviewID string) ([]*dto.CommentResponse, error) {
	if _, err := s.reviewRepo.FindByID(s.db, reviewID); err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, err
	}

	comments, err := s.commentRepo.FindByReview(s.db, reviewID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, commentResponse(&comments[i]))
	}
	return responses, nil
}

func (s *commentService) Delete(caller *auth.Context, id string) error {
	if caller == nil {
		return apperrors.ErrUnauthorized
	}

	comment, err := s.commentRepo.FindByID(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return apperrors.ErrCommentNotFound
		}
		return err
	}
	if !caller.CanModify(comment.AuthorID) {
		return apperrors.ErrNotResourceOwner
	}

	if err := s.commentRepo.Delete(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return apperrors.ErrCommentNotFound
		}
		return err
	}
	return nil
}
