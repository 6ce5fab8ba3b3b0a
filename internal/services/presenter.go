package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/trainymonked/reviews/internal/logger"
	"github.com/trainymonked/reviews/internal/models"
	"github.com/trainymonked/reviews/internal/repositories"
	"github.com/trainymonked/reviews/internal/services/dto"
	"github.com/trainymonked/reviews/internal/storage"
)

const signedURLExpiry = time.Hour

// ReviewPresenter assembles the denormalized review view models shared by
// the review, piece and user read paths: author info, display like counts
// and image URLs resolved from canonical storage paths.
type ReviewPresenter struct {
	likeRepo   repositories.LikeRepository
	store      storage.Storage
	publicRead bool
}

func NewReviewPresenter(likeRepo repositories.LikeRepository, store storage.Storage, publicRead bool) *ReviewPresenter {
	return &ReviewPresenter{
		likeRepo:   likeRepo,
		store:      store,
		publicRead: publicRead,
	}
}

// imageURLs derives a URL per stored path, preserving order. URL
// resolution failures degrade to path-only entries, they never fail the
// read.
func (p *ReviewPresenter) imageURLs(ctx context.Context, paths []string) []dto.ImageResponse {
	images := make([]dto.ImageResponse, 0, len(paths))
	for _, path := range paths {
		var url string
		var err error
		if p.publicRead {
			url, err = p.store.GetURL(ctx, path)
		} else {
			url, err = p.store.GetSignedURL(ctx, path, signedURLExpiry)
		}
		if err != nil {
			logger.Warn("failed to resolve image URL", "path", path, "error", err)
		}
		images = append(images, dto.ImageResponse{Path: path, URL: url})
	}
	return images
}

func authorInfo(author *models.User) *dto.AuthorInfo {
	if author == nil || author.ID == "" {
		return nil
	}
	return &dto.AuthorInfo{
		ID:    author.ID,
		Name:  author.Name,
		Image: author.Image,
	}
}

func (p *ReviewPresenter) reviewResponse(ctx context.Context, review *models.Review, likeCount int64) *dto.ReviewResponse {
	resp := &dto.ReviewResponse{
		ID:        review.ID,
		Title:     review.Title,
		Text:      review.Text,
		Grade:     review.Grade,
		Images:    p.imageURLs(ctx, review.Images),
		PieceID:   review.PieceID,
		AuthorID:  review.AuthorID,
		LikeCount: likeCount,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}

	resp.Author = authorInfo(&review.Author)

	if review.Piece.ID != "" {
		resp.Piece = &dto.PieceInfo{
			ID:      review.Piece.ID,
			TitleEn: review.Piece.TitleEn,
			TitleRu: review.Piece.TitleRu,
			GroupID: review.Piece.GroupID,
		}
	}

	return resp
}

// reviewResponses builds feed entries with like counts fetched in one
// grouped query.
func (p *ReviewPresenter) reviewResponses(ctx context.Context, db *gorm.DB, reviews []models.Review) ([]*dto.ReviewResponse, error) {
	ids := make([]string, 0, len(reviews))
	for _, review := range reviews {
		ids = append(ids, review.ID)
	}

	counts, err := p.likeRepo.CountLikedForReviews(db, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		review := &reviews[i]
		responses = append(responses, p.reviewResponse(ctx, review, counts[review.ID]))
	}
	return responses, nil
}

func commentResponse(comment *models.ReviewComment) *dto.CommentResponse {
	return &dto.CommentResponse{
		ID:        comment.ID,
		Text:      comment.Text,
		ReviewID:  comment.ReviewID,
		AuthorID:  comment.AuthorID,
		CreatedAt: comment.CreatedAt,
		Author:    authorInfo(&comment.Author),
	}
}
