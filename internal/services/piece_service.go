package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/trainymonked/reviews/internal/apperrors"
	"github.com/trainymonked/reviews/internal/auth"
	"github.com/trainymonked/reviews/internal/models"
	"github.com/trainymonked/reviews/internal/repositories"
	"github.com/trainymonked/reviews/internal/services/dto"
)

type PieceService interface {
	Create(caller *auth.Context, req *dto.CreatePieceRequest) (*dto.PieceResponse, error)
	// Get returns the piece with its rating aggregate, the caller's own
	// stars when signed in, and its reviews newest-first.
	Get(ctx context.Context, caller *auth.Context, id string) (*dto.PieceResponse, error)
	List(ctx context.Context) ([]*dto.PieceResponse, error)
	ListGroups() ([]*dto.GroupResponse, error)
}

type pieceService struct {
	db         *gorm.DB
	pieceRepo  repositories.PieceRepository
	ratingRepo repositories.RatingRepository
	presenter  *ReviewPresenter
}

func NewPieceService(
	db *gorm.DB,
	pieceRepo repositories.PieceRepository,
	ratingRepo repositories.RatingRepository,
	presenter *ReviewPresenter,
) PieceService {
	return &pieceService{
		db:         db,
		pieceRepo:  pieceRepo,
		ratingRepo: ratingRepo,
		presenter:  presenter,
	}
}

func (s *pieceService) Create(caller *auth.Context, req *dto.CreatePieceRequest) (*dto.PieceResponse, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthorized
	}

	group, err := s.pieceRepo.FindGroupByID(s.db, req.GroupID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, err
	}

	piece := &models.Piece{
		TitleEn:       req.TitleEn,
		TitleRu:       req.TitleRu,
		DescriptionEn: req.DescriptionEn,
		DescriptionRu: req.DescriptionRu,
		GroupID:       group.ID,
		AuthorID:      caller.UserID,
	}
	if err := s.pieceRepo.Create(s.db, piece); err != nil {
		return nil, err
	}
	piece.Group = *group

	return pieceResponse(piece, nil), nil
}

func (s *pieceService) Get(ctx context.Context, caller *auth.Context, id string) (*dto.PieceResponse, error) {
	piece, err := s.pieceRepo.FindByIDWithReviews(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPieceNotFound) {
			return nil, apperrors.ErrPieceNotFound
		}
		return nil, err
	}

	summary, err := s.pieceRepo.GetRatingSummary(s.db, id)
	if err != nil {
		return nil, err
	}

	resp := pieceResponse(piece, summary)

	if caller != nil {
		rating, err := s.ratingRepo.FindByPieceAndAuthor(s.db, id, caller.UserID)
		if err != nil {
			return nil, err
		}
		if rating != nil {
			resp.CallerStars = rating.Stars
		}
	}

	reviews, err := s.presenter.reviewResponses(ctx, s.db, piece.Reviews)
	if err != nil {
		return nil, err
	}
	resp.Reviews = reviews

	return resp, nil
}

func (s *pieceService) List(ctx context.Context) ([]*dto.PieceResponse, error) {
	pieces, err := s.pieceRepo.FindAll(s.db)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(pieces))
	for i := range pieces {
		ids[i] = pieces[i].ID
	}
	summaries, err := s.pieceRepo.GetRatingSummaries(s.db, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.PieceResponse, 0, len(pieces))
	for i := range pieces {
		piece := &pieces[i]
		summary := summaries[piece.ID]
		responses = append(responses, pieceResponse(piece, &summary))
	}
	return responses, nil
}

func (s *pieceService) ListGroups() ([]*dto.GroupResponse, error) {
	groups, err := s.pieceRepo.FindGroups(s.db)
	if err != nil {
		return nil, err
	}

	counts, err := s.pieceRepo.CountPiecesByGroup(s.db)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.GroupResponse, 0, len(groups))
	for i := range groups {
		group := &groups[i]
		responses = append(responses, &dto.GroupResponse{
			ID:         group.ID,
			Handle:     group.Handle,
			NameEn:     group.NameEn,
			NameRu:     group.NameRu,
			PieceCount: counts[group.ID],
		})
	}
	return responses, nil
}

func pieceResponse(piece *models.Piece, summary *repositories.RatingSummary) *dto.PieceResponse {
	resp := &dto.PieceResponse{
		ID:            piece.ID,
		TitleEn:       piece.TitleEn,
		TitleRu:       piece.TitleRu,
		DescriptionEn: piece.DescriptionEn,
		DescriptionRu: piece.DescriptionRu,
		GroupID:       piece.GroupID,
		AuthorID:      piece.AuthorID,
		CreatedAt:     piece.CreatedAt,
	}
	if piece.Group.ID != "" {
		resp.Group = &dto.GroupResponse{
			ID:     piece.Group.ID,
			Handle: piece.Group.Handle,
			NameEn: piece.Group.NameEn,
			NameRu: piece.Group.NameRu,
		}
	}
	if summary != nil {
		resp.AverageRating = summary.AverageRating
		resp.TotalRatings = summary.TotalRatings
	}
	return resp
}
