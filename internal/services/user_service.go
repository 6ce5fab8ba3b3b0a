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

type UserService interface {
	GetProfile(ctx context.Context, id string) (*dto.UserProfileResponse, error)
	// UpdateLocale stores the caller's locale preference. Once set, it wins
	// over Accept-Language negotiation on subsequent requests.
	UpdateLocale(caller *auth.Context, locale string) (*dto.UserResponse, error)
}

type userService struct {
	db               *gorm.DB
	userRepo         repositories.UserRepository
	presenter        *ReviewPresenter
	supportedLocales []string
}

func NewUserService(db *gorm.DB, userRepo repositories.UserRepository, presenter *ReviewPresenter, supportedLocales []string) UserService {
	return &userService{
		db:               db,
		userRepo:         userRepo,
		presenter:        presenter,
		supportedLocales: supportedLocales,
	}
}

func (s *userService) GetProfile(ctx context.Context, id string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.FindByIDWithReviews(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	reviews, err := s.presenter.reviewResponses(ctx, s.db, user.Reviews)
	if err != nil {
		return nil, err
	}

	resp := &dto.UserProfileResponse{
		UserResponse: publicUserResponse(user),
		Reviews:      reviews,
	}
	return resp, nil
}

func (s *userService) UpdateLocale(caller *auth.Context, locale string) (*dto.UserResponse, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !s.supportedLocale(locale) {
		return nil, apperrors.ErrInvalidLocale
	}

	user, err := s.userRepo.UpdatePreferredLocale(s.db, caller.UserID, locale)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	resp := userResponse(user)
	return &resp, nil
}

func (s *userService) supportedLocale(locale string) bool {
	for _, supported := range s.supportedLocales {
		if locale == supported {
			return true
		}
	}
	return false
}

// userResponse is the owner's view: email and locale included.
func userResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		Image:            user.Image,
		Bio:              user.Bio,
		IsAdmin:          user.IsAdmin,
		PreferredLocale:  user.PreferredLocale,
		RegistrationDate: user.RegistrationDate,
	}
}

// publicUserResponse omits the email on profiles other users can view.
func publicUserResponse(user *models.User) dto.UserResponse {
	resp := userResponse(user)
	resp.Email = ""
	resp.PreferredLocale = ""
	return resp
}
