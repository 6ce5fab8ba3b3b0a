package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/trainymonked/reviews/internal/apperrors"
	"github.com/trainymonked/reviews/internal/auth"
	"github.com/trainymonked/reviews/internal/models"
	"github.com/trainymonked/reviews/internal/repositories"
	"github.com/trainymonked/reviews/internal/services/dto"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(caller *auth.Context) (*dto.UserResponse, error)
}

type authService struct {
	db        *gorm.DB
	userRepo  repositories.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(db *gorm.DB, userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		db:        db,
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func (s *authService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	existing, err := s.userRepo.FindByEmail(s.db, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
	}
	if err := s.userRepo.Create(s.db, user); err != nil {
		return nil, err
	}

	return s.authResponse(user)
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(s.db, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.authResponse(user)
}

func (s *authService) Me(caller *auth.Context) (*dto.UserResponse, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(s.db, caller.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	resp := userResponse(user)
	return &resp, nil
}

func (s *authService) authResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(s.jwtSecret, user.ID, user.IsAdmin, user.PreferredLocale, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	resp := userResponse(user)
	return &dto.AuthResponse{
		AccessToken: token,
		User:        &resp,
	}, nil
}
