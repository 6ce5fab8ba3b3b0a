package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/trainymonked/reviews/internal/apperrors"
	"github.com/trainymonked/reviews/internal/auth"
	"github.com/trainymonked/reviews/internal/logger"
	"github.com/trainymonked/reviews/internal/services/dto"
	"github.com/trainymonked/reviews/internal/storage"
)

const reviewImagePrefix = "review_images"

type UploadService interface {
	// UploadReviewImage stores an image under a generated name and returns
	// the canonical path plus a URL for immediate display.
	UploadReviewImage(ctx context.Context, caller *auth.Context, filename, contentType string, size int64, reader io.Reader) (*dto.UploadResponse, error)
}

type uploadService struct {
	store        storage.Storage
	maxSize      int64
	allowedTypes []string
	publicRead   bool
}

func NewUploadService(store storage.Storage, maxSize int64, allowedTypes []string, publicRead bool) UploadService {
	return &uploadService{
		store:        store,
		maxSize:      maxSize,
		allowedTypes: allowedTypes,
		publicRead:   publicRead,
	}
}

func (s *uploadService) UploadReviewImage(ctx context.Context, caller *auth.Context, filename, contentType string, size int64, reader io.Reader) (*dto.UploadResponse, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if size > s.maxSize {
		return nil, apperrors.New(apperrors.CodeInvalidUpload,
			fmt.Sprintf("File exceeds the maximum size of %d bytes", s.maxSize), http.StatusBadRequest)
	}
	if !s.allowedType(contentType) {
		return nil, apperrors.New(apperrors.CodeInvalidUpload,
			fmt.Sprintf("Unsupported file type: %s", contentType), http.StatusBadRequest)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	path := fmt.Sprintf("%s/%s%s", reviewImagePrefix, uuid.NewString(), ext)

	if err := s.store.Save(ctx, path, reader, contentType); err != nil {
		return nil, err
	}

	var url string
	var err error
	if s.publicRead {
		url, err = s.store.GetURL(ctx, path)
	} else {
		url, err = s.store.GetSignedURL(ctx, path, signedURLExpiry)
	}
	if err != nil {
		logger.Warn("failed to resolve uploaded image URL", "path", path, "error", err)
	}

	return &dto.UploadResponse{Path: path, URL: url}, nil
}

func (s *uploadService) allowedType(contentType string) bool {
	for _, allowed := range s.allowedTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}
