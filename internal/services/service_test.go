package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/trainymonked/reviews/internal/auth"
	"github.com/trainymonked/reviews/internal/models"
	"github.com/trainymonked/reviews/internal/repositories"
)

// testEnv wires every service against an in-memory database and a
// recording storage fake.
type testEnv struct {
	db    *gorm.DB
	store *fakeStorage

	userRepo    repositories.UserRepository
	pieceRepo   repositories.PieceRepository
	ratingRepo  repositories.RatingRepository
	reviewRepo  repositories.ReviewRepository
	likeRepo    repositories.LikeRepository
	commentRepo repositories.CommentRepository

	auth     AuthService
	users    UserService
	pieces   PieceService
	ratings  RatingService
	reviews  ReviewService
	likes    LikeService
	comments CommentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A fresh connection would see a fresh empty :memory: database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.PieceGroup{},
		&models.Piece{},
		&models.Review{},
		&models.ReviewComment{},
		&models.ReviewLike{},
		&models.PieceRating{},
	))

	store := newFakeStorage()

	env := &testEnv{
		db:          db,
		store:       store,
		userRepo:    repositories.NewUserRepository(),
		pieceRepo:   repositories.NewPieceRepository(),
		ratingRepo:  repositories.NewRatingRepository(),
		reviewRepo:  repositories.NewReviewRepository(),
		likeRepo:    repositories.NewLikeRepository(),
		commentRepo: repositories.NewCommentRepository(),
	}

	presenter := NewReviewPresenter(env.likeRepo, store, true)

	env.auth = NewAuthService(db, env.userRepo, "test-secret", time.Hour)
	env.users = NewUserService(db, env.userRepo, presenter, []string{"en", "ru"})
	env.pieces = NewPieceService(db, env.pieceRepo, env.ratingRepo, presenter)
	env.ratings = NewRatingService(db, env.ratingRepo, env.pieceRepo)
	env.reviews = NewReviewService(db, env.reviewRepo, env.pieceRepo, env.likeRepo, store, presenter)
	env.likes = NewLikeService(db, env.likeRepo, env.reviewRepo)
	env.comments = NewCommentService(db, env.commentRepo, env.reviewRepo, env.userRepo)

	return env
}

func (e *testEnv) createUser(t *testing.T, name string, admin bool) *models.User {
	t.Helper()
	user := &models.User{
		Email:        strings.ToLower(name) + "@example.com",
		PasswordHash: "x",
		Name:         name,
		IsAdmin:      admin,
	}
	require.NoError(t, e.userRepo.Create(e.db, user))
	return user
}

func (e *testEnv) createGroup(t *testing.T, handle string) *models.PieceGroup {
	t.Helper()
	group := &models.PieceGroup{Handle: handle, NameEn: handle}
	require.NoError(t, e.db.Create(group).Error)
	return group
}

func (e *testEnv) createPiece(t *testing.T, title string, author *models.User) *models.Piece {
	t.Helper()
	group := e.createGroup(t, "group-for-"+title)
	piece := &models.Piece{
		TitleEn:  title,
		GroupID:  group.ID,
		AuthorID: author.ID,
	}
	require.NoError(t, e.pieceRepo.Create(e.db, piece))
	return piece
}

func (e *testEnv) createReview(t *testing.T, piece *models.Piece, author *models.User, images ...string) *models.Review {
	t.Helper()
	review := &models.Review{
		Title:    "A review",
		Text:     "Body",
		Grade:    "7",
		Images:   images,
		PieceID:  piece.ID,
		AuthorID: author.ID,
	}
	require.NoError(t, e.reviewRepo.Create(e.db, review))
	return review
}

func caller(user *models.User) *auth.Context {
	return &auth.Context{
		UserID:          user.ID,
		IsAdmin:         user.IsAdmin,
		PreferredLocale: user.PreferredLocale,
	}
}

// fakeStorage records every call so tests can assert the exact cleanup
// set. failDeletes makes delete calls fail without affecting saves.
type fakeStorage struct {
	mu          sync.Mutex
	objects     map[string][]byte
	deleted     []string
	failDeletes bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Save(_ context.Context, path string, reader io.Reader, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[path] = data
	return nil
}

func (f *fakeStorage) Get(_ context.Context, path string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[path]
	if !ok {
		return nil, fmt.Errorf("not found: %s", path)
	}
	return io.NopCloser(strings.NewReader(string(data))), nil
}

func (f *fakeStorage) Delete(ctx context.Context, path string) error {
	return f.DeleteMany(ctx, []string{path})
}

func (f *fakeStorage) DeleteMany(_ context.Context, paths []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDeletes {
		return fmt.Errorf("storage unavailable")
	}
	for _, path := range paths {
		delete(f.objects, path)
		f.deleted = append(f.deleted, path)
	}
	return nil
}

func (f *fakeStorage) GetURL(_ context.Context, path string) (string, error) {
	return "https://cdn.test/" + path, nil
}

func (f *fakeStorage) GetSignedURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "https://cdn.test/" + path + "?signed", nil
}

func (f *fakeStorage) deletedPaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}
