package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainymonked/reviews/internal/apperrors"
	"github.com/trainymonked/reviews/internal/models"
	"github.com/trainymonked/reviews/internal/services/dto"
)

func TestCreateReview(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", false)
	piece := env.createPiece(t, "Dune", user)

	resp, err := env.reviews.Create(context.Background(), caller(user), &dto.CreateReviewRequest{
		Title:   "Masterpiece",
		Text:    "Telling, not showing",
		Grade:   "9",
		Images:  []string{"review_images/a.jpg", "review_images/b.jpg"},
		PieceID: piece.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "Masterpiece", resp.Title)
	assert.Equal(t, "9", resp.Grade)
	assert.Equal(t, user.ID, resp.AuthorID)
	require.Len(t, resp.Images, 2)
	assert.Equal(t, "review_images/a.jpg", resp.Images[0].Path)
	assert.Equal(t, "https://cdn.test/review_images/a.jpg", resp.Images[0].URL)
}

func TestCreateReviewValidatesGrade(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", false)
	piece := env.createPiece(t, "Dune", user)

	for _, grade := range []string{"0", "11", "x", ""} {
		_, err := env.reviews.Create(context.Background(), caller(user), &dto.CreateReviewRequest{
			Title:   "t",
			Text:    "t",
			Grade:   grade,
			PieceID: piece.ID,
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidGrade, "grade=%q", grade)
	}
}

func TestCreateReviewRejectsAnonymous(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", false)
	piece := env.createPiece(t, "Dune", user)

	_, err := env.reviews.Create(context.Background(), nil, &dto.CreateReviewRequest{
		Title: "t", Text: "t", Grade: "5", PieceID: piece.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestUpdateReviewReconcilesImages(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", false)
	piece := env.createPiece(t, "Dune", user)
	review := env.createReview(t, piece, user,
		"review_images/keep.jpg", "review_images/drop1.jpg", "review_images/drop2.jpg")

	resp, err := env.reviews.Update(context.Background(), caller(user), review.ID, &dto.UpdateReviewRequest{
		Title:  "Updated",
		Text:   "Updated text",
		Grade:  "8",
		Images: []string{"review_images/keep.jpg", "review_images/new.jpg"},
		OldImages: []dto.StoredImage{
			{Path: "review_images/keep.jpg", FullPath: "review_images/keep.jpg"},
			{Path: "review_images/drop1.jpg", FullPath: "review_images/drop1.jpg"},
			{Path: "review_images/drop2.jpg", FullPath: "review_images/drop2.jpg"},
		},
		PieceID: piece.ID,
	})
	require.NoError(t, err)

	// Exactly the images absent from the new set get removed from storage.
	assert.ElementsMatch(t,
		[]string{"review_images/drop1.jpg", "review_images/drop2.jpg"},
		env.store.deletedPaths())

	// Order of the new list is preserved.
	require.Len(t, resp.Images, 2)
	assert.Equal(t, "review_images/keep.jpg", resp.Images[0].Path)
	assert.Equal(t, "review_images/new.jpg", resp.Images[1].Path)
}

func TestUpdateReviewStorageFailureDoesNotBlock(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", false)
	piece := env.createPiece(t, "Dune", user)
	review := env.createReview(t, piece, user, "review_images/old.jpg")

	env.store.failDeletes = true

	resp, err := env.reviews.Update(context.Background(), caller(user), review.ID, &dto.UpdateReviewRequest{
		Title:  "Updated",
		Text:   "Updated text",
		Grade:  "6",
		Images: []string{},
		OldImages: []dto.StoredImage{
			{Path: "review_images/old.jpg", FullPath: "review_images/old.jpg"},
		},
		PieceID: piece.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Images)
	assert.Equal(t, "Updated", resp.Title)
}

func TestUpdateReviewOwnership(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice", false)
	mallory := env.createUser(t, "Mallory", false)
	admin := env.createUser(t, "Admin", true)
	piece := env.createPiece(t, "Dune", alice)
	review := env.createReview(t, piece, alice)

	req := &dto.UpdateReviewRequest{
		Title: "Edited", Text: "Edited", Grade: "5", PieceID: piece.ID,
	}

	_, err := env.reviews.Update(context.Background(), caller(mallory), review.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrNotResourceOwner)

	// An admin may edit, but authorship never moves to the editor.
	resp, err := env.reviews.Update(context.Background(), caller(admin), review.ID, req)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, resp.AuthorID)
}

func TestDeleteReviewCleansUp(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice", false)
	bob := env.createUser(t, "Bob", false)
	piece := env.createPiece(t, "Dune", alice)
	review := env.createReview(t, piece, alice, "review_images/a.jpg", "review_images/b.jpg")

	_, err := env.likes.Toggle(caller(bob), review.ID)
	require.NoError(t, err)
	_, err = env.comments.Add(caller(bob), review.ID, &dto.CreateCommentRequest{Text: "Nice"})
	require.NoError(t, err)

	require.NoError(t, env.reviews.Delete(context.Background(), caller(alice), review.ID))

	assert.ElementsMatch(t,
		[]string{"review_images/a.jpg", "review_images/b.jpg"},
		env.store.deletedPaths())

	_, err = env.reviews.Get(context.Background(), review.ID)
	assert.ErrorIs(t, err, apperrors.ErrReviewNotFound)

	var likeCount, commentCount int64
	require.NoError(t, env.db.Model(&models.ReviewLike{}).Count(&likeCount).Error)
	require.NoError(t, env.db.Model(&models.ReviewComment{}).Count(&commentCount).Error)
	assert.Zero(t, likeCount)
	assert.Zero(t, commentCount)
}

func TestDeleteReviewStorageFailureStillDeletesRow(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", false)
	piece := env.createPiece(t, "Dune", user)
	review := env.createReview(t, piece, user, "review_images/a.jpg")

	env.store.failDeletes = true

	require.NoError(t, env.reviews.Delete(context.Background(), caller(user), review.ID))

	_, err := env.reviews.Get(context.Background(), review.ID)
	assert.ErrorIs(t, err, apperrors.ErrReviewNotFound)
}

func TestDeleteReviewOwnership(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice", false)
	mallory := env.createUser(t, "Mallory", false)
	piece := env.createPiece(t, "Dune", alice)
	review := env.createReview(t, piece, alice)

	err := env.reviews.Delete(context.Background(), caller(mallory), review.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotResourceOwner)

	_, err = env.reviews.Get(context.Background(), review.ID)
	assert.NoError(t, err)
}

func TestGetReviewIncludesCommentsAndLikes(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice", false)
	bob := env.createUser(t, "Bob", false)
	piece := env.createPiece(t, "Dune", alice)
	review := env.createReview(t, piece, alice)

	_, err := env.likes.Toggle(caller(alice), review.ID)
	require.NoError(t, err)
	_, err = env.likes.Toggle(caller(bob), review.ID)
	require.NoError(t, err)
	_, err = env.comments.Add(caller(bob), review.ID, &dto.CreateCommentRequest{Text: "Agreed"})
	require.NoError(t, err)

	resp, err := env.reviews.Get(context.Background(), review.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 2, resp.LikeCount)
	require.Len(t, resp.Comments, 1)
	assert.Equal(t, "Agreed", resp.Comments[0].Text)
	require.NotNil(t, resp.Comments[0].Author)
	assert.Equal(t, "Bob", resp.Comments[0].Author.Name)
	require.NotNil(t, resp.Piece)
	assert.Equal(t, piece.ID, resp.Piece.ID)
}

// Full lifecycle: rate, review, like, comment, then tear the review down.
func TestReviewLifecycle(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice", false)
	bob := env.createUser(t, "Bob", false)
	piece := env.createPiece(t, "Dune", alice)

	_, err := env.ratings.Rate(caller(alice), piece.ID, "5")
	require.NoError(t, err)
	_, err = env.ratings.Rate(caller(bob), piece.ID, "3")
	require.NoError(t, err)

	review, err := env.reviews.Create(context.Background(), caller(alice), &dto.CreateReviewRequest{
		Title: "Great", Text: "Loved it", Grade: "9", PieceID: piece.ID,
	})
	require.NoError(t, err)

	_, err = env.likes.Toggle(caller(bob), review.ID)
	require.NoError(t, err)
	_, err = env.comments.Add(caller(bob), review.ID, &dto.CreateCommentRequest{Text: "Same"})
	require.NoError(t, err)

	pieceResp, err := env.pieces.Get(context.Background(), caller(bob), piece.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, pieceResp.AverageRating, 0.001)
	assert.EqualValues(t, 2, pieceResp.TotalRatings)
	assert.Equal(t, "3", pieceResp.CallerStars)
	require.Len(t, pieceResp.Reviews, 1)
	assert.EqualValues(t, 1, pieceResp.Reviews[0].LikeCount)

	require.NoError(t, env.reviews.Delete(context.Background(), caller(alice), review.ID))

	pieceResp, err = env.pieces.Get(context.Background(), caller(bob), piece.ID)
	require.NoError(t, err)
	assert.Empty(t, pieceResp.Reviews)
	// Ratings survive review deletion.
	assert.EqualValues(t, 2, pieceResp.TotalRatings)
}
