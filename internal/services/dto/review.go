package dto

import "time"

// ======================
// Request DTOs
// ======================

type CreateReviewRequest struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Text    string   `json:"text" validate:"required"`
	Grade   string   `json:"grade" validate:"required,numeric"`
	Images  []string `json:"images" validate:"omitempty,dive,required"`
	PieceID string   `json:"pieceId" validate:"required"`
}

// StoredImage mirrors an object already persisted in storage: FullPath is
// the identity compared against the new target list, Path is what the
// storage delete call takes.
type StoredImage struct {
	Path     string `json:"path" validate:"required"`
	FullPath string `json:"fullPath" validate:"required"`
}

type UpdateReviewRequest struct {
	Title     string        `json:"title" validate:"required,max=200"`
	Text      string        `json:"text" validate:"required"`
	Grade     string        `json:"grade" validate:"required,numeric"`
	Images    []string      `json:"images" validate:"omitempty,dive,required"`
	OldImages []StoredImage `json:"oldImages" validate:"omitempty,dive"`
	PieceID   string        `json:"pieceId" validate:"required"`
}

// Comment text is accepted as-is, empty included. The only hard gate on
// commenting is an authenticated session.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// ======================
// Response DTOs
// ======================

// ImageResponse pairs the canonical storage path with a URL derived at
// read time (public or signed depending on storage configuration).
type ImageResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

type ReviewResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Text      string          `json:"text"`
	Grade     string          `json:"grade"`
	Images    []ImageResponse `json:"images"`
	PieceID   string          `json:"pieceId"`
	AuthorID  string          `json:"authorId"`
	LikeCount int64           `json:"likeCount"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`

	Author   *AuthorInfo        `json:"author,omitempty"`
	Piece    *PieceInfo         `json:"piece,omitempty"`
	Comments []*CommentResponse `json:"comments,omitempty"`
}

type CommentResponse struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	ReviewID  string      `json:"reviewId"`
	AuthorID  string      `json:"authorId"`
	CreatedAt time.Time   `json:"createdAt"`
	Author    *AuthorInfo `json:"author,omitempty"`
}

type LikeResponse struct {
	ID       string `json:"id"`
	ReviewID string `json:"reviewId"`
	AuthorID string `json:"authorId"`
	Liked    bool   `json:"liked"`
}
