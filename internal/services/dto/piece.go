package dto

import "time"

type CreatePieceRequest struct {
	TitleEn       string `json:"titleEn" validate:"required,max=200"`
	TitleRu       string `json:"titleRu" validate:"omitempty,max=200"`
	DescriptionEn string `json:"descriptionEn"`
	DescriptionRu string `json:"descriptionRu"`
	GroupID       string `json:"groupId" validate:"required"`
}

type RateRequest struct {
	Stars string `json:"stars" validate:"required"`
}

type RatingResponse struct {
	ID        string    `json:"id"`
	PieceID   string    `json:"pieceId"`
	AuthorID  string    `json:"authorId"`
	Stars     string    `json:"stars"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type GroupResponse struct {
	ID         string `json:"id"`
	Handle     string `json:"handle"`
	NameEn     string `json:"nameEn"`
	NameRu     string `json:"nameRu"`
	PieceCount int64  `json:"pieceCount"`
}

// PieceInfo is the denormalized piece block embedded in review responses.
type PieceInfo struct {
	ID      string `json:"id"`
	TitleEn string `json:"titleEn"`
	TitleRu string `json:"titleRu,omitempty"`
	GroupID string `json:"groupId"`
}

type PieceResponse struct {
	ID            string    `json:"id"`
	TitleEn       string    `json:"titleEn"`
	TitleRu       string    `json:"titleRu,omitempty"`
	DescriptionEn string    `json:"descriptionEn,omitempty"`
	DescriptionRu string    `json:"descriptionRu,omitempty"`
	GroupID       string    `json:"groupId"`
	AuthorID      string    `json:"authorId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`

	Group         *GroupResponse    `json:"group,omitempty"`
	AverageRating float64           `json:"averageRating"`
	TotalRatings  int64             `json:"totalRatings"`
	CallerStars   string            `json:"callerStars,omitempty"`
	Reviews       []*ReviewResponse `json:"reviews,omitempty"`
}
