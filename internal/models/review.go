package models

import "gorm.io/datatypes"

// Review images hold canonical storage paths in caller-supplied order.
// Public or signed URLs are derived at read time and never persisted.
type Review struct {
	BaseModel
	Title    string `gorm:"not null"`
	Text     string `gorm:"type:text;not null"`
	Grade    string `gorm:"type:varchar(2);not null"`
	Images   datatypes.JSONSlice[string]
	PieceID  string `gorm:"not null;index"`
	AuthorID string `gorm:"not null;index"`

	// Relations
	Piece    Piece           `gorm:"foreignKey:PieceID"`
	Author   User            `gorm:"foreignKey:AuthorID"`
	Comments []ReviewComment `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
	Likes    []ReviewLike    `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
}

type ReviewComment struct {
	BaseModel
	Text     string `gorm:"type:text;not null"`
	ReviewID string `gorm:"not null;index"`
	AuthorID string `gorm:"not null;index"`

	// Relations
	Review Review `gorm:"foreignKey:ReviewID"`
	Author User   `gorm:"foreignKey:AuthorID"`
}

// One row per (review, author). Toggling flips Liked in place; rows are
// never deleted so the unique index keeps concurrent toggles from
// producing duplicates.
type ReviewLike struct {
	BaseModel
	ReviewID string `gorm:"not null;uniqueIndex:idx_like_review_author"`
	AuthorID string `gorm:"not null;uniqueIndex:idx_like_review_author"`
	Liked    bool   `gorm:"not null"`

	// Relations
	Review Review `gorm:"foreignKey:ReviewID"`
	Author User   `gorm:"foreignKey:AuthorID"`
}
