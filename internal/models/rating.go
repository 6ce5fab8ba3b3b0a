package models

// One row per (piece, author). Re-rating updates Stars in place; rating the
// same value again is a no-op. Stars is kept as a numeric string ("1".."5")
// to match the wire format.
type PieceRating struct {
	BaseModel
	PieceID  string `gorm:"not null;uniqueIndex:idx_rating_piece_author"`
	AuthorID string `gorm:"not null;uniqueIndex:idx_rating_piece_author"`
	Stars    string `gorm:"type:varchar(1);not null"`

	// Relations
	Piece  Piece `gorm:"foreignKey:PieceID"`
	Author User  `gorm:"foreignKey:AuthorID"`
}
