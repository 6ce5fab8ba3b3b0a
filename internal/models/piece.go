package models

type PieceGroup struct {
	BaseModel
	Handle string `gorm:"uniqueIndex;not null"`
	NameEn string `gorm:"not null"`
	NameRu string `gorm:"not null"`

	// Relations
	Pieces []Piece `gorm:"foreignKey:GroupID"`
}

const (
	GroupHandleMovies = "movies"
	GroupHandleTV     = "tv"
	GroupHandleGames  = "games"
)

type Piece struct {
	BaseModel
	TitleEn       string `gorm:"not null"`
	TitleRu       string
	DescriptionEn string `gorm:"type:text"`
	DescriptionRu string `gorm:"type:text"`
	GroupID       string `gorm:"not null;index"`
	AuthorID      string `gorm:"index"`

	// Relations
	Group   PieceGroup    `gorm:"foreignKey:GroupID"`
	Author  User          `gorm:"foreignKey:AuthorID"`
	Reviews []Review      `gorm:"foreignKey:PieceID"`
	Ratings []PieceRating `gorm:"foreignKey:PieceID"`
}
