package models

import "time"

type User struct {
	BaseModel
	Email            string `gorm:"uniqueIndex;not null"`
	PasswordHash     string `gorm:"not null"`
	Name             string `gorm:"not null"`
	Image            string
	Bio              string    `gorm:"type:text"`
	IsAdmin          bool      `gorm:"default:false"`
	PreferredLocale  string    `gorm:"type:varchar(5)"`
	RegistrationDate time.Time `gorm:"autoCreateTime"`

	// Relations
	Reviews  []Review        `gorm:"foreignKey:AuthorID"`
	Comments []ReviewComment `gorm:"foreignKey:AuthorID"`
	Likes    []ReviewLike    `gorm:"foreignKey:AuthorID"`
	Ratings  []PieceRating   `gorm:"foreignKey:AuthorID"`
}
