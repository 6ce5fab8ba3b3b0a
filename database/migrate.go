package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/trainymonked/reviews/internal/logger"
	"github.com/trainymonked/reviews/internal/models"
)

// Migrate brings the schema up to date for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.PieceGroup{},
		&models.Piece{},
		&models.Review{},
		&models.ReviewComment{},
		&models.ReviewLike{},
		&models.PieceRating{},
	)
}

// SeedGroups creates the built-in piece groups. Idempotent: existing
// handles are left untouched.
func SeedGroups(db *gorm.DB) error {
	groups := []models.PieceGroup{
		{Handle: models.GroupHandleMovies, NameEn: "Movies", NameRu: "Фильмы"},
		{Handle: models.GroupHandleTV, NameEn: "TV Series", NameRu: "Сериалы"},
		{Handle: models.GroupHandleGames, NameEn: "Games", NameRu: "Игры"},
	}

	for _, group := range groups {
		var existing models.PieceGroup
		err := db.Where("handle = ?", group.Handle).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&group).Error; err != nil {
			return err
		}
		logger.Info("Seeded piece group", "handle", group.Handle)
	}
	return nil
}
