package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/trainymonked/reviews/internal/models"
)

var (
	ErrPieceNotFound = errors.New("piece not found")
	ErrGroupNotFound = errors.New("piece group not found")
)

// RatingSummary is the aggregate shown on piece pages: average of all
// per-user star ratings and how many there are.
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
}

type PieceRepository interface {
	Create(db *gorm.DB, piece *models.Piece) error
	FindByID(db *gorm.DB, id string) (*models.Piece, error)
	FindByIDWithReviews(db *gorm.DB, id string) (*models.Piece, error)
	FindAll(db *gorm.DB) ([]models.Piece, error)
	Exists(db *gorm.DB, id string) (bool, error)

	FindGroupByID(db *gorm.DB, id string) (*models.PieceGroup, error)
	FindGroups(db *gorm.DB) ([]models.PieceGroup, error)
	CountPiecesByGroup(db *gorm.DB) (map[string]int64, error)

	GetRatingSummary(db *gorm.DB, pieceID string) (*RatingSummary, error)
	GetRatingSummaries(db *gorm.DB, pieceIDs []string) (map[string]RatingSummary, error)
}

type pieceRepository struct{}

func NewPieceRepository() PieceRepository {
	return &pieceRepository{}
}

func (r *pieceRepository) Create(db *gorm.DB, piece *models.Piece) error {
	return db.Create(piece).Error
}

func (r *pieceRepository) FindByID(db *gorm.DB, id string) (*models.Piece, error) {
	var piece models.Piece
	err := db.Preload("Group").First(&piece, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPieceNotFound
		}
		return nil, err
	}
	return &piece, nil
}

func (r *pieceRepository) FindByIDWithReviews(db *gorm.DB, id string) (*models.Piece, error) {
	var piece models.Piece
	err := db.Preload("Group").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Reviews.Author").
		First(&piece, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPieceNotFound
		}
		return nil, err
	}
	return &piece, nil
}

func (r *pieceRepository) FindAll(db *gorm.DB) ([]models.Piece, error) {
	var pieces []models.Piece
	err := db.Preload("Group").Order("created_at DESC").Find(&pieces).Error
	return pieces, err
}

func (r *pieceRepository) Exists(db *gorm.DB, id string) (bool, error) {
	var count int64
	err := db.Model(&models.Piece{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *pieceRepository) FindGroupByID(db *gorm.DB, id string) (*models.PieceGroup, error) {
	var group models.PieceGroup
	if err := db.First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *pieceRepository) FindGroups(db *gorm.DB) ([]models.PieceGroup, error) {
	var groups []models.PieceGroup
	err := db.Order("handle").Find(&groups).Error
	return groups, err
}

func (r *pieceRepository) CountPiecesByGroup(db *gorm.DB) (map[string]int64, error) {
	type row struct {
		GroupID string
		Count   int64
	}
	var rows []row
	err := db.Model(&models.Piece{}).
		Select("group_id, COUNT(*) as count").
		Group("group_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.GroupID] = r.Count
	}
	return counts, nil
}

// GetRatingSummary computes the piece average as sum(stars)/count over all
// per-user ratings. Stars are stored as numeric strings, the CAST keeps
// the expression valid on both postgres and sqlite.
func (r *pieceRepository) GetRatingSummary(db *gorm.DB, pieceID string) (*RatingSummary, error) {
	var summary RatingSummary
	err := db.Model(&models.PieceRating{}).
		Where("piece_id = ?", pieceID).
		Select("COALESCE(AVG(CAST(stars AS REAL)), 0) as average_rating, COUNT(*) as total_ratings").
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetRatingSummaries aggregates ratings for many pieces in one grouped
// query. Pieces without ratings are absent from the result.
func (r *pieceRepository) GetRatingSummaries(db *gorm.DB, pieceIDs []string) (map[string]RatingSummary, error) {
	summaries := make(map[string]RatingSummary, len(pieceIDs))
	if len(pieceIDs) == 0 {
		return summaries, nil
	}

	type row struct {
		PieceID       string
		AverageRating float64
		TotalRatings  int64
	}
	var rows []row
	err := db.Model(&models.PieceRating{}).
		Select("piece_id, COALESCE(AVG(CAST(stars AS REAL)), 0) as average_rating, COUNT(*) as total_ratings").
		Where("piece_id IN ?", pieceIDs).
		Group("piece_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		summaries[r.PieceID] = RatingSummary{
			AverageRating: r.AverageRating,
			TotalRatings:  r.TotalRatings,
		}
	}
	return summaries, nil
}
