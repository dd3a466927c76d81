package repositories

import (
	"context"

	"github.com/sociogram/backend/internal/models"
	"gorm.io/gorm"
)

// ShareRepository defines the interface for share data operations
type ShareRepository interface {
	CreateShare(ctx context.Context, share *models.Share) error
	GetSharesByPostID(ctx context.Context, postID uint) ([]models.Share, error)
	CountByPostID(ctx context.Context, postID uint) (int64, error)
	DeleteSharesByPostID(ctx context.Context, postID uint) error
}

// PostgresShareRepository implements ShareRepository for PostgreSQL
type PostgresShareRepository struct {
	db *gorm.DB
}

// NewPostgresShareRepository creates a new PostgresShareRepository
func NewPostgresShareRepository(db *gorm.DB) *PostgresShareRepository {
	return &PostgresShareRepository{db: db}
}

// CreateShare inserts a share row. Shares are intentionally not unique per
// (post, user): sharing twice records two shares.
func (r *PostgresShareRepository) CreateShare(ctx context.Context, share *models.Share) error {
	return r.db.WithContext(ctx).Create(share).Error
}

// GetSharesByPostID retrieves all shares for a specific post, newest first,
// with users preloaded
func (r *PostgresShareRepository) GetSharesByPostID(ctx context.Context, postID uint) ([]models.Share, error) {
	var shares []models.Share
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&shares).Error
	if err != nil {
		return nil, err
	}
	return shares, nil
}

// CountByPostID counts the shares for a specific post
func (r *PostgresShareRepository) CountByPostID(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Share{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

// DeleteSharesByPostID deletes all shares belonging to a post
func (r *PostgresShareRepository) DeleteSharesByPostID(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Share{}).Error
}
