package repositories

import (
	"context"

	"github.com/sociogram/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	GetLike(ctx context.Context, postID, userID uint) (*models.Like, error)
	GetLikesByPostID(ctx context.Context, postID uint) ([]models.Like, error)
	CountByPostID(ctx context.Context, postID uint) (int64, error)
	DeleteLike(ctx context.Context, postID, userID uint) error
	DeleteLikesByPostID(ctx context.Context, postID uint) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts a like row. A second like for the same (post, user)
// violates the unique index and surfaces as gorm.ErrDuplicatedKey.
func (r *PostgresLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

// GetLike retrieves a specific like by postID and userID
func (r *PostgresLikeRepository) GetLike(ctx context.Context, postID, userID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// GetLikesByPostID retrieves all likes for a specific post with users preloaded
func (r *PostgresLikeRepository) GetLikesByPostID(ctx context.Context, postID uint) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("id").
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}

// CountByPostID counts the likes for a specific post
func (r *PostgresLikeRepository) CountByPostID(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

// DeleteLike deletes the like for a (post, user) pair
func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, postID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteLikesByPostID deletes all likes belonging to a post
func (r *PostgresLikeRepository) DeleteLikesByPostID(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Like{}).Error
}
