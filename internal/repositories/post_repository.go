package repositories

import (
	"context"

	"github.com/sociogram/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetPostWithRelations(ctx context.Context, id uint) (*models.Post, error)
	GetAllPosts(ctx context.Context, limit, offset int) ([]models.Post, error)
	GetPostsByAuthorID(ctx context.Context, authorID uint) ([]models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id uint) error
	IncrementLikesCount(ctx context.Context, postID uint) error
	DecrementLikesCount(ctx context.Context, postID uint) error
	IncrementCommentsCount(ctx context.Context, postID uint) error
	DecrementCommentsCount(ctx context.Context, postID uint) error
	IncrementSharesCount(ctx context.Context, postID uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// withRelations eager-loads the author and the nested interaction entities so
// listing N posts stays at a constant number of queries instead of N follow-ups.
func (r *PostgresPostRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments.Author").
		Preload("Likes.User").
		Preload("Shares.User")
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID retrieves a post by ID without loading relations
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostWithRelations retrieves a post by ID with author and interactions preloaded
func (r *PostgresPostRepository) GetPostWithRelations(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.withRelations(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves posts newest first with pagination.
// Ties on created_at are broken by id descending so pages are deterministic.
func (r *PostgresPostRepository) GetAllPosts(ctx context.Context, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := r.withRelations(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByAuthorID retrieves all posts by a specific author, newest first
func (r *PostgresPostRepository) GetPostsByAuthorID(ctx context.Context, authorID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.withRelations(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost updates an existing post in PostgreSQL
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// DeletePost deletes a post by ID from PostgreSQL
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementLikesCount increments the likes count of a post
func (r *PostgresPostRepository) IncrementLikesCount(ctx context.Context, postID uint) error {
	return r.bumpCounter(ctx, postID, "likes_count", +1)
}

// DecrementLikesCount decrements the likes count of a post, floored at 0
func (r *PostgresPostRepository) DecrementLikesCount(ctx context.Context, postID uint) error {
	return r.bumpCounter(ctx, postID, "likes_count", -1)
}

// IncrementCommentsCount increments the comments count of a post
func (r *PostgresPostRepository) IncrementCommentsCount(ctx context.Context, postID uint) error {
	return r.bumpCounter(ctx, postID, "comments_count", +1)
}

// DecrementCommentsCount decrements the comments count of a post, floored at 0
func (r *PostgresPostRepository) DecrementCommentsCount(ctx context.Context, postID uint) error {
	return r.bumpCounter(ctx, postID, "comments_count", -1)
}

// IncrementSharesCount increments the shares count of a post
func (r *PostgresPostRepository) IncrementSharesCount(ctx context.Context, postID uint) error {
	return r.bumpCounter(ctx, postID, "shares_count", +1)
}

// bumpCounter adjusts a denormalized counter column in place. Decrements are
// floored at 0 with a CASE expression that works on both PostgreSQL and the
// sqlite driver used in tests.
func (r *PostgresPostRepository) bumpCounter(ctx context.Context, postID uint, column string, delta int) error {
	expr := gorm.Expr(column+" + ?", delta)
	if delta < 0 {
		expr = gorm.Expr("CASE WHEN "+column+" >= ? THEN "+column+" - ? ELSE 0 END", -delta, -delta)
	}
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn(column, expr).Error
}
