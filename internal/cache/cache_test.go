package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/sociogram/backend/internal/apperrors"
	"github.com/sociogram/backend/internal/models"
	"github.com/sociogram/backend/internal/queries"
	"github.com/sociogram/backend/internal/repositories"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestCache(t *testing.T) (*CachedQueries, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}, &models.Like{}, &models.Share{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	inner := queries.NewService(
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresCommentRepository(db),
		repositories.NewPostgresLikeRepository(db),
		repositories.NewPostgresShareRepository(db),
		repositories.NewPostgresUserRepository(db),
	)
	// nil client: the cache layer must be a transparent passthrough
	return New(inner, nil), db
}

func seed(t *testing.T, db *gorm.DB) (*models.User, *models.Post) {
	t.Helper()
	user := &models.User{Username: "alice", Email: "alice@example.com"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	post := &models.Post{AuthorID: user.ID, Content: "hello"}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return user, post
}

func TestNilClientPassesThrough(t *testing.T) {
	cached, db := newTestCache(t)
	user, post := seed(t, db)
	ctx := context.Background()

	posts, err := cached.ListPosts(ctx, 10, 0)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 1 || posts[0].Content != "hello" {
		t.Fatalf("list posts = %+v, want the seeded post", posts)
	}

	got, err := cached.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.ID != post.ID || got.Author.Username != "alice" {
		t.Fatalf("get post = %+v", got)
	}

	byAuthor, err := cached.ListPostsByAuthor(ctx, user.ID)
	if err != nil {
		t.Fatalf("list by author: %v", err)
	}
	if len(byAuthor) != 1 {
		t.Fatalf("list by author = %+v", byAuthor)
	}
}

func TestNilClientSeesWritesImmediately(t *testing.T) {
	cached, db := newTestCache(t)
	_, post := seed(t, db)
	ctx := context.Background()

	if _, err := cached.GetPost(ctx, post.ID); err != nil {
		t.Fatalf("first read: %v", err)
	}

	// With no cache in play, a row update must be visible on the next read
	if err := db.Model(post).UpdateColumn("content", "edited").Error; err != nil {
		t.Fatalf("update post: %v", err)
	}
	got, err := cached.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if got.Content != "edited" {
		t.Fatalf("content = %q, want edited", got.Content)
	}
}

func TestNilClientErrorsAndInvalidation(t *testing.T) {
	cached, _ := newTestCache(t)
	ctx := context.Background()

	if _, err := cached.GetPost(ctx, 4242); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Must be a no-op, not a panic
	cached.InvalidatePost(ctx, 1)
}

func TestPassthroughListings(t *testing.T) {
	cached, db := newTestCache(t)
	user, post := seed(t, db)
	ctx := context.Background()

	if err := db.Create(&models.Comment{PostID: post.ID, AuthorID: user.ID, Content: "hi"}).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	if err := db.Create(&models.Like{PostID: post.ID, UserID: user.ID}).Error; err != nil {
		t.Fatalf("seed like: %v", err)
	}
	if err := db.Create(&models.Share{PostID: post.ID, UserID: user.ID}).Error; err != nil {
		t.Fatalf("seed share: %v", err)
	}

	comments, err := cached.ListCommentsForPost(ctx, post.ID)
	if err != nil || len(comments) != 1 {
		t.Fatalf("comments = %v, %v", comments, err)
	}
	likes, err := cached.ListLikesForPost(ctx, post.ID)
	if err != nil || len(likes) != 1 {
		t.Fatalf("likes = %v, %v", likes, err)
	}
	shares, err := cached.ListSharesForPost(ctx, post.ID)
	if err != nil || len(shares) != 1 {
		t.Fatalf("shares = %v, %v", shares, err)
	}
	users, err := cached.ListUsers(ctx)
	if err != nil || len(users) != 1 {
		t.Fatalf("users = %v, %v", users, err)
	}
}
