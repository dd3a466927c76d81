package reconcile

import (
	"context"
	"fmt"
	"testing"

	"github.com/sociogram/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func seedPostWithRows(t *testing.T, db *gorm.DB, likes, comments, shares int) *models.Post {
	t.Helper()
	user := &models.User{Username: "alice", Email: "alice@example.com"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	post := &models.Post{AuthorID: user.ID, Content: "hello"}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	for i := 0; i < likes; i++ {
		liker := &models.User{
			Username: fmt.Sprintf("liker-%d", i),
			Email:    fmt.Sprintf("liker-%d@example.com", i),
		}
		if err := db.Create(liker).Error; err != nil {
			t.Fatalf("seed liker: %v", err)
		}
		if err := db.Create(&models.Like{PostID: post.ID, UserID: liker.ID}).Error; err != nil {
			t.Fatalf("seed like: %v", err)
		}
	}
	for i := 0; i < comments; i++ {
		if err := db.Create(&models.Comment{PostID: post.ID, AuthorID: user.ID, Content: "c"}).Error; err != nil {
			t.Fatalf("seed comment: %v", err)
		}
	}
	for i := 0; i < shares; i++ {
		if err := db.Create(&models.Share{PostID: post.ID, UserID: user.ID}).Error; err != nil {
			t.Fatalf("seed share: %v", err)
		}
	}
	return post
}

func drift(t *testing.T, db *gorm.DB, postID uint, likes, comments, shares int) {
	t.Helper()
	err := db.Model(&models.Post{}).Where("id = ?", postID).UpdateColumns(map[string]interface{}{
		"likes_count":    likes,
		"comments_count": comments,
		"shares_count":   shares,
	}).Error
	if err != nil {
		t.Fatalf("drift counters: %v", err)
	}
}

func counters(t *testing.T, db *gorm.DB, postID uint) (int, int, int) {
	t.Helper()
	var post models.Post
	if err := db.First(&post, postID).Error; err != nil {
		t.Fatalf("reload post: %v", err)
	}
	return post.LikesCount, post.CommentsCount, post.SharesCount
}

func TestReconcileCorrectsDriftedCounters(t *testing.T) {
	db := newTestDB(t)
	post := seedPostWithRows(t, db, 2, 3, 1)
	drift(t, db, post.ID, 99, 0, 7)

	fixed, err := New(db, 0).ReconcileOnce(context.Background())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if fixed != 1 {
		t.Fatalf("fixed = %d, want 1", fixed)
	}

	likes, comments, shares := counters(t, db, post.ID)
	if likes != 2 || comments != 3 || shares != 1 {
		t.Fatalf("counters = %d/%d/%d, want 2/3/1", likes, comments, shares)
	}
}

func TestReconcileLeavesConsistentPostsAlone(t *testing.T) {
	db := newTestDB(t)
	post := seedPostWithRows(t, db, 1, 1, 0)
	drift(t, db, post.ID, 1, 1, 0)

	fixed, err := New(db, 0).ReconcileOnce(context.Background())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if fixed != 0 {
		t.Fatalf("fixed = %d, want 0 for a consistent post", fixed)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	post := seedPostWithRows(t, db, 1, 0, 2)
	drift(t, db, post.ID, 0, 5, 0)

	r := New(db, 0)
	if fixed, err := r.ReconcileOnce(context.Background()); err != nil || fixed != 1 {
		t.Fatalf("first pass: fixed=%d err=%v", fixed, err)
	}
	if fixed, err := r.ReconcileOnce(context.Background()); err != nil || fixed != 0 {
		t.Fatalf("second pass: fixed=%d err=%v", fixed, err)
	}

	likes, comments, shares := counters(t, db, post.ID)
	if likes != 1 || comments != 0 || shares != 2 {
		t.Fatalf("counters = %d/%d/%d, want 1/0/2", likes, comments, shares)
	}
}

func TestReconcileEmptyTable(t *testing.T) {
	db := newTestDB(t)

	fixed, err := New(db, 0).ReconcileOnce(context.Background())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if fixed != 0 {
		t.Fatalf("fixed = %d, want 0", fixed)
	}
}
