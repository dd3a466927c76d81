// Package reconcile periodically recounts the denormalized post counters
// from their source rows and corrects any drift. Under normal operation the
// transactional counter updates keep everything in sync and this job finds
// nothing to do; it exists as a safety net against operator edits and bugs.
package reconcile

import (
	"context"
	"log"
	"time"

	"github.com/samber/lo"
	"github.com/sociogram/backend/internal/models"
	"github.com/sociogram/backend/internal/repositories"
	"gorm.io/gorm"
)

// Reconciler recounts post counters on a fixed interval
type Reconciler struct {
	db       *gorm.DB
	interval time.Duration
}

// New creates a Reconciler. An interval of 0 disables the background loop.
func New(db *gorm.DB, interval time.Duration) *Reconciler {
	return &Reconciler{db: db, interval: interval}
}

// Run recounts on every tick until ctx is cancelled
func (r *Reconciler) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fixed, err := r.ReconcileOnce(ctx)
			if err != nil {
				log.Printf("reconcile: %v", err)
				continue
			}
			if fixed > 0 {
				log.Printf("reconcile: corrected counters on %d posts", fixed)
			}
		}
	}
}

// ReconcileOnce recounts every post's counters from the Comment/Like/Share
// rows and rewrites the ones that drifted. Returns how many posts were
// corrected. Each correction runs in its own transaction against a recount
// taken inside that transaction, so a concurrent interaction committing
// between read and write cannot be clobbered with a stale total.
func (r *Reconciler) ReconcileOnce(ctx context.Context) (int, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).Select("id").Find(&posts).Error; err != nil {
		return 0, err
	}
	ids := lo.Map(posts, func(p models.Post, _ int) uint { return p.ID })

	fixed := 0
	for _, id := range ids {
		changed, err := r.reconcilePost(ctx, id)
		if err != nil {
			return fixed, err
		}
		if changed {
			fixed++
		}
	}
	return fixed, nil
}

func (r *Reconciler) reconcilePost(ctx context.Context, postID uint) (bool, error) {
	changed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		likes, err := repositories.NewPostgresLikeRepository(tx).CountByPostID(ctx, postID)
		if err != nil {
			return err
		}
		comments, err := repositories.NewPostgresCommentRepository(tx).CountByPostID(ctx, postID)
		if err != nil {
			return err
		}
		shares, err := repositories.NewPostgresShareRepository(tx).CountByPostID(ctx, postID)
		if err != nil {
			return err
		}

		res := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			Where("likes_count <> ? OR comments_count <> ? OR shares_count <> ?", likes, comments, shares).
			UpdateColumns(map[string]interface{}{
				"likes_count":    likes,
				"comments_count": comments,
				"shares_count":   shares,
			})
		if res.Error != nil {
			return res.Error
		}
		changed = res.RowsAffected > 0
		return nil
	})
	return changed, err
}
