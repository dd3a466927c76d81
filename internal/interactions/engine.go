// Package interactions implements the write side of the API: every mutation
// of Comment/Like/Share rows updates the owning post's denormalized counter
// in the same database transaction, so the counters and the rows they
// summarize can never commit out of sync.
package interactions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sociogram/backend/internal/apperrors"
	"github.com/sociogram/backend/internal/models"
	"github.com/sociogram/backend/internal/repositories"
	"gorm.io/gorm"
)

// toggleAttempts bounds the retry loop for like-toggle insert/delete races.
const toggleAttempts = 3

// Engine applies post/comment/like/share mutations under transactional
// discipline. Caller identity is passed explicitly into every call; a zero
// callerID means anonymous and is rejected for all mutations.
type Engine struct {
	db *gorm.DB
}

// NewEngine creates a new Engine on top of the given database handle
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// CreatePost creates a new post for the given author
func (e *Engine) CreatePost(ctx context.Context, authorID uint, content string, imageURL *string) (*models.Post, error) {
	if authorID == 0 {
		return nil, apperrors.ErrUnauthenticated
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("post content must not be empty: %w", apperrors.ErrInvalid)
	}

	post := &models.Post{
		AuthorID: authorID,
		Content:  content,
		ImageURL: imageURL,
	}
	if err := repositories.NewPostgresPostRepository(e.db).CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost edits a post's content and/or image URL. Only the author may
// edit. An empty content argument leaves the content unchanged; a nil
// imageURL leaves the image unchanged (pass a pointer to "" to clear it).
func (e *Engine) UpdatePost(ctx context.Context, postID, callerID uint, content string, imageURL *string) (*models.Post, error) {
	if callerID == 0 {
		return nil, apperrors.ErrUnauthenticated
	}

	posts := repositories.NewPostgresPostRepository(e.db)
	post, err := posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, asNotFound(err, "post", postID)
	}
	if post.AuthorID != callerID {
		return nil, apperrors.ErrForbidden
	}

	if content != "" {
		post.Content = content
	}
	if imageURL != nil {
		post.ImageURL = imageURL
	}
	post.UpdatedAt = time.Now()

	if err := posts.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost deletes a post together with all of its comments, likes and
// shares. Only the author may delete; the cascade and the post delete share
// one transaction so a failure leaves everything in place.
func (e *Engine) DeletePost(ctx context.Context, postID, callerID uint) error {
	if callerID == 0 {
		return apperrors.ErrUnauthenticated
	}

	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posts := repositories.NewPostgresPostRepository(tx)

		post, err := posts.GetPostByID(ctx, postID)
		if err != nil {
			return asNotFound(err, "post", postID)
		}
		if post.AuthorID != callerID {
			return apperrors.ErrForbidden
		}

		if err := repositories.NewPostgresCommentRepository(tx).DeleteCommentsByPostID(ctx, postID); err != nil {
			return err
		}
		if err := repositories.NewPostgresLikeRepository(tx).DeleteLikesByPostID(ctx, postID); err != nil {
			return err
		}
		if err := repositories.NewPostgresShareRepository(tx).DeleteSharesByPostID(ctx, postID); err != nil {
			return err
		}
		return posts.DeletePost(ctx, postID)
	})
}

// AddComment creates a comment on a post and increments the post's comment
// counter, both in one transaction.
func (e *Engine) AddComment(ctx context.Context, postID, authorID uint, content string) (*models.Comment, error) {
	if authorID == 0 {
		return nil, apperrors.ErrUnauthenticated
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("comment content must not be empty: %w", apperrors.ErrInvalid)
	}

	var comment *models.Comment
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posts := repositories.NewPostgresPostRepository(tx)

		if _, err := posts.GetPostByID(ctx, postID); err != nil {
			return asNotFound(err, "post", postID)
		}

		comment = &models.Comment{
			PostID:   postID,
			AuthorID: authorID,
			Content:  content,
		}
		if err := repositories.NewPostgresCommentRepository(tx).CreateComment(ctx, comment); err != nil {
			return err
		}
		return posts.IncrementCommentsCount(ctx, postID)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment deletes a comment and decrements the post's comment counter
// in one transaction. Both the comment's author and the post's author are
// allowed to delete.
func (e *Engine) DeleteComment(ctx context.Context, commentID, callerID uint) error {
	if callerID == 0 {
		return apperrors.ErrUnauthenticated
	}

	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comments := repositories.NewPostgresCommentRepository(tx)
		posts := repositories.NewPostgresPostRepository(tx)

		comment, err := comments.GetCommentByID(ctx, commentID)
		if err != nil {
			return asNotFound(err, "comment", commentID)
		}
		post, err := posts.GetPostByID(ctx, comment.PostID)
		if err != nil {
			return asNotFound(err, "post", comment.PostID)
		}
		if comment.AuthorID != callerID && post.AuthorID != callerID {
			return apperrors.ErrForbidden
		}

		if err := comments.DeleteComment(ctx, commentID); err != nil {
			return err
		}
		return posts.DecrementCommentsCount(ctx, comment.PostID)
	})
}

// ToggleLike likes the post if the caller has not liked it yet and unlikes
// it otherwise. Returns liked=true and the like row for the like branch,
// liked=false and nil for the unlike branch.
//
// The (post_id, user_id) unique index arbitrates concurrent toggles: when
// two callers race past the existence check and both insert, the loser's
// transaction rolls back on the duplicate key and the toggle retries, now
// observing the winner's row and taking the delete branch. The constraint
// violation is control flow here, never a caller-visible error.
func (e *Engine) ToggleLike(ctx context.Context, postID, userID uint) (bool, *models.Like, error) {
	if userID == 0 {
		return false, nil, apperrors.ErrUnauthenticated
	}

	for attempt := 0; attempt < toggleAttempts; attempt++ {
		liked, like, err := e.toggleLikeOnce(ctx, postID, userID)
		if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, apperrors.ErrConflict) {
			continue
		}
		return liked, like, err
	}
	return false, nil, fmt.Errorf("like toggle on post %d: retries exhausted", postID)
}

func (e *Engine) toggleLikeOnce(ctx context.Context, postID, userID uint) (bool, *models.Like, error) {
	var (
		liked bool
		out   *models.Like
	)
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posts := repositories.NewPostgresPostRepository(tx)
		likes := repositories.NewPostgresLikeRepository(tx)

		if _, err := posts.GetPostByID(ctx, postID); err != nil {
			return asNotFound(err, "post", postID)
		}

		_, err := likes.GetLike(ctx, postID, userID)
		switch {
		case err == nil:
			// Already liked: unlike. A zero-row delete means a concurrent
			// unlike won; roll back and retry from the top.
			if err := likes.DeleteLike(ctx, postID, userID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrConflict
				}
				return err
			}
			liked = false
			out = nil
			return posts.DecrementLikesCount(ctx, postID)

		case errors.Is(err, gorm.ErrRecordNotFound):
			like := &models.Like{PostID: postID, UserID: userID}
			if err := likes.CreateLike(ctx, like); err != nil {
				// gorm.ErrDuplicatedKey aborts the transaction; the caller
				// retries and takes the unlike branch.
				return err
			}
			liked = true
			out = like
			return posts.IncrementLikesCount(ctx, postID)

		default:
			return err
		}
	})
	if err != nil {
		return false, nil, err
	}
	return liked, out, nil
}

// SharePost records a share of the post and increments the share counter in
// one transaction. Shares never toggle; every call adds a row.
func (e *Engine) SharePost(ctx context.Context, postID, userID uint) (*models.Share, error) {
	if userID == 0 {
		return nil, apperrors.ErrUnauthenticated
	}

	var share *models.Share
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posts := repositories.NewPostgresPostRepository(tx)

		if _, err := posts.GetPostByID(ctx, postID); err != nil {
			return asNotFound(err, "post", postID)
		}

		share = &models.Share{PostID: postID, UserID: userID}
		if err := repositories.NewPostgresShareRepository(tx).CreateShare(ctx, share); err != nil {
			return err
		}
		return posts.IncrementSharesCount(ctx, postID)
	})
	if err != nil {
		return nil, err
	}
	return share, nil
}

// asNotFound converts gorm's record-not-found into the taxonomy error,
// keeping everything else intact.
func asNotFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", entity, id, apperrors.ErrNotFound)
	}
	return err
}
