// Package queries implements the read side of the API: filtered, ordered
// listings with eager-loaded relations. All reads are allowed for anonymous
// callers.
package queries

import (
	"context"
	"errors"
	"fmt"

	"github.com/sociogram/backend/internal/apperrors"
	"github.com/sociogram/backend/internal/models"
	"github.com/sociogram/backend/internal/repositories"
	"gorm.io/gorm"
)

// DefaultPostLimit is the page size used when a caller does not specify one
const DefaultPostLimit = 10

// Service answers read-only queries over posts, comments, likes and users
type Service struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	likes    repositories.LikeRepository
	shares   repositories.ShareRepository
	users    repositories.UserRepository
}

// NewService creates a new query Service over the given repositories
func NewService(
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	likes repositories.LikeRepository,
	shares repositories.ShareRepository,
	users repositories.UserRepository,
) *Service {
	return &Service{
		posts:    posts,
		comments: comments,
		likes:    likes,
		shares:   shares,
		users:    users,
	}
}

// ListPosts returns at most limit posts starting at offset, newest first.
// A non-positive limit falls back to DefaultPostLimit; a negative offset is
// treated as 0.
func (s *Service) ListPosts(ctx context.Context, limit, offset int) ([]models.Post, error) {
	if limit <= 0 {
		limit = DefaultPostLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.posts.GetAllPosts(ctx, limit, offset)
}

// GetPost returns a single post with its author and interactions preloaded
func (s *Service) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.GetPostWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return post, nil
}

// ListPostsByAuthor returns all posts by the given author, newest first
func (s *Service) ListPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	return s.posts.GetPostsByAuthorID(ctx, authorID)
}

// ListCommentsForPost returns all comments on a post, newest first
func (s *Service) ListCommentsForPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.comments.GetCommentsByPostID(ctx, postID)
}

// ListLikesForPost returns all likes on a post
func (s *Service) ListLikesForPost(ctx context.Context, postID uint) ([]models.Like, error) {
	return s.likes.GetLikesByPostID(ctx, postID)
}

// ListSharesForPost returns all shares of a post, newest first
func (s *Service) ListSharesForPost(ctx context.Context, postID uint) ([]models.Share, error) {
	return s.shares.GetSharesByPostID(ctx, postID)
}

// ListUsers returns all registered users
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.GetAllUsers(ctx)
}
