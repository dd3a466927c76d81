// Package cache adds an optional redis read-through layer over the query
// service. It only ever caches read results: the interaction engine never
// consults it, and a missing or unreachable redis degrades to plain database
// reads. Staleness inside the TTL window is acceptable by design; single
// posts are additionally dropped from the cache on update/delete.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sociogram/backend/internal/models"
	"github.com/sociogram/backend/internal/queries"
)

const (
	listTTL = 5 * time.Minute
	postTTL = 10 * time.Minute
)

// CachedQueries wraps a queries.Service with redis caching of post reads.
// Comment, like and user listings pass straight through.
type CachedQueries struct {
	inner  *queries.Service
	client *redis.Client
}

// New creates a CachedQueries. A nil client disables caching entirely.
func New(inner *queries.Service, client *redis.Client) *CachedQueries {
	return &CachedQueries{inner: inner, client: client}
}

// ListPosts serves the paginated post feed from redis when possible
func (c *CachedQueries) ListPosts(ctx context.Context, limit, offset int) ([]models.Post, error) {
	if limit <= 0 {
		limit = queries.DefaultPostLimit
	}
	if offset < 0 {
		offset = 0
	}
	key := fmt.Sprintf("posts:all:%d:%d", limit, offset)

	var cached []models.Post
	if c.fetch(ctx, key, &cached) {
		return cached, nil
	}

	posts, err := c.inner.ListPosts(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, posts, listTTL)
	return posts, nil
}

// GetPost serves a single post from redis when possible
func (c *CachedQueries) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	key := postKey(id)

	var cached models.Post
	if c.fetch(ctx, key, &cached) {
		return &cached, nil
	}

	post, err := c.inner.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, post, postTTL)
	return post, nil
}

// ListPostsByAuthor serves an author's posts from redis when possible
func (c *CachedQueries) ListPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	key := fmt.Sprintf("posts:author:%d", authorID)

	var cached []models.Post
	if c.fetch(ctx, key, &cached) {
		return cached, nil
	}

	posts, err := c.inner.ListPostsByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, posts, listTTL)
	return posts, nil
}

// ListCommentsForPost passes through to the database
func (c *CachedQueries) ListCommentsForPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return c.inner.ListCommentsForPost(ctx, postID)
}

// ListLikesForPost passes through to the database
func (c *CachedQueries) ListLikesForPost(ctx context.Context, postID uint) ([]models.Like, error) {
	return c.inner.ListLikesForPost(ctx, postID)
}

// ListSharesForPost passes through to the database
func (c *CachedQueries) ListSharesForPost(ctx context.Context, postID uint) ([]models.Share, error) {
	return c.inner.ListSharesForPost(ctx, postID)
}

// ListUsers passes through to the database
func (c *CachedQueries) ListUsers(ctx context.Context) ([]models.User, error) {
	return c.inner.ListUsers(ctx)
}

// InvalidatePost drops a single post's cache entry after a write. List keys
// are left to expire with their TTL.
func (c *CachedQueries) InvalidatePost(ctx context.Context, id uint) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, postKey(id)).Err(); err != nil {
		log.Printf("cache: invalidating post %d: %v", id, err)
	}
}

// fetch loads key into dest, reporting whether it was a usable hit.
// Redis failures count as misses.
func (c *CachedQueries) fetch(ctx context.Context, key string, dest interface{}) bool {
	if c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache: reading %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("cache: decoding %s: %v", key, err)
		return false
	}
	return true
}

func (c *CachedQueries) store(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache: encoding %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("cache: writing %s: %v", key, err)
	}
}

func postKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}
