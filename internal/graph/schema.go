// Package graph is the GraphQL facade. It translates field selections and
// arguments into interaction-engine and query-service calls and shapes every
// mutation result into a {success, message, payload} envelope. Raw internal
// errors never cross this boundary: taxonomy errors become their human
// messages, anything else is logged and reported generically.
package graph

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/graphql-go/graphql"
	"github.com/sociogram/backend/internal/apperrors"
	"github.com/sociogram/backend/internal/interactions"
	"github.com/sociogram/backend/internal/middleware"
	"github.com/sociogram/backend/internal/models"
)

// QueryService is the read-side contract the facade resolves queries against.
// Implemented by queries.Service and cache.CachedQueries.
type QueryService interface {
	ListPosts(ctx context.Context, limit, offset int) ([]models.Post, error)
	GetPost(ctx context.Context, id uint) (*models.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error)
	ListCommentsForPost(ctx context.Context, postID uint) ([]models.Comment, error)
	ListLikesForPost(ctx context.Context, postID uint) ([]models.Like, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// PostInvalidator drops a post from the read cache after a write. A no-op
// implementation is fine when no cache is configured.
type PostInvalidator interface {
	InvalidatePost(ctx context.Context, id uint)
}

type noopInvalidator struct{}

func (noopInvalidator) InvalidatePost(context.Context, uint) {}

type resolvers struct {
	engine     *interactions.Engine
	queries    QueryService
	invalidate PostInvalidator
	validate   *validator.Validate
}

// NewSchema builds the executable GraphQL schema. invalidate may be nil.
func NewSchema(engine *interactions.Engine, qs QueryService, invalidate PostInvalidator) (graphql.Schema, error) {
	if invalidate == nil {
		invalidate = noopInvalidator{}
	}
	r := &resolvers{
		engine:     engine,
		queries:    qs,
		invalidate: invalidate,
		validate:   validator.New(),
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"allPosts": &graphql.Field{
				Type: graphql.NewList(postType),
				Args: graphql.FieldConfigArgument{
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int},
					"offset": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.resolveAllPosts,
			},
			"post": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.resolvePost,
			},
			"userPosts": &graphql.Field{
				Type: graphql.NewList(postType),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.resolveUserPosts,
			},
			"postComments": &graphql.Field{
				Type: graphql.NewList(commentType),
				Args: graphql.FieldConfigArgument{
					"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.resolvePostComments,
			},
			"postLikes": &graphql.Field{
				Type: graphql.NewList(likeType),
				Args: graphql.FieldConfigArgument{
					"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.resolvePostLikes,
			},
			"allUsers": &graphql.Field{
				Type:    graphql.NewList(userType),
				Resolve: r.resolveAllUsers,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createPost": &graphql.Field{
				Type: createPostPayload,
				Args: graphql.FieldConfigArgument{
					"content":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"imageUrl": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.resolveCreatePost,
			},
			"updatePost": &graphql.Field{
				Type: updatePostPayload,
				Args: graphql.FieldConfigArgument{
					"postId":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"content":  &graphql.ArgumentConfig{Type: graphql.String},
					"imageUrl": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.resolveUpdatePost,
			},
			"deletePost": &graphql.Field{
				Type: deletePostPayload,
				Args: graphql.FieldConfigArgument{
					"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.resolveDeletePost,
			},
			"createComment": &graphql.Field{
				Type: createCommentPayload,
				Args: graphql.FieldConfigArgument{
					"postId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"content": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveCreateComment,
			},
			"deleteComment": &graphql.Field{
				Type: deleteCommentPayload,
				Args: graphql.FieldConfigArgument{
					"commentId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.resolveDeleteComment,
			},
			"likePost": &graphql.Field{
				Type: likePostPayload,
				Args: graphql.FieldConfigArgument{
					"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.resolveLikePost,
			},
			"sharePost": &graphql.Field{
				Type: sharePostPayload,
				Args: graphql.FieldConfigArgument{
					"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.resolveSharePost,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

// uintArg extracts a positive integer argument, returning 0 when absent or
// out of range. Id 0 never exists, so downstream lookups report not-found.
func uintArg(p graphql.ResolveParams, name string) uint {
	if v, ok := p.Args[name].(int); ok && v > 0 {
		return uint(v)
	}
	return 0
}

func stringArg(p graphql.ResolveParams, name string) string {
	v, _ := p.Args[name].(string)
	return v
}

func optionalStringArg(p graphql.ResolveParams, name string) *string {
	if v, ok := p.Args[name].(string); ok {
		return &v
	}
	return nil
}

// errInternal is the only error message a query resolver is allowed to leak
var errInternal = errors.New("internal server error")

func (r *resolvers) internal(op string, err error) error {
	log.Printf("graphql: %s: %v", op, err)
	return errInternal
}

// failure maps an engine error onto the mutation envelope. notFound and
// forbidden carry the operation-specific wording; unclassified errors are
// logged and reported generically.
func failure(op string, err error, notFound, forbidden string) map[string]interface{} {
	var message string
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		message = "Authentication required"
	case errors.Is(err, apperrors.ErrNotFound):
		message = notFound
	case errors.Is(err, apperrors.ErrForbidden):
		message = forbidden
	case errors.Is(err, apperrors.ErrInvalid):
		message = "Invalid input: content must not be empty"
	default:
		log.Printf("graphql: %s: %v", op, err)
		message = "Something went wrong"
	}
	return map[string]interface{}{"success": false, "message": message}
}

func success(message string, payload map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{"success": true, "message": message}
	for k, v := range payload {
		out[k] = v
	}
	return out
}

// --- query resolvers ---

func (r *resolvers) resolveAllPosts(p graphql.ResolveParams) (interface{}, error) {
	limit, _ := p.Args["limit"].(int)
	offset, _ := p.Args["offset"].(int)
	posts, err := r.queries.ListPosts(p.Context, limit, offset)
	if err != nil {
		return nil, r.internal("allPosts", err)
	}
	return posts, nil
}

func (r *resolvers) resolvePost(p graphql.ResolveParams) (interface{}, error) {
	post, err := r.queries.GetPost(p.Context, uintArg(p, "id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, r.internal("post", err)
	}
	return post, nil
}

func (r *resolvers) resolveUserPosts(p graphql.ResolveParams) (interface{}, error) {
	posts, err := r.queries.ListPostsByAuthor(p.Context, uintArg(p, "userId"))
	if err != nil {
		return nil, r.internal("userPosts", err)
	}
	return posts, nil
}

func (r *resolvers) resolvePostComments(p graphql.ResolveParams) (interface{}, error) {
	comments, err := r.queries.ListCommentsForPost(p.Context, uintArg(p, "postId"))
	if err != nil {
		return nil, r.internal("postComments", err)
	}
	return comments, nil
}

func (r *resolvers) resolvePostLikes(p graphql.ResolveParams) (interface{}, error) {
	likes, err := r.queries.ListLikesForPost(p.Context, uintArg(p, "postId"))
	if err != nil {
		return nil, r.internal("postLikes", err)
	}
	return likes, nil
}

func (r *resolvers) resolveAllUsers(p graphql.ResolveParams) (interface{}, error) {
	users, err := r.queries.ListUsers(p.Context)
	if err != nil {
		return nil, r.internal("allUsers", err)
	}
	return users, nil
}

// --- mutation resolvers ---

func (r *resolvers) resolveCreatePost(p graphql.ResolveParams) (interface{}, error) {
	callerID := middleware.UserIDFromContext(p.Context)

	req := models.CreatePostRequest{
		Content:  stringArg(p, "content"),
		ImageURL: optionalStringArg(p, "imageUrl"),
	}
	if err := r.validate.Struct(req); err != nil {
		return map[string]interface{}{"success": false, "message": err.Error()}, nil
	}

	post, err := r.engine.CreatePost(p.Context, callerID, req.Content, req.ImageURL)
	if err != nil {
		return failure("createPost", err, "Post not found", ""), nil
	}
	r.invalidate.InvalidatePost(p.Context, post.ID)
	return success("Post created successfully", map[string]interface{}{"post": post}), nil
}

func (r *resolvers) resolveUpdatePost(p graphql.ResolveParams) (interface{}, error) {
	callerID := middleware.UserIDFromContext(p.Context)
	postID := uintArg(p, "postId")

	req := models.UpdatePostRequest{
		Content:  stringArg(p, "content"),
		ImageURL: optionalStringArg(p, "imageUrl"),
	}
	if err := r.validate.Struct(req); err != nil {
		return map[string]interface{}{"success": false, "message": err.Error()}, nil
	}

	post, err := r.engine.UpdatePost(p.Context, postID, callerID, req.Content, req.ImageURL)
	if err != nil {
		return failure("updatePost", err, "Post not found", "Not authorized to update this post"), nil
	}
	r.invalidate.InvalidatePost(p.Context, postID)
	return success("Post updated successfully", map[string]interface{}{"post": post}), nil
}

func (r *resolvers) resolveDeletePost(p graphql.ResolveParams) (interface{}, error) {
	callerID := middleware.UserIDFromContext(p.Context)
	postID := uintArg(p, "postId")

	if err := r.engine.DeletePost(p.Context, postID, callerID); err != nil {
		return failure("deletePost", err, "Post not found", "Not authorized to delete this post"), nil
	}
	r.invalidate.InvalidatePost(p.Context, postID)
	return success("Post deleted successfully", nil), nil
}

func (r *resolvers) resolveCreateComment(p graphql.ResolveParams) (interface{}, error) {
	callerID := middleware.UserIDFromContext(p.Context)
	postID := uintArg(p, "postId")

	req := models.CreateCommentRequest{Content: stringArg(p, "content")}
	if err := r.validate.Struct(req); err != nil {
		return map[string]interface{}{"success": false, "message": err.Error()}, nil
	}

	comment, err := r.engine.AddComment(p.Context, postID, callerID, req.Content)
	if err != nil {
		return failure("createComment", err, "Post not found", ""), nil
	}
	r.invalidate.InvalidatePost(p.Context, postID)
	return success("Comment added successfully", map[string]interface{}{"comment": comment}), nil
}

func (r *resolvers) resolveDeleteComment(p graphql.ResolveParams) (interface{}, error) {
	callerID := middleware.UserIDFromContext(p.Context)
	commentID := uintArg(p, "commentId")

	if err := r.engine.DeleteComment(p.Context, commentID, callerID); err != nil {
		return failure("deleteComment", err, "Comment not found", "Not authorized to delete this comment"), nil
	}
	return success("Comment deleted successfully", nil), nil
}

func (r *resolvers) resolveLikePost(p graphql.ResolveParams) (interface{}, error) {
	callerID := middleware.UserIDFromContext(p.Context)
	postID := uintArg(p, "postId")

	liked, like, err := r.engine.ToggleLike(p.Context, postID, callerID)
	if err != nil {
		return failure("likePost", err, "Post not found", ""), nil
	}
	r.invalidate.InvalidatePost(p.Context, postID)

	if liked {
		return success("Post liked successfully", map[string]interface{}{"like": like}), nil
	}
	return success("Post unliked successfully", map[string]interface{}{"like": nil}), nil
}

func (r *resolvers) resolveSharePost(p graphql.ResolveParams) (interface{}, error) {
	callerID := middleware.UserIDFromContext(p.Context)
	postID := uintArg(p, "postId")

	share, err := r.engine.SharePost(p.Context, postID, callerID)
	if err != nil {
		return failure("sharePost", err, "Post not found", ""), nil
	}
	r.invalidate.InvalidatePost(p.Context, postID)
	return success("Post shared successfully", map[string]interface{}{"share": share}), nil
}
