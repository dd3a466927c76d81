package graph

import (
	"github.com/graphql-go/graphql"
	"github.com/sociogram/backend/internal/models"
)

// Source helpers: list resolvers hand values to child resolvers, single-item
// resolvers hand pointers. Both shapes are accepted everywhere.

func userSource(src interface{}) *models.User {
	switch u := src.(type) {
	case *models.User:
		return u
	case models.User:
		return &u
	}
	return nil
}

func postSource(src interface{}) *models.Post {
	switch p := src.(type) {
	case *models.Post:
		return p
	case models.Post:
		return &p
	}
	return nil
}

func commentSource(src interface{}) *models.Comment {
	switch c := src.(type) {
	case *models.Comment:
		return c
	case models.Comment:
		return &c
	}
	return nil
}

func likeSource(src interface{}) *models.Like {
	switch l := src.(type) {
	case *models.Like:
		return l
	case models.Like:
		return &l
	}
	return nil
}

func shareSource(src interface{}) *models.Share {
	switch s := src.(type) {
	case *models.Share:
		return s
	case models.Share:
		return &s
	}
	return nil
}

func userField(extract func(*models.User) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if u := userSource(p.Source); u != nil {
			return extract(u), nil
		}
		return nil, nil
	}
}

func postField(extract func(*models.Post) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if post := postSource(p.Source); post != nil {
			return extract(post), nil
		}
		return nil, nil
	}
}

func commentField(extract func(*models.Comment) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if c := commentSource(p.Source); c != nil {
			return extract(c), nil
		}
		return nil, nil
	}
}

func likeField(extract func(*models.Like) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if l := likeSource(p.Source); l != nil {
			return extract(l), nil
		}
		return nil, nil
	}
}

func shareField(extract func(*models.Share) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if s := shareSource(p.Source); s != nil {
			return extract(s), nil
		}
		return nil, nil
	}
}

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int), Resolve: userField(func(u *models.User) interface{} { return int(u.ID) })},
		"username":  &graphql.Field{Type: graphql.String, Resolve: userField(func(u *models.User) interface{} { return u.Username })},
		"email":     &graphql.Field{Type: graphql.String, Resolve: userField(func(u *models.User) interface{} { return u.Email })},
		"firstName": &graphql.Field{Type: graphql.String, Resolve: userField(func(u *models.User) interface{} { return u.FirstName })},
		"lastName":  &graphql.Field{Type: graphql.String, Resolve: userField(func(u *models.User) interface{} { return u.LastName })},
	},
})

var likeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Like",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int), Resolve: likeField(func(l *models.Like) interface{} { return int(l.ID) })},
		"postId":    &graphql.Field{Type: graphql.Int, Resolve: likeField(func(l *models.Like) interface{} { return int(l.PostID) })},
		"user":      &graphql.Field{Type: userType, Resolve: likeField(func(l *models.Like) interface{} { return l.User })},
		"createdAt": &graphql.Field{Type: graphql.DateTime, Resolve: likeField(func(l *models.Like) interface{} { return l.CreatedAt })},
	},
})

var shareType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Share",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int), Resolve: shareField(func(s *models.Share) interface{} { return int(s.ID) })},
		"postId":    &graphql.Field{Type: graphql.Int, Resolve: shareField(func(s *models.Share) interface{} { return int(s.PostID) })},
		"user":      &graphql.Field{Type: userType, Resolve: shareField(func(s *models.Share) interface{} { return s.User })},
		"createdAt": &graphql.Field{Type: graphql.DateTime, Resolve: shareField(func(s *models.Share) interface{} { return s.CreatedAt })},
	},
})

var commentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Comment",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int), Resolve: commentField(func(c *models.Comment) interface{} { return int(c.ID) })},
		"postId":    &graphql.Field{Type: graphql.Int, Resolve: commentField(func(c *models.Comment) interface{} { return int(c.PostID) })},
		"content":   &graphql.Field{Type: graphql.String, Resolve: commentField(func(c *models.Comment) interface{} { return c.Content })},
		"author":    &graphql.Field{Type: userType, Resolve: commentField(func(c *models.Comment) interface{} { return c.Author })},
		"createdAt": &graphql.Field{Type: graphql.DateTime, Resolve: commentField(func(c *models.Comment) interface{} { return c.CreatedAt })},
	},
})

var postType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Post",
	Fields: graphql.Fields{
		"id":            &graphql.Field{Type: graphql.NewNonNull(graphql.Int), Resolve: postField(func(p *models.Post) interface{} { return int(p.ID) })},
		"content":       &graphql.Field{Type: graphql.String, Resolve: postField(func(p *models.Post) interface{} { return p.Content })},
		"imageUrl":      &graphql.Field{Type: graphql.String, Resolve: postField(func(p *models.Post) interface{} { return p.ImageURL })},
		"author":        &graphql.Field{Type: userType, Resolve: postField(func(p *models.Post) interface{} { return p.Author })},
		"likesCount":    &graphql.Field{Type: graphql.Int, Resolve: postField(func(p *models.Post) interface{} { return p.LikesCount })},
		"commentsCount": &graphql.Field{Type: graphql.Int, Resolve: postField(func(p *models.Post) interface{} { return p.CommentsCount })},
		"sharesCount":   &graphql.Field{Type: graphql.Int, Resolve: postField(func(p *models.Post) interface{} { return p.SharesCount })},
		"comments":      &graphql.Field{Type: graphql.NewList(commentType), Resolve: postField(func(p *models.Post) interface{} { return p.Comments })},
		"likes":         &graphql.Field{Type: graphql.NewList(likeType), Resolve: postField(func(p *models.Post) interface{} { return p.Likes })},
		"shares":        &graphql.Field{Type: graphql.NewList(shareType), Resolve: postField(func(p *models.Post) interface{} { return p.Shares })},
		"createdAt":     &graphql.Field{Type: graphql.DateTime, Resolve: postField(func(p *models.Post) interface{} { return p.CreatedAt })},
		"updatedAt":     &graphql.Field{Type: graphql.DateTime, Resolve: postField(func(p *models.Post) interface{} { return p.UpdatedAt })},
	},
})

// envelopeFields builds the {success, message, payload...} shape every
// mutation returns. Resolvers hand back map payloads, which the default
// resolver reads directly.
func envelopeType(name string, payload graphql.Fields) *graphql.Object {
	fields := graphql.Fields{
		"success": &graphql.Field{Type: graphql.Boolean},
		"message": &graphql.Field{Type: graphql.String},
	}
	for key, field := range payload {
		fields[key] = field
	}
	return graphql.NewObject(graphql.ObjectConfig{Name: name, Fields: fields})
}

var (
	createPostPayload = envelopeType("CreatePostPayload", graphql.Fields{
		"post": &graphql.Field{Type: postType},
	})
	updatePostPayload = envelopeType("UpdatePostPayload", graphql.Fields{
		"post": &graphql.Field{Type: postType},
	})
	deletePostPayload = envelopeType("DeletePostPayload", nil)
	createCommentPayload = envelopeType("CreateCommentPayload", graphql.Fields{
		"comment": &graphql.Field{Type: commentType},
	})
	deleteCommentPayload = envelopeType("DeleteCommentPayload", nil)
	likePostPayload = envelopeType("LikePostPayload", graphql.Fields{
		"like": &graphql.Field{Type: likeType},
	})
	sharePostPayload = envelopeType("SharePostPayload", graphql.Fields{
		"share": &graphql.Field{Type: shareType},
	})
)
