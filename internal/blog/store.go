package blog

import "context"

// Repository is the persistence gateway for posts.
//
// Implementations return [dberr.ErrNotFound] when an id has no record and
// wrap every other driver failure with [dberr.Wrap].
type Repository interface {
	// ListPosts returns every post in store order, never nil.
	ListPosts(ctx context.Context) ([]*Post, error)
	GetPost(ctx context.Context, id string) (*Post, error)
	// CreatePost assigns ID and timestamps on p.
	CreatePost(ctx context.Context, p *Post) error
	// UpdatePost applies patch atomically. An empty patch only checks existence.
	UpdatePost(ctx context.Context, id string, patch PostPatch) error
	// DeletePost succeeds whether or not the id exists.
	DeletePost(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
