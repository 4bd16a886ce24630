package blog_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/taibuivan/blogapi/internal/blog"
)

// fakeRepository records calls and returns scripted errors.
type fakeRepository struct {
	blog.Repository

	calls []string
	err   error

	posts     []*blog.Post
	lastID    string
	lastPatch blog.PostPatch
}

func (f *fakeRepository) ListPosts(context.Context) ([]*blog.Post, error) {
	f.calls = append(f.calls, "list")
	if f.err != nil {
		return nil, f.err
	}
	return f.posts, nil
}

func (f *fakeRepository) GetPost(_ context.Context, id string) (*blog.Post, error) {
	f.calls = append(f.calls, "get")
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.posts[0], nil
}

func (f *fakeRepository) CreatePost(_ context.Context, p *blog.Post) error {
	f.calls = append(f.calls, "create")
	if f.err != nil {
		return f.err
	}
	p.ID = "generated"
	return nil
}

func (f *fakeRepository) UpdatePost(_ context.Context, id string, patch blog.PostPatch) error {
	f.calls = append(f.calls, "update")
	f.lastID = id
	f.lastPatch = patch
	return f.err
}

func (f *fakeRepository) DeletePost(_ context.Context, id string) error {
	f.calls = append(f.calls, "delete")
	f.lastID = id
	return f.err
}

func (f *fakeRepository) Ping(context.Context) error {
	return f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
