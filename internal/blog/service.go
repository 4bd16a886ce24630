package blog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/blogapi/internal/platform/validate"
)

// createOrder ranks create fields: the first missing one names the error.
var createOrder = []string{FieldTitle, FieldContent, FieldAuthor}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListPosts(ctx context.Context) ([]*Post, error) {
	return service.repo.ListPosts(ctx)
}

func (service *Service) GetPost(ctx context.Context, id string) (*Post, error) {
	return service.repo.GetPost(ctx, id)
}

// CreatePost validates the body and inserts the post. Nothing reaches the
// store when a required field is missing.
func (service *Service) CreatePost(ctx context.Context, input CreatePostRequest) (*Post, error) {
	if err := validate.Rules(input.Validate(), createOrder...); err != nil {
		return nil, err
	}

	p := input.Post()
	if err := service.repo.CreatePost(ctx, p); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "post_created", slog.String("post_id", p.ID))
	return p, nil
}

// UpdatePost checks that the body id matches pathID, validates the present
// fields and applies them as one partial write.
func (service *Service) UpdatePost(ctx context.Context, pathID string, input UpdatePostRequest) error {
	if bodyID := input.BodyID(); input.ID == nil || bodyID != pathID {
		message := fmt.Sprintf("Request path id (%s) and request body id (%s) must match", pathID, bodyID)
		return validate.Field(FieldID, message)
	}

	if err := validate.Rules(input.Validate(), UpdatableFields...); err != nil {
		return err
	}

	patch := input.Patch()
	if err := service.repo.UpdatePost(ctx, pathID, patch); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "post_updated",
		slog.String("post_id", pathID),
		slog.Any("fields", fieldNames(patch)),
	)
	return nil
}

// DeletePost removes the post. Deleting an unknown id succeeds.
func (service *Service) DeletePost(ctx context.Context, id string) error {
	if err := service.repo.DeletePost(ctx, id); err != nil {
		return err
	}

	service.logger.WarnContext(ctx, "post_deleted", slog.String("post_id", id))
	return nil
}

func fieldNames(patch PostPatch) []string {
	names := make([]string, 0, len(UpdatableFields))
	fields := patch.Fields()
	for _, name := range UpdatableFields {
		if _, ok := fields[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
