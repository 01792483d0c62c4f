package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/skywatch/stargazer/app/database"
	"github.com/skywatch/stargazer/app/images"
)

// Objects lacking an image are processed in batches this size per run to
// keep provider call bursts bounded
const imageBatchSize = 10

// ImageResolver finds a representative image URL for an object name
type ImageResolver interface {
	Resolve(ctx context.Context, objectName string) images.Result
}

// ResolveImagesTask backfills image URLs for catalog objects that lack one
type ResolveImagesTask struct {
	Task
	objectRepo database.ObjectRepository
	resolver   ImageResolver
}

func NewResolveImagesTask(objectRepo database.ObjectRepository, resolver ImageResolver) *ResolveImagesTask {
	return &ResolveImagesTask{
		Task:       NewTask(TaskTypeResolveImages, "catalog"),
		objectRepo: objectRepo,
		resolver:   resolver,
	}
}

func (t *ResolveImagesTask) Execute(ctx context.Context) error {
	objects, err := t.objectRepo.GetObjectsWithoutImage(imageBatchSize)
	if err != nil {
		return fmt.Errorf("failed to list objects without image: %w", err)
	}
	if len(objects) == 0 {
		return nil
	}

	resolved := 0
	for _, obj := range objects {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		result := t.resolver.Resolve(ctx, obj.Name)
		if !result.Success {
			slog.Debug("No image found for object", "object", obj.Name)
			continue
		}

		if err := t.objectRepo.UpdateObjectImage(obj.ID, result.ImageURL); err != nil {
			return fmt.Errorf("failed to store image for %q: %w", obj.Name, err)
		}
		resolved++
	}

	slog.Info("Image backfill completed", "candidates", len(objects), "resolved", resolved, "duration", t.GetDuration().String())
	return nil
}
