package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/skywatch/stargazer/app/apod"
)

// RefreshApodTask keeps today's picture-of-the-day entry warm in the cache
// so API requests are served without hitting the provider
type RefreshApodTask struct {
	Task
	service *apod.Service
}

func NewRefreshApodTask(service *apod.Service) *RefreshApodTask {
	return &RefreshApodTask{
		Task:    NewTask(TaskTypeRefreshApod, "today"),
		service: service,
	}
}

func (t *RefreshApodTask) Execute(ctx context.Context) error {
	if _, err := t.service.Refresh(ctx, ""); err != nil {
		return fmt.Errorf("failed to refresh APOD cache: %w", err)
	}

	slog.Debug("APOD cache refreshed", "duration", t.GetDuration().String())
	return nil
}
