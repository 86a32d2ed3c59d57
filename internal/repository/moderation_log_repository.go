package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type ModerationLogRepository interface {
	Create(ctx context.Context, log model.ModerationLog) error
	ListByProjectID(ctx context.Context, projectID int64) ([]model.ModerationLog, error)
}
