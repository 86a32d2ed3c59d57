package repository

import (
	"context"

	"marketplace/internal/domain/model"

	"gorm.io/gorm"
)

type ModerationLogGormRepository struct {
	db *gorm.DB
}

func NewModerationLogGormRepository(db *gorm.DB) *ModerationLogGormRepository {
	return &ModerationLogGormRepository{db: db}
}

func (r *ModerationLogGormRepository) Create(ctx context.Context, log model.ModerationLog) error {
	if err := r.db.WithContext(ctx).Create(&log).Error; err != nil {
		return err
	}
	return nil
}

func (r *ModerationLogGormRepository) ListByProjectID(ctx context.Context, projectID int64) ([]model.ModerationLog, error) {
	var logs []model.ModerationLog
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("id asc").
		Find(&logs).Error
	if err != nil {
		return []model.ModerationLog{}, err
	}
	return logs, nil
}
