package repository

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type StatsGormRepository struct {
	db *gorm.DB
}

func NewStatsGormRepository(db *gorm.DB) *StatsGormRepository {
	return &StatsGormRepository{db: db}
}

func (r *StatsGormRepository) ProjectStats(ctx context.Context) (repo.ProjectStats, error) {
	var s repo.ProjectStats

	if err := r.db.WithContext(ctx).Model(&model.Project{}).Count(&s.Total).Error; err != nil {
		return repo.ProjectStats{}, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("status = ?", model.ProjectStatusApproved).Count(&s.Approved).Error; err != nil {
		return repo.ProjectStats{}, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("status = ?", model.ProjectStatusPending).Count(&s.Pending).Error; err != nil {
		return repo.ProjectStats{}, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("featured = ?", true).Count(&s.Featured).Error; err != nil {
		return repo.ProjectStats{}, err
	}
	return s, nil
}

func (r *StatsGormRepository) UserStats(ctx context.Context) (repo.UserStats, error) {
	var s repo.UserStats

	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&s.Total).Error; err != nil {
		return repo.UserStats{}, err
	}
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ?", model.RoleStudent).Count(&s.Students).Error; err != nil {
		return repo.UserStats{}, err
	}
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ?", model.RoleClient).Count(&s.Clients).Error; err != nil {
		return repo.UserStats{}, err
	}
	return s, nil
}

func (r *StatsGormRepository) MerchandiseStats(ctx context.Context) (repo.MerchandiseStats, error) {
	var s repo.MerchandiseStats

	if err := r.db.WithContext(ctx).Model(&model.Merchandise{}).Count(&s.Total).Error; err != nil {
		return repo.MerchandiseStats{}, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Merchandise{}).
		Where("quantity > 0").Count(&s.InStock).Error; err != nil {
		return repo.MerchandiseStats{}, err
	}
	return s, nil
}

func (r *StatsGormRepository) OrderStats(ctx context.Context) (repo.OrderStats, error) {
	var s repo.OrderStats

	if err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&s.Total).Error; err != nil {
		return repo.OrderStats{}, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ?", model.OrderStatusCompleted).Count(&s.Completed).Error; err != nil {
		return repo.OrderStats{}, err
	}
	return s, nil
}

func (r *StatsGormRepository) TopProjects(ctx context.Context, limit int) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Where("status = ?", model.ProjectStatusApproved).
		Order("views desc").
		Limit(limit).
		Find(&projects).Error
	if err != nil {
		return []model.Project{}, err
	}
	return projects, nil
}
