package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type InterestGormRepository struct {
	db *gorm.DB
}

func NewInterestGormRepository(db *gorm.DB) *InterestGormRepository {
	return &InterestGormRepository{db: db}
}

func (r *InterestGormRepository) Create(ctx context.Context, i model.Interest) (model.Interest, error) {
	if err := r.db.WithContext(ctx).Create(&i).Error; err != nil {
		return model.Interest{}, err
	}
	return i, nil
}

func (r *InterestGormRepository) FindByID(ctx context.Context, id int64) (model.Interest, error) {
	var i model.Interest
	err := r.db.WithContext(ctx).First(&i, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Interest{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Interest{}, err
	}
	return i, nil
}

func (r *InterestGormRepository) FindByUserAndProject(ctx context.Context, userID int64, projectID int64) (model.Interest, error) {
	var i model.Interest
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		First(&i).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Interest{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Interest{}, err
	}
	return i, nil
}

// 新しい順。OwnerUserID指定時はprojectsをJOINして所有者で絞る
func (r *InterestGormRepository) List(ctx context.Context, f repo.InterestListFilter) ([]model.Interest, int64, error) {
	var interests []model.Interest
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Interest{})

	if f.UserID != nil {
		tx = tx.Where("interests.user_id = ?", *f.UserID)
	}
	if f.OwnerUserID != nil {
		tx = tx.
			Joins("JOIN projects ON projects.id = interests.project_id").
			Where("projects.owner_user_id = ?", *f.OwnerUserID)
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Interest{}, 0, err
	}

	offset := (f.Page - 1) * f.Limit
	if err := tx.Order("interests.id desc").Offset(offset).Limit(f.Limit).Find(&interests).Error; err != nil {
		return []model.Interest{}, 0, err
	}

	return interests, total, nil
}
