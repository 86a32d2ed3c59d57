package repository

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type ProjectGormRepository struct {
	db *gorm.DB
}

func NewProjectGormRepository(db *gorm.DB) *ProjectGormRepository {
	return &ProjectGormRepository{db: db}
}

// 公開一覧。statusを指定しなければ承認済みだけを返す
func (r *ProjectGormRepository) List(ctx context.Context, q repo.ProjectListQuery) ([]model.Project, int64, error) {
	var projects []model.Project
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Project{})

	status := q.Status
	if status == "" {
		status = string(model.ProjectStatusApproved)
	}
	tx = tx.Where("status = ?", status)

	if q.Featured != nil {
		tx = tx.Where("featured = ?", *q.Featured)
	}

	if q.CategoryID != nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}

	// title/description/tech_stackを対象に検索
	if strings.TrimSpace(q.Q) != "" {
		like := "%" + strings.TrimSpace(q.Q) + "%"
		tx = tx.Where("title LIKE ? OR description LIKE ? OR tech_stack LIKE ?", like, like, like)
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Project{}, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Order("id desc").Offset(offset).Limit(q.Limit).Find(&projects).Error; err != nil {
		return []model.Project{}, 0, err
	}

	return projects, total, nil
}

func (r *ProjectGormRepository) FindByID(ctx context.Context, id int64) (model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Project{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Project{}, err
	}
	return p, nil
}

func (r *ProjectGormRepository) Create(ctx context.Context, p model.Project) (model.Project, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// 審査で触るフィールドも含めて全カラム更新
func (r *ProjectGormRepository) Update(ctx context.Context, p model.Project) error {
	res := r.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"category_id":      p.CategoryID,
		"title":            p.Title,
		"description":      p.Description,
		"tech_stack":       p.TechStack,
		"github_link":      p.GithubLink,
		"demo_link":        p.DemoLink,
		"is_for_sale":      p.IsForSale,
		"status":           p.Status,
		"featured":         p.Featured,
		"rejection_reason": p.RejectionReason,
		"reviewed_by":      p.ReviewedBy,
		"thumbnail_url":    p.ThumbnailURL,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 詳細閲覧のビュー数カウント
func (r *ProjectGormRepository) IncrementViews(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProjectGormRepository) ListByStatus(ctx context.Context, status model.ProjectStatus, page int, limit int) ([]model.Project, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Project{}).Where("status = ?", status)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.Project{}, 0, err
	}

	var projects []model.Project
	offset := (page - 1) * limit
	if err := q.Order("id asc").Offset(offset).Limit(limit).Find(&projects).Error; err != nil {
		return []model.Project{}, 0, err
	}

	return projects, total, nil
}
