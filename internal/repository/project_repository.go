package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

// 公開側の一覧検索
type ProjectListQuery struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	Featured   *bool
	// 空なら承認済みのみ（公開デフォルト）
	Status string
}

type ProjectRepository interface {
	List(ctx context.Context, q ProjectListQuery) ([]model.Project, int64, error)
	FindByID(ctx context.Context, id int64) (model.Project, error)

	Create(ctx context.Context, p model.Project) (model.Project, error)
	Update(ctx context.Context, p model.Project) error
	IncrementViews(ctx context.Context, id int64) error

	// 審査キュー
	ListByStatus(ctx context.Context, status model.ProjectStatus, page int, limit int) ([]model.Project, int64, error)
}
