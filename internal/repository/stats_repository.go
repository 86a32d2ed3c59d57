package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type ProjectStats struct {
	Total    int64 `json:"total"`
	Approved int64 `json:"approved"`
	Pending  int64 `json:"pending"`
	Featured int64 `json:"featured"`
}

type UserStats struct {
	Students int64 `json:"students"`
	Clients  int64 `json:"clients"`
	Total    int64 `json:"total"`
}

type MerchandiseStats struct {
	Total   int64 `json:"total"`
	InStock int64 `json:"in_stock"`
}

type OrderStats struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
}

// 管理ダッシュボード用の集計クエリ
type StatsRepository interface {
	ProjectStats(ctx context.Context) (ProjectStats, error)
	UserStats(ctx context.Context) (UserStats, error)
	MerchandiseStats(ctx context.Context) (MerchandiseStats, error)
	OrderStats(ctx context.Context) (OrderStats, error)
	// 閲覧数上位の承認済みプロジェクト
	TopProjects(ctx context.Context, limit int) ([]model.Project, error)
}
