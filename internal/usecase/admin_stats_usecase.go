package usecase

import (
	"context"
	"net/http"

	repo "marketplace/internal/repository"
)

// 上位に出すプロジェクト数
const topProjectsLimit = 5

// 管理ダッシュボードの集計
type AdminStatsUsecase struct {
	stats repo.StatsRepository
}

func NewAdminStatsUsecase(stats repo.StatsRepository) *AdminStatsUsecase {
	return &AdminStatsUsecase{stats: stats}
}

type AdminStatsOutput struct {
	ProjectStats     repo.ProjectStats     `json:"project_stats"`
	UserStats        repo.UserStats        `json:"user_stats"`
	MerchandiseStats repo.MerchandiseStats `json:"merchandise_stats"`
	OrderStats       repo.OrderStats       `json:"order_stats"`
	TopProjects      []ProjectOutput       `json:"top_projects"`
}

// Overview はプロジェクト/ユーザー/商品/注文の件数と閲覧数上位を返す
func (u *AdminStatsUsecase) Overview(ctx context.Context) (AdminStatsOutput, error) {
	var out AdminStatsOutput
	var err error

	if out.ProjectStats, err = u.stats.ProjectStats(ctx); err != nil {
		return AdminStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if out.UserStats, err = u.stats.UserStats(ctx); err != nil {
		return AdminStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if out.MerchandiseStats, err = u.stats.MerchandiseStats(ctx); err != nil {
		return AdminStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if out.OrderStats, err = u.stats.OrderStats(ctx); err != nil {
		return AdminStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	top, err := u.stats.TopProjects(ctx, topProjectsLimit)
	if err != nil {
		return AdminStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out.TopProjects = make([]ProjectOutput, 0, len(top))
	for _, p := range top {
		out.TopProjects = append(out.TopProjects, toProjectOutput(p))
	}

	return out, nil
}
