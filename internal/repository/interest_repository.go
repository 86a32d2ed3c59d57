package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

// ロール別の絞り込み。クライアントはUserID、学生はOwnerUserIDで絞る
type InterestListFilter struct {
	Page  int
	Limit int
	// 表明したユーザーで絞る
	UserID *int64
	// プロジェクト所有者で絞る
	OwnerUserID *int64
}

type InterestRepository interface {
	Create(ctx context.Context, i model.Interest) (model.Interest, error)
	FindByID(ctx context.Context, id int64) (model.Interest, error)
	FindByUserAndProject(ctx context.Context, userID int64, projectID int64) (model.Interest, error)
	List(ctx context.Context, f InterestListFilter) ([]model.Interest, int64, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, rv model.Review) (model.Review, error)
	FindByInterestID(ctx context.Context, interestID int64) (model.Review, error)
	ListByProjectID(ctx context.Context, projectID int64) ([]model.Review, error)
}
