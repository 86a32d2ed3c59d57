package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type MerchandiseListQuery struct {
	Page    int
	Limit   int
	Q       string
	InStock *bool
}

// 商品の永続化（保存・取得）だけを約束。
type MerchandiseRepository interface {
	List(ctx context.Context, q MerchandiseListQuery) ([]model.Merchandise, int64, error)
	FindByID(ctx context.Context, id int64) (model.Merchandise, error)

	Create(ctx context.Context, m model.Merchandise) (model.Merchandise, error)
	Update(ctx context.Context, m model.Merchandise) error
	Delete(ctx context.Context, id int64) error
}
