package repository

import (
	"context"

	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders         repo.OrderRepository
	orderItems     repo.OrderItemRepository
	merchandise    repo.MerchandiseRepository
	inventory      repo.InventoryRepository
	projects       repo.ProjectRepository
	moderationLogs repo.ModerationLogRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository                 { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository         { return r.orderItems }
func (r *txReposGorm) Merchandise() repo.MerchandiseRepository      { return r.merchandise }
func (r *txReposGorm) Inventory() repo.InventoryRepository          { return r.inventory }
func (r *txReposGorm) Projects() repo.ProjectRepository             { return r.projects }
func (r *txReposGorm) ModerationLogs() repo.ModerationLogRepository { return r.moderationLogs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:         NewOrderGormRepository(tx),
			orderItems:     NewOrderItemGormRepository(tx),
			merchandise:    NewMerchandiseGormRepository(tx),
			inventory:      NewInventoryGormRepository(tx),
			projects:       NewProjectGormRepository(tx),
			moderationLogs: NewModerationLogGormRepository(tx),
		}
		return fn(r)
	})
}
