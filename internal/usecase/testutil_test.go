package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"marketplace/internal/domain/model"
	infraRepo "marketplace/internal/infra/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// テストごとに独立したin-memory DBを作る。
// 名前を分けないとコネクションプール越しに同じDBを掴んでしまう
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Project{},
		&model.Merchandise{},
		&model.Order{},
		&model.OrderItem{},
		&model.ModerationLog{},
		&model.Interest{},
		&model.Review{},
	))
	return db
}

func newTxManager(db *gorm.DB) *infraRepo.TxManagerGorm {
	return infraRepo.NewTxManagerGorm(db)
}

func seedMerchandise(t *testing.T, db *gorm.DB, name string, price int64, quantity int64) model.Merchandise {
	t.Helper()

	m := model.Merchandise{Name: name, Price: price, Quantity: quantity}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func currentStock(t *testing.T, db *gorm.DB, merchandiseID int64) int64 {
	t.Helper()

	var m model.Merchandise
	require.NoError(t, db.First(&m, merchandiseID).Error)
	return m.Quantity
}

func seedProject(t *testing.T, db *gorm.DB, status model.ProjectStatus) model.Project {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&model.Category{}).Count(&count).Error)
	c := model.Category{Name: fmt.Sprintf("cat-%d", count+1)}
	require.NoError(t, db.Create(&c).Error)

	p := model.Project{
		CategoryID:  c.ID,
		OwnerUserID: 1,
		Title:       "test project",
		Description: "desc",
		Status:      status,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func ctxTODO() context.Context { return context.TODO() }
