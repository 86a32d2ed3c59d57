package repository_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"marketplace/internal/domain/model"
	infraRepo "marketplace/internal/infra/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSqliteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Merchandise{}))
	return db
}

func TestDecreaseStockIfEnough_Boundary(t *testing.T) {
	db := newSqliteDB(t)
	inv := infraRepo.NewInventoryGormRepository(db)
	ctx := context.TODO()

	m := model.Merchandise{Name: "sticker", Price: 500, Quantity: 2}
	require.NoError(t, db.Create(&m).Error)

	//残り在庫ちょうどはOK
	ok, err := inv.DecreaseStockIfEnough(ctx, m.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	var got model.Merchandise
	require.NoError(t, db.First(&got, m.ID).Error)
	assert.Equal(t, int64(0), got.Quantity)

	//在庫0からは1個も引けない
	ok, err = inv.DecreaseStockIfEnough(ctx, m.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.First(&got, m.ID).Error)
	assert.Equal(t, int64(0), got.Quantity)
}

func TestDecreaseStockIfEnough_UnknownID(t *testing.T) {
	db := newSqliteDB(t)
	inv := infraRepo.NewInventoryGormRepository(db)

	//存在しないIDは在庫不足と同じ扱い（false, nil）
	ok, err := inv.DecreaseStockIfEnough(context.TODO(), 9999, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIncreaseStock_RoundTrip(t *testing.T) {
	db := newSqliteDB(t)
	inv := infraRepo.NewInventoryGormRepository(db)
	ctx := context.TODO()

	m := model.Merchandise{Name: "mug", Price: 1200, Quantity: 3}
	require.NoError(t, db.Create(&m).Error)

	ok, err := inv.DecreaseStockIfEnough(ctx, m.ID, 3)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, inv.IncreaseStock(ctx, m.ID, 3))

	var got model.Merchandise
	require.NoError(t, db.First(&got, m.ID).Error)
	assert.Equal(t, int64(3), got.Quantity)
}

// 実DBでの競合テスト。TEST_DATABASE_URLが無ければスキップする。
// 同時に在庫を引き当てても成功数は在庫数を超えない
func TestDecreaseStockIfEnough_ConcurrentNoOversell(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Merchandise{}))

	m := model.Merchandise{Name: "limited", Price: 1000, Quantity: 5}
	require.NoError(t, db.Create(&m).Error)
	defer db.Delete(&model.Merchandise{}, m.ID)

	inv := infraRepo.NewInventoryGormRepository(db)
	ctx := context.TODO()

	const workers = 20
	var wg sync.WaitGroup
	results := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := inv.DecreaseStockIfEnough(ctx, m.ID, 1)
			if err != nil {
				results <- false
				return
			}
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for ok := range results {
		if ok {
			succeeded++
		}
	}
	assert.Equal(t, 5, succeeded)

	var got model.Merchandise
	require.NoError(t, db.First(&got, m.ID).Error)
	assert.Equal(t, int64(0), got.Quantity)
}
