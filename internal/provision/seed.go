package provision

import (
	"context"
	"fmt"

	"marketplace/internal/domain/model"
	infraRepo "marketplace/internal/infra/repository"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

// 開発用のデモデータ
var seedCategories = []model.Category{
	{Name: "Web", Description: "Webアプリケーション"},
	{Name: "Mobile", Description: "モバイルアプリ"},
	{Name: "Game", Description: "ゲーム"},
	{Name: "Tool", Description: "開発ツール・CLI"},
}

var seedMerchandise = []model.Merchandise{
	{Name: "ステッカーセット", Description: "ロゴステッカー5枚組", Price: 500, Quantity: 100},
	{Name: "Tシャツ", Description: "ロゴ入りTシャツ", Price: 2500, Quantity: 30},
	{Name: "マグカップ", Description: "ロゴ入りマグカップ", Price: 1200, Quantity: 50},
}

// Seed はデモのカテゴリ・グッズを投入する。既にあるものは飛ばす
func Seed(ctx context.Context, db *gorm.DB) error {
	categories := infraRepo.NewCategoryGormRepository(db)

	for _, c := range seedCategories {
		_, err := categories.FindByName(ctx, c.Name)
		if err == nil {
			continue
		}
		if err != repo.ErrNotFound {
			return fmt.Errorf("find category %s: %w", c.Name, err)
		}
		if _, err := categories.Create(ctx, c); err != nil {
			return fmt.Errorf("create category %s: %w", c.Name, err)
		}
	}

	for _, m := range seedMerchandise {
		var count int64
		if err := db.WithContext(ctx).Model(&model.Merchandise{}).
			Where("name = ?", m.Name).Count(&count).Error; err != nil {
			return fmt.Errorf("find merchandise %s: %w", m.Name, err)
		}
		if count > 0 {
			continue
		}
		if err := db.WithContext(ctx).Create(&m).Error; err != nil {
			return fmt.Errorf("create merchandise %s: %w", m.Name, err)
		}
	}

	return nil
}
