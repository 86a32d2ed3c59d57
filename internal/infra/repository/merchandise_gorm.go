package repository

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type MerchandiseGormRepository struct {
	db *gorm.DB
}

// DI
func NewMerchandiseGormRepository(db *gorm.DB) *MerchandiseGormRepository {
	return &MerchandiseGormRepository{db: db}
}

// 検索/在庫フィルタ/ページング付きで返す。
func (r *MerchandiseGormRepository) List(ctx context.Context, q repo.MerchandiseListQuery) ([]model.Merchandise, int64, error) {
	var items []model.Merchandise
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Merchandise{})

	if strings.TrimSpace(q.Q) != "" {
		like := "%" + strings.TrimSpace(q.Q) + "%"
		tx = tx.Where("name LIKE ?", like)
	}

	// in_stock=trueなら残数あり、falseなら在庫切れのみ
	if q.InStock != nil {
		if *q.InStock {
			tx = tx.Where("quantity > 0")
		} else {
			tx = tx.Where("quantity <= 0")
		}
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Merchandise{}, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Order("id desc").Offset(offset).Limit(q.Limit).Find(&items).Error; err != nil {
		return []model.Merchandise{}, 0, err
	}

	return items, total, nil
}

func (r *MerchandiseGormRepository) FindByID(ctx context.Context, id int64) (model.Merchandise, error) {
	var m model.Merchandise
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Merchandise{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Merchandise{}, err
	}
	return m, nil
}

func (r *MerchandiseGormRepository) Create(ctx context.Context, m model.Merchandise) (model.Merchandise, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return model.Merchandise{}, err
	}
	return m, nil
}

func (r *MerchandiseGormRepository) Update(ctx context.Context, m model.Merchandise) error {
	res := r.db.WithContext(ctx).Model(&model.Merchandise{}).Where("id = ?", m.ID).Updates(map[string]interface{}{
		"name":        m.Name,
		"description": m.Description,
		"price":       m.Price,
		"quantity":    m.Quantity,
		"image_url":   m.ImageURL,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *MerchandiseGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Merchandise{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
