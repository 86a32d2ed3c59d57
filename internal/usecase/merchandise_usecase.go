package usecase

import (
	"context"
	"net/http"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type MerchandiseUsecase struct {
	merchandise repo.MerchandiseRepository
}

func NewMerchandiseUsecase(merchandise repo.MerchandiseRepository) *MerchandiseUsecase {
	return &MerchandiseUsecase{merchandise: merchandise}
}

type MerchandiseListInput struct {
	Page    int
	Limit   int
	Q       string
	InStock *bool
}

type MerchandiseListOutput struct {
	Merchandise []model.Merchandise `json:"merchandise"`
	Total       int64               `json:"total"`
	Page        int                 `json:"page"`
}

type MerchandiseCreateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       *int64 `json:"price"`
	Quantity    int64  `json:"quantity"`
	ImageURL    string `json:"image_url"`
}

type MerchandiseUpdateInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	Quantity    *int64  `json:"quantity"`
	ImageURL    *string `json:"image_url"`
}

func (u *MerchandiseUsecase) List(ctx context.Context, in MerchandiseListInput) (MerchandiseListOutput, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 10
	}

	items, total, err := u.merchandise.List(ctx, repo.MerchandiseListQuery{
		Page:    in.Page,
		Limit:   in.Limit,
		Q:       in.Q,
		InStock: in.InStock,
	})
	if err != nil {
		return MerchandiseListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return MerchandiseListOutput{Merchandise: items, Total: total, Page: in.Page}, nil
}

func (u *MerchandiseUsecase) GetDetail(ctx context.Context, id int64) (model.Merchandise, error) {
	if id <= 0 {
		return model.Merchandise{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	m, err := u.merchandise.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Merchandise{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Merchandise{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return m, nil
}

// 管理者のみ
func (u *MerchandiseUsecase) Create(ctx context.Context, in MerchandiseCreateInput) (model.Merchandise, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Merchandise{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Price == nil || *in.Price < 0 {
		return model.Merchandise{}, NewHTTPError(http.StatusBadRequest, "price is required")
	}
	if in.Quantity < 0 {
		return model.Merchandise{}, NewHTTPError(http.StatusBadRequest, "quantity must not be negative")
	}

	m, err := u.merchandise.Create(ctx, model.Merchandise{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       *in.Price,
		Quantity:    in.Quantity,
		ImageURL:    in.ImageURL,
	})
	if err != nil {
		return model.Merchandise{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return m, nil
}

// 指定されたフィールドだけを更新する
func (u *MerchandiseUsecase) Update(ctx context.Context, id int64, in MerchandiseUpdateInput) (model.Merchandise, error) {
	if id <= 0 {
		return model.Merchandise{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	m, err := u.merchandise.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Merchandise{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Merchandise{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return model.Merchandise{}, NewHTTPError(http.StatusBadRequest, "name is required")
		}
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return model.Merchandise{}, NewHTTPError(http.StatusBadRequest, "invalid price")
		}
		m.Price = *in.Price
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return model.Merchandise{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
		m.Quantity = *in.Quantity
	}
	if in.ImageURL != nil {
		m.ImageURL = *in.ImageURL
	}

	if err := u.merchandise.Update(ctx, m); err != nil {
		if err == repo.ErrNotFound {
			return model.Merchandise{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Merchandise{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return m, nil
}

func (u *MerchandiseUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.merchandise.Delete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
