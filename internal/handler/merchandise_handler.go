package handler

import (
	"net/http"
	"strconv"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /merchandise の公開API
type MerchandiseHandler struct {
	uc *usecase.MerchandiseUsecase
}

// DI
func NewMerchandiseHandler(uc *usecase.MerchandiseUsecase) *MerchandiseHandler {
	return &MerchandiseHandler{uc: uc}
}

func (h *MerchandiseHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/merchandise", h.list)
	e.GET("/merchandise/:id", h.detail)
}

func (h *MerchandiseHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 10
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	//在庫ありだけに絞る任意フィルタ
	var inStock *bool
	if v := c.QueryParam("in_stock"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid in_stock"})
		}
		inStock = &b
	}

	out, err := h.uc.List(c.Request().Context(), usecase.MerchandiseListInput{
		Page:    page,
		Limit:   limit,
		Q:       c.QueryParam("q"),
		InStock: inStock,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MerchandiseHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
