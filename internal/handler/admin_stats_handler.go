package handler

import (
	"net/http"

	"marketplace/internal/config"
	"marketplace/internal/middleware"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminStatsHandler struct {
	uc *usecase.AdminStatsUsecase
}

func NewAdminStatsHandler(uc *usecase.AdminStatsUsecase) *AdminStatsHandler {
	return &AdminStatsHandler{uc: uc}
}

func (h *AdminStatsHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/admin/stats", h.overview, middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
}

func (h *AdminStatsHandler) overview(c echo.Context) error {
	out, err := h.uc.Overview(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
