package handler

import (
	"net/http"
	"strconv"

	"marketplace/internal/config"
	"marketplace/internal/middleware"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminProjectHandler struct {
	uc *usecase.ModerationUsecase
}

func NewAdminProjectHandler(uc *usecase.ModerationUsecase) *AdminProjectHandler {
	return &AdminProjectHandler{uc: uc}
}

func (h *AdminProjectHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/projects", middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	g.GET("/pending", h.listPending)
	g.POST("/:id/approve", h.approve)
	g.POST("/:id/reject", h.reject)
	g.POST("/:id/resubmit", h.resubmit)
	g.POST("/:id/feature", h.toggleFeature)
}

func (h *AdminProjectHandler) listPending(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.uc.ListPending(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProjectHandler) approve(c echo.Context) error {
	id, projectID, ok := h.adminAndProject(c)
	if !ok {
		return nil
	}

	out, err := h.uc.Approve(c.Request().Context(), id.UserID, projectID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProjectHandler) reject(c echo.Context) error {
	id, projectID, ok := h.adminAndProject(c)
	if !ok {
		return nil
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Reject(c.Request().Context(), id.UserID, projectID, req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProjectHandler) resubmit(c echo.Context) error {
	id, projectID, ok := h.adminAndProject(c)
	if !ok {
		return nil
	}

	out, err := h.uc.Resubmit(c.Request().Context(), id.UserID, projectID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProjectHandler) toggleFeature(c echo.Context) error {
	id, projectID, ok := h.adminAndProject(c)
	if !ok {
		return nil
	}

	out, err := h.uc.ToggleFeature(c.Request().Context(), id.UserID, projectID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// adminAndProject はIdentityとパスのproject idをまとめて取り出す。
// okがfalseのときは応答まで書いてあるので呼び出し側はそのままreturnする
func (h *AdminProjectHandler) adminAndProject(c echo.Context) (middleware.Identity, int64, bool) {
	id, ok := getIdentity(c)
	if !ok {
		_ = c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return middleware.Identity{}, 0, false
	}

	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return middleware.Identity{}, 0, false
	}
	return id, projectID, true
}
