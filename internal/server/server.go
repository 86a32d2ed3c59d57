package server

import (
	"net/http"

	"marketplace/internal/config"
	"marketplace/internal/handler"
	"marketplace/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlers はルーティングに必要なハンドラ一式
type Handlers struct {
	Auth             *handler.AuthHandler
	Merchandise      *handler.MerchandiseHandler
	Category         *handler.CategoryHandler
	Project          *handler.ProjectHandler
	Interest         *handler.InterestHandler
	Order            *handler.OrderHandler
	AdminCategory    *handler.AdminCategoryHandler
	AdminMerchandise *handler.AdminMerchandiseHandler
	AdminOrder       *handler.AdminOrderHandler
	AdminProject     *handler.AdminProjectHandler
	AdminStats       *handler.AdminStatsHandler
	Upload           *handler.UploadHandler
}

// New はルート登録済みのechoを返す。Startとテストで共用する
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.Metrics())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", middleware.MetricsHandler())

	h.Auth.RegisterRoutes(e, cfg)
	h.Merchandise.RegisterRoutes(e)
	h.Category.RegisterRoutes(e)
	h.Project.RegisterRoutes(e, cfg)
	h.Interest.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.AdminCategory.RegisterRoutes(e, cfg)
	h.AdminMerchandise.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)
	h.AdminProject.RegisterRoutes(e, cfg)
	h.AdminStats.RegisterRoutes(e, cfg)
	h.Upload.RegisterRoutes(e, cfg)

	return e
}

func Start(cfg config.Config, h Handlers) error {
	e := New(cfg, h)
	return e.Start(":" + cfg.Port)
}
