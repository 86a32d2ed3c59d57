package main

import (
	"time"

	"marketplace/internal/config"
	"marketplace/internal/handler"
	"marketplace/internal/infra/db"
	infraRepo "marketplace/internal/infra/repository"
	"marketplace/internal/infra/storage"
	"marketplace/internal/middleware"
	"marketplace/internal/server"
	"marketplace/internal/usecase"
	"marketplace/internal/validator"

	"github.com/labstack/echo/v4"
	rd "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// marketplace serve — HTTPサーバを起動する
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		gormDB, err := db.Connect(cfg)
		if err != nil {
			return err
		}

		//Repository（GORM実装）生成
		userRepo := infraRepo.NewUserGormRepository(gormDB)
		categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
		merchandiseRepo := infraRepo.NewMerchandiseGormRepository(gormDB)
		projectRepo := infraRepo.NewProjectGormRepository(gormDB)
		interestRepo := infraRepo.NewInterestGormRepository(gormDB)
		reviewRepo := infraRepo.NewReviewGormRepository(gormDB)
		statsRepo := infraRepo.NewStatsGormRepository(gormDB)
		txManager := infraRepo.NewTxManagerGorm(gormDB)

		//メディアストレージ。S3_BUCKET未設定ならアップロードAPIは503
		var mediaStorage usecase.MediaStorage
		if cfg.S3Bucket != "" {
			s3, err := storage.NewS3Storage(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			mediaStorage = s3
		}

		//注文POSTのレート制限。REDIS_ADDR未設定なら無効
		var orderRateLimit echo.MiddlewareFunc
		if cfg.RedisAddr != "" {
			rdb := rd.NewClient(&rd.Options{Addr: cfg.RedisAddr})
			orderRateLimit = middleware.RedisRateLimit(rdb, 10, time.Minute)
		}

		//Usecase生成
		authUC := usecase.NewAuthUsecase(cfg, userRepo, validator.NewAuthValidator(userRepo))
		merchandiseUC := usecase.NewMerchandiseUsecase(merchandiseRepo)
		categoryUC := usecase.NewCategoryUsecase(categoryRepo)
		projectUC := usecase.NewProjectUsecase(txManager, categoryRepo)
		interestUC := usecase.NewInterestUsecase(interestRepo, reviewRepo, projectRepo)
		orderUC := usecase.NewOrderUsecase(txManager)
		adminOrderUC := usecase.NewAdminOrderUsecase(txManager)
		adminStatsUC := usecase.NewAdminStatsUsecase(statsRepo)
		moderationUC := usecase.NewModerationUsecase(txManager)
		mediaUC := usecase.NewMediaUsecase(mediaStorage, txManager)

		//Handler生成・起動
		return server.Start(cfg, server.Handlers{
			Auth:             handler.NewAuthHandler(authUC),
			Merchandise:      handler.NewMerchandiseHandler(merchandiseUC),
			Category:         handler.NewCategoryHandler(categoryUC),
			Project:          handler.NewProjectHandler(projectUC),
			Interest:         handler.NewInterestHandler(interestUC),
			Order:            handler.NewOrderHandler(orderUC, orderRateLimit),
			AdminCategory:    handler.NewAdminCategoryHandler(categoryUC),
			AdminMerchandise: handler.NewAdminMerchandiseHandler(merchandiseUC),
			AdminOrder:       handler.NewAdminOrderHandler(adminOrderUC),
			AdminProject:     handler.NewAdminProjectHandler(moderationUC),
			AdminStats:       handler.NewAdminStatsHandler(adminStatsUC),
			Upload:           handler.NewUploadHandler(mediaUC),
		})
	},
}
