package provision

import (
	"context"
	"fmt"

	"marketplace/internal/config"
	"marketplace/internal/domain/model"
	infraRepo "marketplace/internal/infra/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Run はスキーマ作成と初期管理者の用意をまとめて行う。
// 何度実行しても結果は同じになる
func Run(ctx context.Context, db *gorm.DB, cfg config.Config) error {
	if err := Migrate(db); err != nil {
		return err
	}
	return EnsureAdmin(ctx, db, cfg)
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Project{},
		&model.Merchandise{},
		&model.Order{},
		&model.OrderItem{},
		&model.ModerationLog{},
		&model.Interest{},
		&model.Review{},
	)
}

// EnsureAdmin はADMIN_EMAIL/ADMIN_PASSWORDから初期管理者を作る。
// 既に居れば何もしない
func EnsureAdmin(ctx context.Context, db *gorm.DB, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	users := infraRepo.NewUserGormRepository(db)

	existing, err := users.FindByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		return fmt.Errorf("find admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), 12)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &model.User{
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}
