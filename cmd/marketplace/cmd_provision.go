package main

import (
	"fmt"

	"marketplace/internal/config"
	"marketplace/internal/infra/db"
	"marketplace/internal/provision"

	"github.com/spf13/cobra"
)

// marketplace provision — マイグレーションと初期管理者の作成。
// 冪等なのでデプロイのたびに実行してよい
var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Run schema migration and bootstrap the initial admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		gormDB, err := db.Connect(cfg)
		if err != nil {
			return err
		}

		if err := provision.Run(cmd.Context(), gormDB, cfg); err != nil {
			return err
		}

		fmt.Println("provision: done")
		return nil
	},
}

// marketplace seed — 開発用のデモデータを投入する
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo categories and merchandise (skips existing rows)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		gormDB, err := db.Connect(cfg)
		if err != nil {
			return err
		}

		if err := provision.Seed(cmd.Context(), gormDB); err != nil {
			return err
		}

		fmt.Println("seed: done")
		return nil
	},
}
