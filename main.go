package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/yeremiapane/foodcourt/config"
	"github.com/yeremiapane/foodcourt/utils"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "foodcourt",
	Short: "Online food ordering storefront",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(createAdminCmd)
}

// boot loads configuration, sets up logging and opens the database.
func boot() (*config.Config, *gorm.DB, error) {
	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)

	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, db, nil
}
