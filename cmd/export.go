package cmd

import (
	"context"
	"fmt"

	"duplicate-monitor/core/config"
	"duplicate-monitor/core/database"
	"duplicate-monitor/core/logger"
	"duplicate-monitor/core/storage"
	"duplicate-monitor/feature/alerts"
	"duplicate-monitor/feature/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Upload an alert digest to object storage",
	Long: `Builds a JSON digest of alert counts and recent alerts and uploads it
to the configured bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		alertSvc := alerts.NewService(db, logg, nil)
		svc := export.NewService(store, cfg.Storage.Bucket, alertSvc, logg)
		objectName, err := svc.Export(context.Background())
		if err != nil {
			return fmt.Errorf("failed to export digest: %w", err)
		}

		logg.Info("Digest uploaded", zap.String("object", objectName))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)
}
