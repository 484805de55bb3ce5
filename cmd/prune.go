package cmd

import (
	"context"
	"fmt"
	"time"

	"duplicate-monitor/core/config"
	"duplicate-monitor/core/database"
	"duplicate-monitor/core/logger"
	"duplicate-monitor/feature/messages"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// pruneCmd represents the prune command
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete messages older than the duplicate window",
	Long: `Removes stored messages whose timestamp fell out of the duplicate
detection window. Alerts are never pruned.`,
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

		svc := messages.NewService(db, logg, cfg.Monitor, nil)
		cutoff := time.Now().Add(-svc.Window())
		removed, err := svc.Prune(context.Background(), cutoff)
		if err != nil {
			return fmt.Errorf("failed to prune messages: %w", err)
		}

		logg.Info("Pruned stale messages",
			zap.Int64("removed", removed),
			zap.Time("cutoff", cutoff))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(pruneCmd)
}
