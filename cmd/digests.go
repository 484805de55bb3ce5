package cmd

import (
	"context"
	"errors"
	"fmt"

	"duplicate-monitor/core/config"
	"duplicate-monitor/core/logger"
	"duplicate-monitor/core/storage"
	"duplicate-monitor/feature/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var digestsKeep int

// digestsCmd represents the digests command
var digestsCmd = &cobra.Command{
	Use:   "digests",
	Short: "Show the latest archived digest and prune old ones",
	Long: `Lists the digests archived in the configured bucket, prints a summary
of the newest one, and deletes everything older than the retention count.`,
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

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		// The alert source is only needed for new exports.
		svc := export.NewService(store, cfg.Storage.Bucket, nil, logg)
		ctx := context.Background()

		digest, name, err := svc.Latest(ctx)
		if errors.Is(err, export.ErrNoDigests) {
			logg.Info("No digests archived yet", zap.String("bucket", cfg.Storage.Bucket))
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read latest digest: %w", err)
		}
		logg.Info("Latest digest",
			zap.String("object", name),
			zap.Int64("generated_at", digest.GeneratedAt),
			zap.Any("counts", digest.Counts),
			zap.Int("recent_alerts", len(digest.Recent)))

		removed, err := svc.PruneDigests(ctx, digestsKeep)
		if err != nil {
			return fmt.Errorf("failed to prune digests: %w", err)
		}
		for _, obj := range removed {
			logg.Info("Removed digest", zap.String("object", obj))
		}
		return nil
	},
}

func init() {
	digestsCmd.Flags().IntVar(&digestsKeep, "keep", 10, "number of recent digests to retain")
	RootCmd.AddCommand(digestsCmd)
}
