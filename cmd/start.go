package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"duplicate-monitor/core/config"
	"duplicate-monitor/core/database"
	"duplicate-monitor/core/loader"
	"duplicate-monitor/core/logger"
	"duplicate-monitor/core/middleware/auth"
	"duplicate-monitor/core/middleware/rayid"
	"duplicate-monitor/core/queue"

	"duplicate-monitor/feature/alerts"
	"duplicate-monitor/feature/messages"
	"duplicate-monitor/feature/notifier"
	"duplicate-monitor/feature/tasks"
	"duplicate-monitor/feature/users"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "duplicate-monitor/docs/swagger"
)

// @title Duplicate Monitor API
// @version 1.0
// @description Broker API for duplicate message detection and alert handling.
// @host localhost:5000
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the duplicate monitor broker",
	Long:  `Starts the HTTP server, the alert notifier, and all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Required)
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(&messages.Message{}, &alerts.Alert{}, &tasks.Task{}, &users.AllowedUser{}); err != nil {
			logg.Fatal("Failed to migrate database", zap.Error(err))
		}

		// 4. Connect to the Alert Queue (Optional)
		// A missing or unreachable queue is not fatal; the notifier falls
		// back to polling pending alerts.
		var q *queue.Queue
		if cfg.Queue.Enabled() {
			if conn, err := queue.New(cfg.Queue); err != nil {
				logg.Warn("Optional alert queue connection failed", zap.Error(err))
			} else {
				q = conn
				defer q.Close()
				logg.Info("Connected to alert queue", zap.String("name", cfg.Queue.Name))
			}
		}

		var publisher alerts.Publisher
		if q != nil {
			publisher = q
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		alertFeature := alerts.NewFeature(db, logg, publisher)
		mgr.Register(alertFeature)
		mgr.Register(messages.NewFeature(db, logg, cfg.Monitor, alertFeature.Service()))
		mgr.Register(tasks.NewFeature(db, logg))
		mgr.Register(users.NewFeature(db, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Health Check (Public, used by the platform's probes)
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok", "ts": time.Now().Unix()})
		})

		// 2.6 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 4. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 5. Start the Notifier
		workerCtx, cancelWorker := context.WithCancel(context.Background())
		defer cancelWorker()
		if cfg.Bot.Enabled() {
			worker := notifier.NewWorker(cfg.Bot, alertFeature.Service(), notifier.NewClient(cfg.Bot), logg)
			if q != nil {
				go func() {
					if err := q.Consume(workerCtx, worker.HandleQueued); err != nil && workerCtx.Err() == nil {
						logg.Error("Alert queue consumer stopped", zap.Error(err))
					}
				}()
			}
			go worker.Run(workerCtx)
			logg.Info("Notifier started", zap.Int("admins", len(cfg.Bot.AdminList())))
		} else {
			logg.Info("Notifier disabled, alerts are only available over the API")
		}

		// 6. Start Server
		addr := cfg.Server.Addr()
		go func() {
			logg.Info("Starting server", zap.String("addr", addr))
			if err := app.Listen(addr); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		cancelWorker()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
