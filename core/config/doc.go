// Package config provides configuration management for the Duplicate Monitor.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (host, port, API key)
//   - Database: SQLite/MySQL connection details
//   - Storage: S3/MinIO credentials for digest exports
//   - Log: Logging level and format
//   - Monitor: Duplicate detection window and message length limits
//   - Bot: Telegram notifier credentials and admin list
//   - Queue: Optional Redis alert queue
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
