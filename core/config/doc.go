// Package config provides configuration management for the scaffolding wizard.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file, with defaults declared as struct tags on each
// partial configuration.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: schema source connection details (MySQL or SQLite)
//   - Manifest: metadata service endpoint and fallback policy
//   - Storage: S3/MinIO credentials and bucket settings
//   - Store: configuration store backend selection
//   - Generate: generation output directory and archive upload
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
