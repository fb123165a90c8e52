// Package config provides configuration management for the resources service.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Defaults come from `default` struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, read timeout)
//   - Database: MySQL or SQLite connection details for the persisted key table
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Resources: loading mode, marker folder, key table source and load concurrency
//
// Environment variables map to nested keys by replacing dots with underscores
// (RESOURCES_TABLE_SOURCE -> resources.table_source).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
