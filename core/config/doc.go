// Package config provides configuration management for catalog-sync.
//
// It uses Viper to read environment variables, optionally seeded from a .env file via
// godotenv. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key and the cron schedule for recurring imports
//   - Database: driver (mysql, postgres, sqlite) and connection details
//   - Storage: S3/MinIO credentials and the snapshot bucket
//   - Log: level, format and optional rotated log file
//   - Catalog: external API endpoint, bulk feed type and snapshot archiving
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Database.Driver)
package config
