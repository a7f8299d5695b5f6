// Package config provides configuration management for the launcher.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file loaded via godotenv.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided into subsections:
//   - Backend: layout of the Python backend tree (directories, script, packages)
//   - Model: trained model artifact check and fetch sources
//   - Probe: readiness probe of the backend health endpoint
//   - Control: optional supervisor HTTP control surface
//   - Journal: launch history database (sqlite or mysql)
//   - Storage: S3/MinIO credentials and bucket for model artifacts
//   - Log: logging level and format
//
// Defaults come from `default:` struct tags and environment variables map
// onto nested keys with underscores (e.g. BACKEND_SCRIPT, PROBE_URL).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Backend.ScriptPath())
package config
