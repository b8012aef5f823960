// Package config provides configuration management for the launcher.
//
// It utilizes Viper for layering defaults declared in struct tags, an optional
// launcher.yaml file, a .env file (read with godotenv) and the environment.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - App: entry point, mode, host, port, driver and execution context (APP_*)
//   - Storage: S3/MinIO credentials and bucket for the bucket app (STORAGE_*)
//   - Log: logging level, format and optional file (LOG_*)
//
// Every key maps to an environment variable by upper-casing it and replacing
// dots with underscores, so app.entry_point is read from APP_ENTRY_POINT.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.App.Port)
package config
