package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		UI
		Catalog
		Security
		Tasks
		Export
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	UI struct {
		TemplatesPath string
		StaticPath    string
	}
	Catalog struct {
		PageSize      int
		DefaultColumn string
	}
	Security struct {
		CSRFEnabled     bool
		CSRFSecret      string
		SecureCookies   bool // Set to false for local dev without HTTPS
		SessionLifetime time.Duration
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Export struct {
		Enabled  bool
		Dir      string
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
)

// loadDotEnv reads .env files into the process environment. Variables that
// are already set win over the file.
func loadDotEnv(files ...string) {
	for _, f := range files {
		if err := godotenv.Load(f); err == nil {
			log.Printf("Loaded environment from %s", f)
		}
	}
}

func NewConfig() *Config {
	loadDotEnv(".env")
	return newConfig(viper.New())
}

func newConfig(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetDefault("port", 3000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("static_path", "./static")

	v.SetDefault("catalog_page_size", DefaultPageSize)
	v.SetDefault("catalog_default_column", DefaultSearchColumn)

	// Security defaults
	v.SetDefault("csrf_enabled", true)
	v.SetDefault("csrf_secret", "") // Auto-generated if empty
	v.SetDefault("secure_cookies", false)
	v.SetDefault("session_lifetime", "24h")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Export defaults
	v.SetDefault("export_enabled", false)
	v.SetDefault("export_dir", "./exports")
	v.SetDefault("export_schedule", "0 3 * * *")

	pageSize := v.GetInt("CATALOG_PAGE_SIZE")
	if pageSize <= 0 {
		log.Printf("WARNING: CATALOG_PAGE_SIZE=%d is not positive, using %d", pageSize, DefaultPageSize)
		pageSize = DefaultPageSize
	}

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Catalog: Catalog{
			PageSize:      pageSize,
			DefaultColumn: strings.ToLower(v.GetString("CATALOG_DEFAULT_COLUMN")),
		},
		Security: Security{
			CSRFEnabled:     v.GetBool("CSRF_ENABLED"),
			CSRFSecret:      v.GetString("CSRF_SECRET"),
			SecureCookies:   v.GetBool("SECURE_COOKIES"),
			SessionLifetime: v.GetDuration("SESSION_LIFETIME"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Export: Export{
			Enabled:  v.GetBool("EXPORT_ENABLED"),
			Dir:      v.GetString("EXPORT_DIR"),
			Schedule: v.GetString("EXPORT_SCHEDULE"),
		},
	}
}
