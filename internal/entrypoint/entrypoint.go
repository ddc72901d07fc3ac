package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcatalog/internal/catalog"
	"github.com/mrlokans/bookcatalog/internal/config"
	"github.com/mrlokans/bookcatalog/internal/database"
	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/exporters"
	http_controllers "github.com/mrlokans/bookcatalog/internal/http"
	"github.com/mrlokans/bookcatalog/internal/scheduler"
	"github.com/mrlokans/bookcatalog/internal/security"
	"github.com/mrlokans/bookcatalog/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Application running at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the server goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// csrfSecret returns the configured secret, or a fresh one when none is set.
func csrfSecret(cfg config.Security) ([]byte, error) {
	if !cfg.CSRFEnabled {
		return nil, nil
	}
	if cfg.CSRFSecret != "" {
		return security.DecodeSecret(cfg.CSRFSecret), nil
	}
	secret, err := security.GenerateSecret()
	if err != nil {
		return nil, err
	}
	log.Printf("Generated CSRF secret (set CSRF_SECRET to keep forms valid across restarts)")
	return security.DecodeSecret(secret), nil
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Book Catalog v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	repo := books.NewRepository(db.DB)
	catalogCfg := catalog.Config{
		PageSize:      cfg.Catalog.PageSize,
		DefaultColumn: cfg.Catalog.DefaultColumn,
	}
	searcher := catalog.NewSearcher(catalogCfg, repo)

	// Flash messages live in the main database
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := security.NewSessionManager(sqlDB, cfg.Security.SessionLifetime, cfg.Security.SecureCookies)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	secret, err := csrfSecret(cfg.Security)
	if err != nil {
		log.Fatalf("Failed to generate CSRF secret: %v", err)
	}
	if secret == nil {
		log.Printf("WARNING: CSRF protection is disabled")
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var exportScheduler *scheduler.ExportScheduler
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewExportCatalogQueue(repo, exporters.NewCSVExporter(cfg.Export.Dir), searcher.Config()),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		if cfg.Export.Enabled {
			exportScheduler = scheduler.NewExportScheduler(taskClient, cfg.Export.Schedule, searcher.Config().DefaultColumn)
			if err := exportScheduler.Start(taskCtx); err != nil {
				log.Printf("WARNING: Scheduled export disabled: %v", err)
				exportScheduler = nil
			}
		}
	} else if cfg.Export.Enabled {
		log.Printf("WARNING: EXPORT_ENABLED requires TASKS_ENABLED, scheduled export is off")
	}

	routerCfg := http_controllers.RouterConfig{
		Store:          repo,
		Lister:         searcher,
		Database:       db,
		SessionManager: sessionManager,
		CSRFSecret:     secret,
		SecureCookies:  cfg.Security.SecureCookies,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		Version:        version,
	}
	// A nil *tasks.Client must not end up in the interface
	if taskClient != nil {
		routerCfg.Exports = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if exportScheduler != nil {
			exportScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
