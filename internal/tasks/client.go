package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
)

// Client runs catalog exports on a backlite queue. Tasks live in their own
// SQLite file next to the catalog database, e.g. books.db -> books-tasks.db.
type Client struct {
	queue  *backlite.Client
	db     *sql.DB
	config Config

	mu      sync.Mutex
	running bool
}

// DatabasePath derives the task database path from the catalog database path.
func DatabasePath(catalogPath string) string {
	ext := filepath.Ext(catalogPath)
	return strings.TrimSuffix(catalogPath, ext) + "-tasks" + ext
}

func NewClient(catalogPath string, cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()

	db, err := sql.Open("sqlite3", DatabasePath(catalogPath)+"?_journal=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open tasks database: %w", err)
	}
	// Every worker may hold a connection while the web handlers enqueue.
	db.SetMaxOpenConns(cfg.Workers + 4)
	db.SetConnMaxLifetime(time.Hour)

	queue, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          queueLogger{},
	})
	if err == nil {
		err = queue.Install()
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("set up task queue: %w", err)
	}

	return &Client{queue: queue, db: db, config: cfg}, nil
}

// Register adds queues. Call it before Start.
func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.queue.Register(q)
	}
}

// Start dispatches queued tasks until ctx is done or Stop is called.
// Repeated calls are no-ops.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.mu.Unlock()

	log.Printf("Task queue started with %d workers", c.config.Workers)
	c.queue.Start(ctx)
}

// Stop waits for in-flight tasks. It reports false when ctx expired first.
func (c *Client) Stop(ctx context.Context) bool {
	c.mu.Lock()
	running := c.running
	c.running = false
	c.mu.Unlock()
	if !running {
		return true
	}

	if !c.queue.Stop(ctx) {
		log.Println("Task queue stop timed out, some tasks may not have completed")
		return false
	}
	log.Println("Task queue stopped")
	return true
}

// Close releases the task database. Call it after Stop.
func (c *Client) Close() error {
	return c.db.Close()
}

// Add starts an operation to enqueue one or more tasks.
func (c *Client) Add(tasks ...backlite.Task) *backlite.TaskAddOp {
	return c.queue.Add(tasks...)
}

// EnqueueExport queues an ExportCatalogTask for the given filter and returns its ID.
func (c *Client) EnqueueExport(ctx context.Context, column, searchWord string) (string, error) {
	ids, err := c.Add(ExportCatalogTask{Column: column, SearchWord: searchWord}).Ctx(ctx).Save()
	if err == nil && len(ids) == 0 {
		err = errors.New("no task id returned")
	}
	if err != nil {
		return "", fmt.Errorf("enqueue export: %w", err)
	}
	return ids[0], nil
}

// queueLogger routes backlite's logging through the standard logger.
type queueLogger struct{}

func (queueLogger) Info(message string, params ...any) {
	log.Printf("[TASK] "+message, params...)
}

func (queueLogger) Error(message string, params ...any) {
	log.Printf("[TASK ERROR] "+message, params...)
}
