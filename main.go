package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/request-queue/auth"
	"github.com/danielhkuo/request-queue/cliparse"
	"github.com/danielhkuo/request-queue/db"
	"github.com/danielhkuo/request-queue/middleware"
	"github.com/danielhkuo/request-queue/router"
	"github.com/danielhkuo/request-queue/store"
)

// openDatabase opens PostgreSQL through lib/pq or SQLite through
// modernc.org/sqlite. SQLite gets a single connection and a busy timeout
// so vote transactions queue instead of failing with SQLITE_BUSY.
func openDatabase(cfg cliparse.Config) (*sql.DB, error) {
	if cfg.DatabaseType == "postgres" {
		return sql.Open("postgres", cfg.DatabaseURL)
	}

	dsn := cfg.DatabaseURL
	if !strings.Contains(dsn, "_pragma=") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(1)
	return conn, nil
}

// seedSuperadmin creates or promotes the configured superadmin account
func seedSuperadmin(cfg cliparse.Config, conn *sql.DB) error {
	if cfg.AdminUsername == "" {
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admin, err := store.New(conn, cfg.EventCodeSalt).EnsureSuperadmin(ctx, cfg.AdminUsername, hash)
	if err != nil {
		return fmt.Errorf("ensure superadmin: %w", err)
	}
	slog.Info("Superadmin ready", "dj_id", admin.ID, "username", admin.Username)
	return nil
}

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	dbConn, err := openDatabase(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	if err := seedSuperadmin(cfg, dbConn); err != nil {
		slog.Error("superadmin seed failed", "error", err)
		os.Exit(1)
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
