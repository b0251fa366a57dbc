package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"notebookhub/internal/config"
	"notebookhub/internal/http"
	"notebookhub/internal/repostore"
	"notebookhub/internal/service"
	"notebookhub/internal/storage"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API stores notebooks, collections of text files, with git-style
// version control: branches, commits, diffs and file trees.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Notebook Hub API
//   description: |
//     Versioned notebooks backed by one git repository per notebook and a SQLite metadata index.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds the wired components shared by every command.
type app struct {
	cfg       *config.Config
	db        *sql.DB
	notebooks storage.NotebookStore
	users     storage.UserStore
	service   service.NotebookService
}

// newApp loads configuration, configures logging and opens the index.
// The caller must defer app.Close().
func newApp(migrate bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	configureLogging(cfg)

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if migrate {
		if err := storage.Migrate(db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}
	if err := storage.CheckSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("checking schema: %w", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	repos := repostore.NewGitStore(repostore.NewShardedLocator(cfg.RepoRoot), repostore.Options{
		DefaultBranch: cfg.DefaultBranch,
		System:        repostore.Signature{Name: cfg.SystemAuthorName, Email: cfg.SystemAuthorEmail},
		SeedCommit:    cfg.SeedCommit,
	})

	stores := service.Stores{
		Notebooks: storage.NewNotebookRepo(db),
		Branches:  storage.NewBranchRepo(db),
		Commits:   storage.NewCommitRepo(db),
		Users:     storage.NewUserRepo(db),
	}

	return &app{
		cfg:       cfg,
		db:        db,
		notebooks: stores.Notebooks,
		users:     stores.Users,
		service: service.NewNotebookService(stores, repos, service.Options{
			DefaultBranch:     cfg.DefaultBranch,
			SystemAuthorEmail: cfg.SystemAuthorEmail,
			CommitListLimit:   cfg.CommitListLimit,
			CommitListMax:     cfg.CommitListMax,
		}),
	}, nil
}

func (a *app) Close() {
	_ = a.db.Close()
}

// configureLogging installs the default slog logger with the configured level and format.
func configureLogging(cfg *config.Config) {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)
}

var rootCmd = &cobra.Command{
	Use:          "api",
	Short:        "Versioned notebook service",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		router := http.NewRouter(&http.Deps{
			Notebooks: a.service,
			Users:     a.users,
			DB:        a.db,
			RepoRoot:  a.cfg.RepoRoot,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := &nethttp.Server{
			Addr:              ":" + a.cfg.APIPort,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			slog.Info("Starting API server", "addr", srv.Addr, "repo_root", a.cfg.RepoRoot)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, nethttp.ErrServerClosed) {
				return fmt.Errorf("API server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Println("Database schema is up to date")
		return nil
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile [notebook-id...]",
	Short: "Repair the metadata index from repository history",
	Long:  "Repair the metadata index from repository history. Without arguments every notebook is reconciled.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		ids := args
		if len(ids) == 0 {
			if ids, err = a.notebooks.ListIDs(ctx); err != nil {
				return fmt.Errorf("listing notebooks: %w", err)
			}
		}

		var failed int
		for _, id := range ids {
			report, err := a.service.Reconcile(ctx, id)
			if err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "%s: %v\n", id, err)
				continue
			}
			fmt.Printf("%s: %d branches created, %d branches updated, %d commits inserted\n",
				id, report.BranchesCreated, report.BranchesUpdated, report.CommitsInserted)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d notebooks failed to reconcile", failed, len(ids))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(reconcileCmd)
}
