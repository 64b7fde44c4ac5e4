package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/LeJamon/goassetd/internal/config"
	"github.com/LeJamon/goassetd/internal/server/api/jsonrpc"
	"github.com/LeJamon/goassetd/internal/server/methods"
	"github.com/LeJamon/goassetd/internal/storage/audit"
	"github.com/LeJamon/goassetd/internal/storage/database"
	_ "github.com/LeJamon/goassetd/internal/storage/database/leveldb"
	_ "github.com/LeJamon/goassetd/internal/storage/database/pebble"
	"github.com/LeJamon/goassetd/internal/storage/snapshot"
)

// serveCmd represents the serve command (default action)
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the asset accounting daemon",
	Long: `Start the assetd server which provides:
- The issuer, purse and payment JSON-RPC methods
- Snapshot persistence of every issuer's ledger
- An optional SQLite audit log of all mutating operations
- A health check endpoint

This is the default command when no subcommand is specified.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Run serve when no subcommand is given.
	rootCmd.RunE = serveCmd.RunE
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	level, err := cfg.LogLevel()
	if err != nil {
		level = logrus.InfoLevel
	}
	switch {
	case debug || verbose:
		level = logrus.DebugLevel
	case quiet:
		level = logrus.ErrorLevel
	}
	log.SetLevel(level)
	return log
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	mgr, err := database.NewManager(cfg.Database.Backend, cfg.Database.Path)
	if err != nil {
		return err
	}
	defer mgr.Close()

	db, err := mgr.OpenDB("snapshots")
	if err != nil {
		return err
	}
	store, err := snapshot.NewStore(db, cfg.Snapshot.Compression, cfg.Snapshot.CacheSize)
	if err != nil {
		return err
	}

	opts := []methods.Option{
		methods.WithLogger(log),
		methods.WithSnapshotStore(store),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Audit.Path != "" {
		auditLog, err := audit.Open(ctx, cfg.Audit.Path)
		if err != nil {
			return err
		}
		defer auditLog.Close()
		opts = append(opts, methods.WithAuditLog(auditLog))
	}

	svc := methods.NewService(opts...)
	if err := svc.RestoreIssuers(ctx); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/", jsonrpc.NewServer(jsonrpc.NewHandler(svc), log))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"assetd"}`))
	})

	srv := &http.Server{
		Addr:         cfg.Server.ListenAddr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr":    cfg.Server.ListenAddr,
			"backend": cfg.Database.Backend,
			"issuers": len(svc.IssuerNames()),
		}).Info("assetd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}

		// Persist everything before the process exits.
		if _, err := svc.SnapshotAll(shutdownCtx); err != nil {
			log.WithError(err).Error("final snapshot failed")
			return err
		}
		return nil
	})

	return g.Wait()
}
