// Command vkeydb-server is the runnable entry point: it wires flags onto
// internal/config, builds a server.Server, registers the command table,
// and serves RESP connections until an interrupt signal arrives.
//
// spec.md keeps CLI argument parsing an out-of-scope collaborator, so
// this is thin wiring rather than the engine itself. Grounded on the
// teacher's main.go (flag parsing, AppState construction, listener
// accept loop) but using github.com/spf13/cobra for the flag surface the
// way packetd-packetd's cmd/ binaries do, instead of the teacher's bare
// flag package.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vkeydb/vkeydb/internal/command"
	"github.com/vkeydb/vkeydb/internal/executor"
	"github.com/vkeydb/vkeydb/internal/handlers"
	"github.com/vkeydb/vkeydb/internal/logger"
	"github.com/vkeydb/vkeydb/internal/server"
	"github.com/vkeydb/vkeydb/internal/transport"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type flags struct {
	host        string
	port        int
	databases   int
	requirePass string
	configPath  string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "vkeydb-server",
		Short: "vkeydb is an in-memory, RESP2/RESP3-compatible key/value store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f)
		},
	}

	flagsSet := cmd.Flags()
	flagsSet.StringVar(&f.host, "host", "127.0.0.1", "address to bind")
	flagsSet.IntVar(&f.port, "port", 6380, "port to listen on")
	flagsSet.IntVar(&f.databases, "databases", 16, "number of logical databases")
	flagsSet.StringVar(&f.requirePass, "requirepass", "", "password required of clients, empty disables AUTH")
	flagsSet.StringVar(&f.configPath, "config", "", "path to a redis.conf-style config file, loaded before flags are applied")
	flagsSet.StringVar(&f.logLevel, "loglevel", "info", "debug, info, warn, or error")

	return cmd
}

func run(ctx context.Context, f *flags) error {
	log := logger.New(f.logLevel)
	logger.SetDefault(log)
	defer log.Sync()

	app := server.New(f.databases, log)

	if f.configPath != "" {
		if err := app.Config.LoadFile(f.configPath); err != nil {
			return fmt.Errorf("loading config file %s: %w", f.configPath, err)
		}
	}
	if f.requirePass != "" {
		if err := app.Config.Set("requirepass", f.requirePass); err != nil {
			return err
		}
	}
	app.ACL.SetRequirePass(app.Config.String("requirepass"))
	if err := app.Config.Set("databases", strconv.Itoa(f.databases)); err != nil {
		return err
	}

	registry := command.Default()
	h := handlers.Default()
	exec := executor.New(registry, h)

	srv := &transport.Server{
		Addr:     fmt.Sprintf("%s:%d", f.host, f.port),
		App:      app,
		Executor: exec,
		Log:      log,
	}
	if err := srv.Listen(); err != nil {
		return fmt.Errorf("binding %s: %w", srv.Addr, err)
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return srv.Serve(gCtx)
	})
	g.Go(func() error {
		runActiveExpireSweeper(gCtx, app)
		return nil
	})

	log.Info("vkeydb-server listening on %s (run_id=%s, databases=%d)", srv.Addr, app.RunID, f.databases)

	err := g.Wait()
	log.Info("vkeydb-server shutting down")
	if err != nil {
		return err
	}
	return nil
}

// runActiveExpireSweeper repeatedly samples every logical database for
// due keys, the background counterpart to the lazy, read-path expiry
// the database package already does on every access. Mirrors the
// teacher's timer-driven ActiveExpire sweep, generalized across
// server.Registry's logical databases instead of one global Store.
func runActiveExpireSweeper(ctx context.Context, app *server.Server) {
	const sampleSize = 20
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for i := 0; i < app.DBs.Count(); i++ {
				db := app.DBs.Get(i)
				if db == nil {
					continue
				}
				removed := db.ActiveExpire(sampleSize)
				for n := 0; n < removed; n++ {
					app.Metrics.ExpiredKeys.Inc()
				}
			}
		}
	}
}
