// Command hippocampusd is the HTTP daemon: it loads configuration, opens
// the SQLite store (running migrations), and serves the HTTP API of
// spec §6 until SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Talia-12/hippocampus/internal/config"
	"github.com/Talia-12/hippocampus/internal/httpapi"
	"github.com/Talia-12/hippocampus/internal/obslog"
	"github.com/Talia-12/hippocampus/internal/storage/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "hippocampusd:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		dbPath  = flag.String("db", "", "override the configured database file path")
		addr    = flag.String("addr", "", "listen address, host:port (default :3000, :3001 with -debug)")
		debug   = flag.Bool("debug", os.Getenv("HIPPOCAMPUS_DEBUG") != "", "enable debug logging")
		verbose = flag.Bool("verbose", false, "alias for -debug")
	)
	flag.Parse()

	obslog.SetVerbose(*debug || *verbose)

	var dbPathUpdate *string
	if *dbPath != "" {
		dbPathUpdate = dbPath
	}
	cfg, err := config.Load(config.Update{DatabaseURL: dbPathUpdate})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	obslog.Debugf("resolved config: %+v", cfg)

	listenAddr := *addr
	if listenAddr == "" {
		port := "3000"
		if obslog.Enabled() {
			port = "3001"
		}
		listenAddr = net.JoinHostPort("", port)
	}

	store, err := sqlite.New(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := httpapi.New(store, listenAddr)
	obslog.PrintNormal("hippocampusd listening on %s (db: %s)\n", listenAddr, cfg.DatabaseURL)

	if err := server.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
