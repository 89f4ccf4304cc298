// Command aveenis-server exposes the popularity table and per-ticker
// series as a JSON API for browser clients.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"aveenis/internal/cache"
	"aveenis/internal/config"
	"aveenis/internal/httpapi"
	"aveenis/internal/stocks"
	"aveenis/internal/supabase"
	"aveenis/internal/util"
	"aveenis/internal/view"
)

func main() {
	cfgPath := flag.String("config", "config/aveenis.yaml", "path to config file")
	logPath := flag.String("log", "", "log file path (stdout if empty)")
	extended := flag.Bool("extended", false, "serve price and market cap columns")
	flag.Parse()

	// Local .env files are optional; real deployments set the env directly.
	_ = godotenv.Load()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Supabase.URL == "" || cfg.Supabase.Key == "" {
		fmt.Fprintln(os.Stderr, "SUPABASE_URL and SUPABASE_KEY must be set")
		os.Exit(1)
	}

	var logW io.Writer = os.Stdout
	if *logPath != "" {
		logW = &lumberjack.Logger{
			Filename:   *logPath,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     28, // days
		}
	}
	log := util.NewLogger(logW, cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(log)

	client := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.Key, cfg.Supabase.Table)
	columns := stocks.DefaultColumns
	tableCols := view.DefaultColumns()
	if *extended {
		columns = stocks.ExtendedColumns
		tableCols = view.ExtendedColumns()
	}
	svc := stocks.NewService(client, cache.New(), columns, log)
	api := httpapi.NewServer(svc, tableCols, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("aveenis-server listening", "addr", addr, "table", cfg.Supabase.Table)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("shutdown", "error", err)
		}
	}
}
