package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/wordflash/internal/api"
	"github.com/vytor/wordflash/internal/config"
	"github.com/vytor/wordflash/internal/deck"
	"github.com/vytor/wordflash/internal/dictionary"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/session"
	"github.com/vytor/wordflash/internal/store"
	"github.com/vytor/wordflash/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("WordFlash Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("store_path=%s", cfg.StorePath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("autocomplete=%t", cfg.Autocomplete)
	log.Debug("dictionary_timeout=%ds", cfg.DictionaryTimeout)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)

	// Open the card store
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		log.Error("failed to open store: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing store")
		st.Close()
	}()

	// Load the persisted collection and select the first due card
	sess := session.New(st)
	if err := sess.Load(context.Background()); err != nil {
		log.Error("failed to load collection: %v", err)
		os.Exit(1)
	}

	// Dictionary lookup port
	dictOpts := []dictionary.Option{
		dictionary.WithTimeout(time.Duration(cfg.DictionaryTimeout) * time.Second),
	}
	if cfg.DictionaryBaseURL != "" {
		dictOpts = append(dictOpts, dictionary.WithBaseURL(cfg.DictionaryBaseURL))
	}
	dict := dictionary.New(dictOpts...)
	importer := deck.NewImporter(dict, cfg.Autocomplete)

	// Background import pool
	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)

	srv := &api.Server{
		Session:        sess,
		Importer:       importer,
		ImportPool:     importPool,
		AllowedOrigins: cfg.AllowedOrigins,
	}

	ctx, cancel := context.WithCancel(context.Background())
	importPool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping import pool")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	importPool.Stop()

	log.Info("===========================================")
	log.Info("WordFlash Server Stopped")
	log.Info("===========================================")
}
