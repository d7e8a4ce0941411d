package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	handlers "github.com/waste3d/memorymatch/internal/transport/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the on-device engine behind the UI-facing HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Local store
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	// 2. Engine and remote mirror
	engine, pusher, closeMirror, err := newEngine(cfg, store, log)
	if err != nil {
		return err
	}
	defer closeMirror()

	// 3. Restore from the mirror without holding up the API
	go func() {
		if engine.Restore(ctx) {
			log.Info("local profile replaced by mirror copy")
		}
	}()

	// 4. HTTP API
	router := handlers.NewRouter(handlers.NewGameHandler(engine, log), cfg.Origins())
	srv := &http.Server{Addr: cfg.HTTPPort, Handler: router}

	errCh := make(chan error, 1)
	go func() {
		log.Info("memorymatch API running", zap.String("addr", cfg.HTTPPort), zap.String("client_id", engine.ClientID()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	pusher.Wait()
	return nil
}
