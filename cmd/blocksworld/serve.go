package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anthropics/blocksworld-engine/internal/engine"
	"github.com/anthropics/blocksworld-engine/internal/ipc"
	"github.com/anthropics/blocksworld-engine/internal/store"
	"github.com/anthropics/blocksworld-engine/internal/world"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := world.NewLibrary()
			if err != nil {
				return err
			}

			db, err := store.NewDB(a.cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			handler := &ipc.Handler{
				Engine:      engine.New(a.cfg.MaxStates),
				Worlds:      lib,
				DB:          db,
				SessionRepo: &store.SessionRepo{},
				Logger:      a.logger,
			}
			srv := ipc.NewServer(handler, a.cfg.ListenAddr)

			// Graceful shutdown on interrupt.
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			go func() {
				<-sigCh
				a.logger.Info("shutting down")

				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					a.logger.Warn("server shutdown", zap.Error(err))
				}
			}()

			a.logger.Info("blocksworld engine listening", zap.String("addr", a.cfg.ListenAddr))

			if err := srv.Start(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
}
