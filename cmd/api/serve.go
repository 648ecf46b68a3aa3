package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rentledger/internal/app"
	"rentledger/internal/database"
	"rentledger/internal/modules/events"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(e *env) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, e, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply pending migrations before serving")
	return cmd
}

func serve(ctx context.Context, e *env, migrate bool) error {
	db, err := e.connect()
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if migrate {
		if err := database.MigrateUp(db, e.log); err != nil {
			return err
		}
	}

	a := app.New(e.cfg, db, e.log)
	a.Start()
	defer a.Close()

	if e.cfg.AMQPURL != "" {
		bridge, err := events.DialBridge(e.cfg.AMQPURL, e.cfg.AMQPExchange, e.log)
		if err != nil {
			return fmt.Errorf("connect amqp: %w", err)
		}
		defer bridge.Close()

		a.Invalidator.SetPublisher(bridge)
		go func() {
			if err := bridge.Consume(ctx, a.Invalidator.HandleRemote); err != nil && ctx.Err() == nil {
				e.log.Error("amqp consumer stopped", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:              e.cfg.HTTPAddr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		e.log.Info("http server listening", zap.String("addr", srv.Addr), zap.String("env", e.cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	e.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
