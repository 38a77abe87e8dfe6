package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpin "freight/internal/adapters/in/http"
	"freight/internal/pkg/tracing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the outbox relay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), opts)
		},
	}
}

func serve(ctx context.Context, opts *rootOptions) error {
	deps, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer deps.close()
	logger := deps.logger

	root, err := NewCompositionRoot(ctx, deps.cfg, deps.db, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := root.Close(context.Background()); closeErr != nil {
			logger.Warn("close clients", zap.Error(closeErr))
		}
	}()

	nrApp, err := tracing.NewApplication(deps.cfg.Tracing, logger)
	if err != nil {
		return err
	}
	if nrApp != nil {
		defer nrApp.Shutdown(shutdownTimeout)
	}

	e, err := httpin.NewRouter(ctx, root.CreateHTTPServer(), httpin.RouterOptions{
		Logger:   logger,
		NewRelic: nrApp,
	})
	if err != nil {
		return err
	}

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	addr := fmt.Sprintf("0.0.0.0:%d", deps.cfg.HTTPPort)

	g.Go(func() error {
		logger.Info("http server listening", zap.String("addr", addr))
		if startErr := e.Start(addr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
