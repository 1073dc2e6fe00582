package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"swiftAid/internal/components"
	"swiftAid/internal/config"

	"golang.org/x/sync/errgroup"
)

func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		components.SetupLogger("local").Error("load config failed", "err", err)
		return err
	}
	logger := components.SetupLogger(cfg.Env)

	comps, err := components.InitComponents(ctx, cfg, logger)
	if err != nil {
		logger.Error("could not init components", "err", err)
		return err
	}
	defer comps.ShutdownAll()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := comps.HttpServer.Run(gctx)
		logger.Info("http server stopped")
		return err
	})
	g.Go(func() error {
		return comps.MetricsServer.Run(gctx)
	})
	for name, run := range comps.Background {
		name, run := name, run
		g.Go(func() error {
			err := run(gctx)
			logger.Info("background worker stopped", "worker", name)
			return err
		})
	}

	<-gctx.Done()
	logger.Info("shutdown initiated", "reason", context.Cause(gctx))

	if err := g.Wait(); err != nil {
		logger.Error("shutdown with error", "err", err)
		return err
	}
	logger.Info("gracefully shut down")
	return nil
}
