package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/refgenome-id/refgenome-id/internal/httpapi"
	"github.com/refgenome-id/refgenome-id/internal/refmatch"
)

func newServeCmd() *cobra.Command {
	var (
		serverPort int
		serverHost string
		enableCORS bool
		devMode    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the matching engine over HTTP",
		Long: `Starts an HTTP server exposing the active catalog and the matcher:
POST /api/v1/identify, GET /api/v1/catalog, GET /api/v1/catalog/{id},
and GET /healthz.`,
		Example: `  refgenome-id serve
  refgenome-id serve --port 3000 --cors
  refgenome-id serve --catalog mycatalog.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(serverHost, serverPort, enableCORS, devMode)
		},
	}

	cmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Port to listen on")
	cmd.Flags().StringVar(&serverHost, "host", "0.0.0.0", "Host to bind to")
	cmd.Flags().BoolVar(&enableCORS, "cors", false, "Enable permissive CORS for browser clients")
	cmd.Flags().BoolVar(&devMode, "dev", false, "Enable development-mode logging (debug level, console encoding)")

	return cmd
}

func runServe(host string, port int, enableCORS, devMode bool) error {
	refs, err := loadCatalog()
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	idx := refmatch.NewCatalogIndex(refs)

	matchCfg, err := loadMatchingConfig()
	if err != nil {
		return fmt.Errorf("invalid matching config: %w", err)
	}

	logger, err := newServerLogger(devMode)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	srv := httpapi.NewServer(httpapi.Config{
		Host:       host,
		Port:       port,
		EnableCORS: enableCORS,
	}, idx, matchCfg, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("host", host),
			zap.Int("port", port),
			zap.Int("references", len(refs)),
			zap.Bool("cors", enableCORS),
		)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-sigChan:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	}
}

func newServerLogger(devMode bool) (*zap.Logger, error) {
	if devMode {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
