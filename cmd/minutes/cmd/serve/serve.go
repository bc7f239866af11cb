package serve

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"meeting-minutes/cmd/minutes/cmd/bootstrap"
	"meeting-minutes/internal/app"
)

var (
	port            string
	shutdownTimeout time.Duration
)

func init() {
	Cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides config and PORT)")
	Cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "how long in-flight requests may run after a stop signal")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the upload API server",
	Long: `Start the upload API server

- POST /upload accepts a recording and returns the meeting minutes
- GET /api/v1/jobs lists recent jobs, GET /metrics exposes pipeline metrics
- SIGINT or SIGTERM drains in-flight requests before exiting`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := bootstrap.Load()
		if err != nil {
			return err
		}
		defer env.Close()

		if port != "" {
			env.Config.Server.Port = port
		}

		srv, cleanup, err := app.InitializeServer(env.Config, env.Keys, env.Logger)
		if err != nil {
			return err
		}
		defer cleanup()

		// cancelled by the root command on SIGINT/SIGTERM
		ctx := cmd.Context()

		errCh, err := srv.Start()
		if err != nil {
			return err
		}

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			env.Logger.Info("Received shutdown signal")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			env.Logger.Error("Graceful shutdown failed", zap.Error(err))
			return err
		}
		return nil
	},
}
