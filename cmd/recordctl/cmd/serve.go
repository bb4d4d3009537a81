/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssargent/brokercore/pkg/api"
	"github.com/ssargent/brokercore/pkg/logging"
)

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the record encoding API server",
		Long: `Start the HTTP API that encodes records on request.

Endpoints:
  GET  /api/v1/health
  POST /api/v1/records/encode?format=hex|base64|raw
  POST /api/v1/records/size
  GET  /metrics
  GET  /swagger/index.html

Examples:
  recordctl serve
  recordctl serve --port 9000 --bind 0.0.0.0 --api-key my-api-key`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd)

			serverConfig := api.ServerConfig{
				Port:          cfg.Port,
				Bind:          cfg.Bind,
				APIKey:        cfg.Security.APIKey,
				DefaultFormat: cfg.Output.Format,
			}
			if cmd.Flags().Changed("port") {
				serverConfig.Port, _ = cmd.Flags().GetInt("port")
			}
			if cmd.Flags().Changed("bind") {
				serverConfig.Bind, _ = cmd.Flags().GetString("bind")
			}
			if cmd.Flags().Changed("api-key") {
				serverConfig.APIKey, _ = cmd.Flags().GetString("api-key")
			}

			// The CLI logger is for terminals; the server logs JSON.
			logger, err := logging.New(cfg.Logging.Level)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if serverConfig.APIKey == "" {
				logger.Warn("API key not set, requests are not authenticated")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			starter := getContainer().GetServerFactory().CreateServerStarter()
			if err := starter.StartServer(ctx, serverConfig, logger); err != nil {
				logger.Error("server stopped", zap.Error(err))
				return err
			}
			return nil
		},
	}

	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().String("api-key", "", "API key required on /api/v1 requests")

	return serveCmd
}
