package main

import (
	"fmt"
	"os"

	"github.com/massiliadrive/backend/internal/config"
	"github.com/massiliadrive/backend/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "massiliadrive",
	Short: "MassiliaDrive backend - contact and booking form service",
	Long: `MassiliaDrive backend receives contact and booking requests from the
public site and forwards them by email to the operator, with a confirmation
sent back to the requester.

Configuration is read from MASSILIA_* environment variables (and .env).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, verifyCmd, previewCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads the config and builds the application logger.
func bootstrap() (*config.Config, *logger.LoggerService, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, loggerService, log, nil
}
