package main

import (
	"fmt"
	"os"

	"github.com/pritdesai016/theoquity-journal/internal/cli"
	"github.com/pritdesai016/theoquity-journal/internal/config"
	"github.com/pritdesai016/theoquity-journal/internal/logging"
)

func main() {
	configDir := os.Getenv("THEOQUITY_CONFIG")

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logging)

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
