package commands

import (
	"fmt"

	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command carrying the global flags
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "textbook-rsa-cli",
		Short: "Textbook RSA key generation and file encryption",
		Long: `textbook-rsa-cli generates textbook RSA key pairs (public exponent 65537) and
encrypts or decrypts files block by block with them.

Textbook RSA applies no padding and is deterministic. It is meant for teaching and
experimentation, not for protecting real data.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log key sizes, key paths and file paths")
	return rootCmd
}

// setupLogger initializes the console logger, at debug level when verbose is set
func setupLogger(verbose bool) (logger.Logger, error) {
	if err := logger.InitLogger(config.NewConsoleLoggerSettings(verbose)); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}
