package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/schematic"
	"github.com/aretw0/schematic/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "schematic",
	Short: "Schematic validates plain data against declared entity kinds",
	Long: `Schematic loads entity kinds from YAML or JSON declarations and validates
field values against them: defaults are merged, nested entities are built and
errors are reported per field.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands). Environment variables
	// provide the defaults so the server commands can be configured without flags.
	rootCmd.PersistentFlags().String("dir", envOr("SCHEMATIC_DIR", "."), "Directory containing kind declarations [SCHEMATIC_DIR]")
	rootCmd.PersistentFlags().String("log-level", envOr("SCHEMATIC_LOG_LEVEL", "info"), "Log level: debug, info, warn or error [SCHEMATIC_LOG_LEVEL]")
	rootCmd.PersistentFlags().String("log-format", envOr("SCHEMATIC_LOG_FORMAT", "text"), "Log format: text or json [SCHEMATIC_LOG_FORMAT]")
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	levelName, _ := cmd.Flags().GetString("log-level")
	formatName, _ := cmd.Flags().GetString("log-format")

	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}
	return logging.NewWriter(cmd.ErrOrStderr(), level, format), nil
}

// loadCatalog builds the logger and the catalog every command works with.
func loadCatalog(cmd *cobra.Command, opts ...schematic.Option) (*schematic.Catalog, *slog.Logger, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, nil, err
	}
	dir, _ := cmd.Flags().GetString("dir")

	opts = append([]schematic.Option{schematic.WithLogger(logger)}, opts...)
	catalog, err := schematic.New(dir, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing schematic: %w", err)
	}
	return catalog, logger, nil
}
