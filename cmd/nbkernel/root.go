package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/nbkernel"
	"github.com/hupe1980/nbkernel/cmd/nbkernel/config"
	"github.com/hupe1980/nbkernel/logging"
)

var rootCmd = &cobra.Command{
	Use:   "nbkernel",
	Short: "nbkernel runs and manages Go notebooks",
	Long: `nbkernel is a notebook execution engine for Go: it runs .ipynb notebooks
against an embedded interpreter, keeps variables alive across cells, and
exports notebooks to Go source or Markdown.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", "", "Directory containing saved notebooks (overrides config)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// newKernel builds the façade from the config file and persistent flags.
func newKernel(cmd *cobra.Command) *nbkernel.NBKernel {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not read config: %v\n", err)
	}
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.NotebookDir = dir
	}

	level := parseLevel(cfg.LogLevel)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = logging.LogLevelDebug
	}
	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    cfg.LogFormat,
		Output:    os.Stderr,
		Component: "cli",
	})

	return nbkernel.New(func(o *nbkernel.Options) {
		o.NotebookDir = cfg.NotebookDir
		o.ExecutionTimeout = time.Duration(cfg.ExecutionTimeoutSeconds) * time.Second
		o.Logger = logger
	})
}

func parseLevel(s string) logging.LogLevel {
	switch s {
	case "debug":
		return logging.LogLevelDebug
	case "info":
		return logging.LogLevelInfo
	case "error":
		return logging.LogLevelError
	default:
		return logging.LogLevelWarn
	}
}
