// Package main provides the gradtape CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/born-ml/gradtape/internal/autodiff"
)

const version = "v0.1.0"

var (
	// Global flags
	verbose   bool
	traversal string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gradtape",
	Short: "Reverse-mode automatic differentiation of scalar expressions",
	Long: `gradtape evaluates arithmetic expressions over named variables and
reports the value together with the gradient with respect to every variable.

Expressions support + - * /, unary minus, parentheses and the functions
exp, log and sqrt.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logger != nil {
			return nil
		}
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// versionCmd prints the CLI version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gradtape %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&traversal, "traversal", "", "Backward traversal: topological or recursive")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(batchCmd)
}

// tapeOptions returns the tape options selected by global flags.
func tapeOptions() ([]autodiff.Option, error) {
	t, err := autodiff.ParseTraversal(traversal)
	if err != nil {
		return nil, err
	}
	return []autodiff.Option{autodiff.WithTraversal(t)}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
