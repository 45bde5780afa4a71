package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/xmzhu2/yui3"
)

var (
	verbose   bool
	storeRoot string
	format    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "modelctl",
	Short: "Inspect and mutate a directory-backed model store",
	Long: `modelctl operates on a store directory holding one file per model.
Models are observable attribute records; modelctl reads and writes them
through the same validated set path the library uses.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// openStore builds a store over the configured root directory.
func openStore(extra ...yui3.Option) (*yui3.Store, error) {
	opts := append([]yui3.Option{
		yui3.WithFormat(format),
		yui3.WithLogger(slog.Default()),
	}, extra...)
	return yui3.New(storeRoot, opts...)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storeRoot, "root", ".", "Store directory")
	rootCmd.PersistentFlags().StringVar(&format, "format", ".json", "Model file format (.json or .yaml)")
}
