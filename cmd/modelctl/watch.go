package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xmzhu2/yui3"
)

var watchCmd = &cobra.Command{
	Use:   "watch [pattern]",
	Short: "Stream store changes",
	Long: `Watch the store directory and print a line for every external
create, modify, or delete, optionally filtered by a glob pattern on the
model id. Runs until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore(yui3.WithMustExist(true))
		if err != nil {
			fatal("Failed to open store", err)
		}

		pattern := ""
		if len(args) == 1 {
			pattern = args[0]
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := store.Watch(ctx, pattern)
		if err != nil {
			fatal("Failed to start watcher", err)
		}

		fmt.Fprintln(os.Stderr, "Watching... (Ctrl+C to stop)")
		for e := range events {
			fmt.Printf("%s\t%s\t%s\n", time.Unix(e.Timestamp, 0).Format("15:04:05"), e.Type, e.ID)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
