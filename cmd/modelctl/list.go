package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xmzhu2/yui3"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list [pattern]",
	Short: "List stored model ids",
	Long:  `List the ids of stored models, optionally filtered by a glob pattern ('*' matches everything).`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore(yui3.WithMustExist(true))
		if err != nil {
			fatal("Failed to open store", err)
		}

		pattern := ""
		if len(args) == 1 {
			pattern = args[0]
		}

		ids, err := store.List(context.Background(), pattern)
		if err != nil {
			fatal("Failed to list models", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(ids); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, id := range ids {
			fmt.Println(id)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
