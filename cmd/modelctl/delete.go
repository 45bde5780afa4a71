package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xmzhu2/yui3"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a model from the store",
	Long:  `Delete permanently removes a model's file from the store directory.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore(yui3.WithMustExist(true))
		if err != nil {
			fatal("Failed to open store", err)
		}

		ctx := context.Background()
		m, err := store.Load(ctx, args[0])
		if err != nil {
			fatal("Failed to load model", err)
		}
		if err := store.Delete(ctx, m); err != nil {
			fatal("Failed to delete model", err)
		}

		fmt.Printf("Model deleted: %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
