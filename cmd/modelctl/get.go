package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xmzhu2/yui3"
)

var getAttr string

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Read a stored model",
	Long:  `Read a model by its id. Outputs the full attribute mapping as JSON, or a single attribute with --attr.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore(yui3.WithMustExist(true))
		if err != nil {
			fatal("Failed to open store", err)
		}

		m, err := store.Load(context.Background(), args[0])
		if err != nil {
			fatal("Failed to load model", err)
		}

		if getAttr != "" {
			fmt.Println(m.Get(getAttr))
			return
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(m.ToJSON()); err != nil {
			fatal("Failed to encode JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().StringVar(&getAttr, "attr", "", "Print a single attribute instead of the full mapping")
}
