package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xmzhu2/yui3"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of modelctl",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("modelctl version %s\n", strings.TrimSpace(yui3.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
