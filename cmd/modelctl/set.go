package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xmzhu2/yui3"
)

var setCreate bool

// setCmd writes key=value pairs through the validated set path and saves.
var setCmd = &cobra.Command{
	Use:   "set [id] [key=value ...]",
	Short: "Write attributes on a model",
	Long: `Set attributes on a stored model and save it. Values are parsed as
JSON when possible, otherwise taken as strings. With --create the model is
created when the id does not exist yet.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore(yui3.WithAutoInit(setCreate), yui3.WithMustExist(!setCreate))
		if err != nil {
			fatal("Failed to open store", err)
		}

		id := args[0]
		attrs, err := parsePairs(args[1:])
		if err != nil {
			fatal("Invalid attribute argument", err)
		}

		ctx := context.Background()
		m, err := store.Load(ctx, id)
		if err != nil {
			if !setCreate {
				fatal("Failed to load model", err)
			}
			m = store.NewModel()
			attrs["id"] = id
		}

		var rejection error
		m.OnError(func(e yui3.ErrorEvent) { rejection = e.Err })

		if !m.SetAttrs(attrs) {
			fatal("Validation rejected the write", rejection)
		}
		if err := store.Save(ctx, m); err != nil {
			fatal("Failed to save model", err)
		}

		fmt.Printf("Model '%s' saved.\n", m.ID())
	},
}

// parsePairs turns key=value arguments into an attribute mapping.
func parsePairs(pairs []string) (map[string]any, error) {
	attrs := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.New("expected key=value, got " + pair)
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		attrs[key] = value
	}
	return attrs, nil
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().BoolVar(&setCreate, "create", false, "Create the model when it does not exist")
}
