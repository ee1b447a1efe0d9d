package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/manukrishna804/logic-solver-ai/internal/solver"
	"github.com/manukrishna804/logic-solver-ai/internal/validation"
	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "List recorded generations",
	Long: `Prints recorded generations as JSON, newest first. With an id, prints that
record. --jq reshapes the list, for example --jq 'map(.input)'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), configPath(cmd), cmd.ErrOrStderr(), appOptions{History: true})
		if err != nil {
			return err
		}
		defer a.Close()
		if err := a.requireStore(); err != nil {
			return err
		}

		if len(args) == 1 {
			gen, err := a.service.Generation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), gen)
		}

		var q solver.HistoryQuery
		kind, _ := cmd.Flags().GetString("kind")
		source, _ := cmd.Flags().GetString("source")
		q.Kind = schema.Kind(kind)
		q.Source = schema.Source(source)
		q.Limit, _ = cmd.Flags().GetInt("limit")
		q.Offset, _ = cmd.Flags().GetInt("offset")
		q.JQ, _ = cmd.Flags().GetString("jq")
		return runHistory(cmd.Context(), a.service, a.validator, cmd.OutOrStdout(), q)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().String("kind", "", "only this kind: algorithm, flowchart, code")
	historyCmd.Flags().String("source", "", "only this source: ai, fallback")
	historyCmd.Flags().Int("limit", solver.DefaultHistoryLimit, "maximum records")
	historyCmd.Flags().Int("offset", 0, "records to skip")
	historyCmd.Flags().String("jq", "", "jq expression applied to the record list")
}

func runHistory(ctx context.Context, svc *solver.Service, v *validation.JSONSchemaValidator, w io.Writer, q solver.HistoryQuery) error {
	if err := v.ValidateValue(validation.SchemaHistory, q); err != nil {
		return err
	}
	out, err := svc.History(ctx, q)
	if err != nil {
		return err
	}
	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
