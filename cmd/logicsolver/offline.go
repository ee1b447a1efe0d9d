package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/manukrishna804/logic-solver-ai/internal/solver"
	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

var flowchartCmd = &cobra.Command{
	Use:   "flowchart [file]",
	Short: "Render the heuristic flowchart of algorithm text",
	Long: `Reads numbered algorithm text from file (or stdin) and renders its heuristic
flowchart without calling a model. Image formats are written to --output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		a, err := newApp(cmd.Context(), configPath(cmd), cmd.ErrOrStderr(), appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		if output == "" {
			return runFlowchart(cmd.Context(), a.service, cmd.OutOrStdout(), text, format)
		}
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		if err := runFlowchart(cmd.Context(), a.service, f, text, format); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean [file]",
	Short: "Strip commentary and fences from code text",
	Long:  `Reads code text from file (or stdin), keeps only the code and rebuilds indentation for python.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		language, _ := cmd.Flags().GetString("language")

		a, err := newApp(cmd.Context(), configPath(cmd), cmd.ErrOrStderr(), appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()
		return runClean(cmd.Context(), a.service, cmd.OutOrStdout(), text, language)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check Mermaid flowchart text",
	Long:  `Reads Mermaid text from file (or stdin), prints the prepared diagram and exits non-zero when it fails the check.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), configPath(cmd), cmd.ErrOrStderr(), appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()
		return runValidate(cmd.Context(), a.service, cmd.OutOrStdout(), text)
	},
}

func init() {
	rootCmd.AddCommand(flowchartCmd, cleanCmd, validateCmd)

	flowchartCmd.Flags().StringP("format", "f", solver.FormatMermaid, "output format: mermaid, ascii, png, svg")
	flowchartCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
	cleanCmd.Flags().StringP("language", "l", schema.DefaultLanguage, "language of the code")
}

func runFlowchart(ctx context.Context, svc *solver.Service, w io.Writer, text, format string) error {
	out, err := svc.Render(ctx, schema.RenderRequest{Algorithm: text, Format: format})
	if err != nil {
		return err
	}
	if _, err := w.Write(out.Body); err != nil {
		return err
	}
	if out.IsText() {
		_, err = fmt.Fprintln(w)
	}
	return err
}

func runClean(ctx context.Context, svc *solver.Service, w io.Writer, text, language string) error {
	out, err := svc.Clean(ctx, schema.CleanRequest{Code: text, Language: language})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out.Code)
	return err
}

var errInvalidDiagram = errors.New("diagram is not valid")

func runValidate(ctx context.Context, svc *solver.Service, w io.Writer, text string) error {
	out, err := svc.ValidateDiagram(ctx, schema.ValidateDiagramRequest{Diagram: text})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, out.Diagram); err != nil {
		return err
	}
	if !out.Valid {
		return fmt.Errorf("%w: %s", errInvalidDiagram, out.Error)
	}
	return nil
}
