package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/manukrishna804/logic-solver-ai/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the solver tools over MCP stdio",
	Long:  `Starts an MCP server on stdin/stdout. Logs are written to stderr so they never corrupt the protocol stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, configPath(cmd), os.Stderr, appOptions{Generator: true, History: true, Pruner: true})
		if err != nil {
			return err
		}
		defer a.Close()

		if a.pruner != nil {
			if err := a.pruner.Start(ctx); err != nil {
				return err
			}
		}

		srv := mcp.NewSolverServer(mcp.SolverServerDeps{
			Service:   a.service,
			Validator: a.validator,
			Version:   version,
			Logger:    a.logger,
		})
		return srv.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
