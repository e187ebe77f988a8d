// Package cli implements schedulectl, a tool that computes and reconciles
// credit schedules from JSON files and checks a running service's health.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the schedulectl command tree writing results to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "schedulectl",
		Short: "Compute and reconcile credit repayment schedules offline",
		Long: `schedulectl runs the schedule engine on credit records stored as JSON
files. Nothing is read from or written to the service database. The health
command queries a running service over gRPC.`,
		SilenceUsage: true,
	}
	root.SetOut(out)

	root.AddCommand(newComputeCommand())
	root.AddCommand(newUnprocessedCommand())
	root.AddCommand(newHealthCommand())
	return root
}

// Execute runs schedulectl against os.Args.
func Execute() error {
	return NewRootCommand(os.Stdout).Execute()
}

func readJSONFile(path string, v any) error {
	if path == "" {
		return fmt.Errorf("input file is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
