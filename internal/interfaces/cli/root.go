// Package cli implements the maintctl administrative command tree.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions holds the global flags shared by every subcommand.
type rootOptions struct {
	configPath string
}

// NewRootCommand assembles the maintctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "maintctl",
		Short: "Administrative CLI for the preventive maintenance scheduling engine",
		Long: `maintctl drives the PM scheduling engine directly against its backends:
trigger scheduling runs, escalate overdue work orders, inspect compliance,
and manage the database schema.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to the YAML config file (environment only when omitted)")

	root.AddCommand(
		newGenerateCommand(opts),
		newEscalateCommand(opts),
		newComplianceCommand(opts),
		newMigrateCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command tree.
func Execute() error {
	return NewRootCommand().Execute()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "maintctl %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
		},
	}
}

// printJSON renders a result as indented JSON on the command's stdout.
func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
