package cli

import (
	"github.com/spf13/cobra"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/app"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

func newGenerateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <scope-id>",
		Short: "Run one scheduling batch for a scope",
		Long: `Synthesizes and persists the preventive work orders that are due or
overdue for the scope, emitting a pm_due notification per created order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := app.New(ctx, opts.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			created, err := a.Engine.GenerateWorkOrders(ctx, common.ScopeID(args[0]))
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]interface{}{
				"scope_id":    args[0],
				"created":     len(created),
				"work_orders": created,
			})
		},
	}
}

func newEscalateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "escalate <scope-id>",
		Short: "Run one escalation pass over a scope's overdue work orders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := app.New(ctx, opts.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			escalated, err := a.Monitor.EscalateOverdue(ctx, common.ScopeID(args[0]))
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]interface{}{
				"scope_id":    args[0],
				"escalated":   len(escalated),
				"work_orders": escalated,
			})
		},
	}
}

func newComplianceCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compliance <equipment-id>",
		Short: "Print the compliance summary for one asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := app.New(ctx, opts.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			record, err := a.Compliance.GetComplianceSummary(ctx, common.ID(args[0]))
			if err != nil {
				return err
			}
			return printJSON(cmd, record)
		},
	}
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.New(cmd.Context(), opts.configPath)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Migrate()
		},
	}
}
