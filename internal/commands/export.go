package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/export"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/roster"
)

func newExportCommand(opts *globalOptions) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write ledger data as CSV to stdout",
	}
	exportCmd.AddCommand(newExportLedgerCommand(opts), newExportHistoryCommand(opts))
	return exportCmd
}

func newExportLedgerCommand(opts *globalOptions) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Export every tenant's paid months for a year",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			if year == 0 {
				year = a.session.Now().Year()
			}
			return export.WriteLedger(a.out, a.session.Tenants(), year)
		}),
	}

	cmd.Flags().IntVar(&year, "year", 0, "ledger year (default current year)")

	return cmd
}

func newExportHistoryCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "Export a tenant's audit trail",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			t, ok := a.session.Tenant(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", roster.ErrNotFound, args[0])
			}
			return export.WriteHistory(a.out, t)
		}),
	}
}
