package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/stats"
)

func newDashboardCommand(opts *globalOptions) *cobra.Command {
	var year int
	var month string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show revenue figures for a year or a single month",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			if year == 0 {
				year = a.session.Now().Year()
			}
			f, err := stats.NewFilter(year, month)
			if err != nil {
				return err
			}
			return runDashboard(a, f)
		}),
	}

	cmd.Flags().IntVar(&year, "year", 0, "year to report (default current year)")
	cmd.Flags().StringVar(&month, "month", stats.AllMonths, "month to count as collected: Jan..Dec or All")

	return cmd
}

func runDashboard(a *app, f stats.Filter) error {
	s := a.session.Stats(f)

	theme := "light"
	if a.session.DarkMode() {
		theme = "dark"
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Period:\t%s\n", f.Label())
	fmt.Fprintf(tw, "Active tenants:\t%d\n", s.ActiveTenants)
	fmt.Fprintf(tw, "Total revenue (annual):\t%s\n", money(s.TotalRevenue))
	fmt.Fprintf(tw, "Collected:\t%s\n", money(s.CollectedRevenue))
	fmt.Fprintf(tw, "Outstanding:\t%s\n", money(s.TotalRevenue.Sub(s.CollectedRevenue)))
	fmt.Fprintf(tw, "Theme:\t%s\n", theme)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nMonthly income %d\n", f.Year)
	rows := stats.Breakdown(s, f)
	peak := decimal.Zero
	for _, r := range rows {
		peak = decimal.Max(peak, r.Amount)
	}

	tw = tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, r := range rows {
		marker := " "
		if r.Active && !f.All() {
			marker = ">"
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%s\n", marker, r.Month, money(r.Amount), bar(r.Amount, peak, 30))
	}
	return tw.Flush()
}
