package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/activity"
)

func newActivityCommand(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent changes to the data directory, newest first",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			entries, err := activity.NewLog(a.dir).Recent(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(a.out, "No activity recorded.")
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tOPERATION\tSUBJECT")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.At.Local().Format(time.DateTime), e.Op, orDash(e.Subject))
			}
			return tw.Flush()
		}),
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "show at most this many entries (0 for all)")

	return cmd
}
