package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/assist"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/roster"
)

func newMessageCommand(opts *globalOptions) *cobra.Command {
	var topic string
	var tone string

	cmd := &cobra.Command{
		Use:   "message <tenant-id>",
		Short: "Draft a short message to a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			t, ok := a.session.Tenant(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", roster.ErrNotFound, args[0])
			}
			parsed, err := assist.ParseTone(tone)
			if err != nil {
				return err
			}
			msg := a.assistant(cmd.Context()).TenantMessage(cmd.Context(), t.Name, topic, parsed)
			fmt.Fprintln(a.out, msg)
			return nil
		}),
	}

	cmd.Flags().StringVar(&topic, "topic", "", "what the message is about, e.g. \"Rent reminder\"")
	cmd.Flags().StringVar(&tone, "tone", string(assist.Professional), "Professional, Friendly or Firm")
	_ = cmd.MarkFlagRequired("topic")

	return cmd
}
