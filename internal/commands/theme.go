package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newThemeCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the display theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			if len(args) == 1 {
				switch args[0] {
				case "light":
					a.session.SetDarkMode(cmd.Context(), false)
				case "dark":
					a.session.SetDarkMode(cmd.Context(), true)
				case "toggle":
					a.session.ToggleTheme(cmd.Context())
				}
			}
			theme := "light"
			if a.session.DarkMode() {
				theme = "dark"
			}
			fmt.Fprintf(a.out, "Theme: %s\n", theme)
			return nil
		}),
	}
}
