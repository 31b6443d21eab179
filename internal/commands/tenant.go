package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/imageref"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/model"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/paykey"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/roster"
)

func newTenantCommand(opts *globalOptions) *cobra.Command {
	tenantCmd := &cobra.Command{
		Use:   "tenant",
		Short: "Manage tenants and their rent ledgers",
	}
	tenantCmd.AddCommand(
		newTenantListCommand(opts),
		newTenantAddCommand(opts),
		newTenantShowCommand(opts),
		newTenantEditCommand(opts),
		newTenantRemoveCommand(opts),
		newTenantPayCommand(opts),
		newTenantHistoryCommand(opts),
	)
	return tenantCmd
}

// tenantFields are the flags shared by add and edit.
type tenantFields struct {
	name, email, phone, rent, start, leaseEnd, property, notes, photo string
}

func (f *tenantFields) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "full name")
	cmd.Flags().StringVar(&f.email, "email", "", "email address")
	cmd.Flags().StringVar(&f.phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&f.rent, "rent", "", "monthly rent")
	cmd.Flags().StringVar(&f.start, "start", "", "lease start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.leaseEnd, "lease-end", "", "lease end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.property, "property", "", "property ID")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&f.photo, "photo", "", "photo: image file path or URL")
}

func newTenantListCommand(opts *globalOptions) *cobra.Command {
	var search string
	var year int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tenants",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			if year == 0 {
				year = a.session.Now().Year()
			}
			tenants := a.session.Search(search)
			if len(tenants) == 0 {
				fmt.Fprintln(a.out, "No tenants found.")
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "ID\tNAME\tRENT\tPAID %d\tPHONE\n", year)
			for _, t := range tenants {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d/12\t%s\n",
					t.ID, t.Name, money(t.RentAmount), paidMonths(t, year), orDash(t.Phone))
			}
			return tw.Flush()
		}),
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by name, email or phone")
	cmd.Flags().IntVar(&year, "year", 0, "year for the paid-months column (default current year)")

	return cmd
}

func paidMonths(t model.Tenant, year int) int {
	n := 0
	for _, m := range paykey.Months {
		if t.Payments.IsPaid(paykey.Format(year, m)) {
			n++
		}
	}
	return n
}

func newTenantAddCommand(opts *globalOptions) *cobra.Command {
	var f tenantFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a tenant",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			rent, err := roster.ParseRent(f.rent)
			if err != nil {
				return err
			}
			photo, err := imageref.Resolve(f.photo)
			if err != nil {
				return fmt.Errorf("loading photo: %w", err)
			}

			t, err := a.session.AddTenant(cmd.Context(), roster.NewTenantParams{
				Name:       f.name,
				Email:      f.email,
				Phone:      f.phone,
				RentAmount: rent,
				StartDate:  f.start,
				LeaseEnd:   f.leaseEnd,
				PhotoURL:   photo,
				PropertyID: f.property,
				Notes:      f.notes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Added tenant %s (%s)\n", t.ID, t.Name)
			return nil
		}),
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTenantEditCommand(opts *globalOptions) *cobra.Command {
	var f tenantFields

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a tenant's details",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			changed := func(name string, v string) *string {
				if cmd.Flags().Changed(name) {
					return &v
				}
				return nil
			}
			e := roster.TenantEdit{
				Name:       changed("name", f.name),
				Email:      changed("email", f.email),
				Phone:      changed("phone", f.phone),
				StartDate:  changed("start", f.start),
				LeaseEnd:   changed("lease-end", f.leaseEnd),
				PropertyID: changed("property", f.property),
				Notes:      changed("notes", f.notes),
			}
			if cmd.Flags().Changed("rent") {
				rent, err := roster.ParseRent(f.rent)
				if err != nil {
					return err
				}
				e.RentAmount = &rent
			}
			if cmd.Flags().Changed("photo") {
				photo, err := imageref.Resolve(f.photo)
				if err != nil {
					return fmt.Errorf("loading photo: %w", err)
				}
				e.PhotoURL = &photo
			}

			t, err := a.session.EditTenant(cmd.Context(), args[0], e)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated tenant %s (%s)\n", t.ID, t.Name)
			return nil
		}),
	}

	f.register(cmd)

	return cmd
}

func newTenantRemoveCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a tenant and their payment history",
		Args:    cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			if !a.session.RemoveTenant(cmd.Context(), args[0]) {
				return fmt.Errorf("%w: %s", roster.ErrNotFound, args[0])
			}
			fmt.Fprintf(a.out, "Removed tenant %s\n", args[0])
			return nil
		}),
	}
}

// keyFlags resolves --year/--month, defaulting to the current month.
type keyFlags struct {
	year  int
	month string
}

func (k *keyFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&k.year, "year", 0, "ledger year (default current year)")
	cmd.Flags().StringVar(&k.month, "month", "", "ledger month, Jan..Dec (default current month)")
}

func (k *keyFlags) key(a *app) (paykey.Key, error) {
	cur := paykey.Of(a.session.Now())
	if k.year != 0 {
		cur.Year = k.year
	}
	if k.month != "" {
		m, err := paykey.ParseMonth(k.month)
		if err != nil {
			return paykey.Key{}, err
		}
		cur.Month = m
	}
	return paykey.Parse(cur.String())
}

func newTenantPayCommand(opts *globalOptions) *cobra.Command {
	var k keyFlags

	cmd := &cobra.Command{
		Use:   "pay <id>",
		Short: "Toggle a month between paid and unpaid",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			key, err := k.key(a)
			if err != nil {
				return err
			}
			if err := a.session.OpenTenant(args[0]); err != nil {
				return err
			}
			if _, err := a.session.TogglePayment(cmd.Context(), args[0], key); err != nil {
				return err
			}

			t, _ := a.session.Selected()
			head, _ := t.History.Head()
			fmt.Fprintf(a.out, "%s: %s\n", t.Name, head.Action)
			return writeLedgerGrid(a, t, key.Year)
		}),
	}

	k.register(cmd)

	return cmd
}

func newTenantShowCommand(opts *globalOptions) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a tenant's details, ledger and recent activity",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.session.OpenTenant(args[0]); err != nil {
				return err
			}
			t, _ := a.session.Selected()
			if year == 0 {
				year = a.session.Now().Year()
			}
			return runTenantShow(a, t, year)
		}),
	}

	cmd.Flags().IntVar(&year, "year", 0, "ledger year (default current year)")

	return cmd
}

func propertyName(a *app, id string) string {
	if id == "" {
		return "-"
	}
	for _, p := range a.session.Properties() {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}

func runTenantShow(a *app, t model.Tenant, year int) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", t.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", t.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", orDash(t.Email))
	fmt.Fprintf(tw, "Phone:\t%s\n", orDash(t.Phone))
	fmt.Fprintf(tw, "Rent:\t%s / month\n", money(t.RentAmount))
	fmt.Fprintf(tw, "Lease:\t%s to %s\n", orDash(t.StartDate), orDash(t.LeaseEnd))
	fmt.Fprintf(tw, "Property:\t%s\n", propertyName(a, t.PropertyID))
	if t.Notes != "" {
		fmt.Fprintf(tw, "Notes:\t%s\n", t.Notes)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(a.out)
	if err := writeLedgerGrid(a, t, year); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "\nRecent activity")
	return writeHistory(a, t.History, 5)
}

// writeLedgerGrid prints the twelve months of year with their paid state.
func writeLedgerGrid(a *app, t model.Tenant, year int) error {
	cells := make([]string, 0, len(paykey.Months))
	for _, m := range paykey.Months {
		mark := " "
		if t.Payments.IsPaid(paykey.Format(year, m)) {
			mark = "x"
		}
		cells = append(cells, fmt.Sprintf("%s[%s]", m, mark))
	}
	fmt.Fprintf(a.out, "Ledger %d\n", year)
	fmt.Fprintln(a.out, strings.Join(cells[:6], " "))
	fmt.Fprintln(a.out, strings.Join(cells[6:], " "))
	return nil
}

func writeHistory(a *app, history model.AuditTrail, limit int) error {
	if len(history) == 0 {
		fmt.Fprintln(a.out, "No activity recorded.")
		return nil
	}
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, e := range history {
		fmt.Fprintf(tw, "%s\t%s\n", e.Display(), e.Action)
	}
	return tw.Flush()
}

func newTenantHistoryCommand(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <id>",
		Short: "Show a tenant's audit trail, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			t, ok := a.session.Tenant(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", roster.ErrNotFound, args[0])
			}
			return writeHistory(a, t.History, limit)
		}),
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many entries (0 for all)")

	return cmd
}
