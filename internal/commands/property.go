package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/assist"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/imageref"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/model"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/roster"
)

func newPropertyCommand(opts *globalOptions) *cobra.Command {
	propertyCmd := &cobra.Command{
		Use:   "property",
		Short: "Manage properties",
	}
	propertyCmd.AddCommand(newPropertyListCommand(opts), newPropertyAddCommand(opts))
	return propertyCmd
}

func newPropertyListCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List properties",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			props := a.session.Properties()
			if len(props) == 0 {
				fmt.Fprintln(a.out, "No properties found.")
				return nil
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tRENT\tBEDS\tBATHS\tADDRESS")
			for _, p := range props {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%g\t%s\n",
					p.ID, p.Name, p.Status, money(p.RentAmount), p.Bedrooms, p.Bathrooms, p.Address)
			}
			return tw.Flush()
		}),
	}
}

func newPropertyAddCommand(opts *globalOptions) *cobra.Command {
	var (
		name, address, rent, status, description string
		kind, features, image                    string
		bedrooms                                 int
		bathrooms                                float64
		generate                                 bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a property",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			amount, err := roster.ParseRent(rent)
			if err != nil {
				return err
			}
			var st model.PropertyStatus
			if status != "" {
				if st, err = model.ParsePropertyStatus(status); err != nil {
					return err
				}
			}
			imageURL, err := imageref.Resolve(image)
			if err != nil {
				return fmt.Errorf("loading image: %w", err)
			}

			if generate && description == "" {
				description = a.assistant(cmd.Context()).PropertyDescription(cmd.Context(), assist.PropertyRequest{
					Name:      name,
					Kind:      kind,
					Bedrooms:  bedrooms,
					Bathrooms: bathrooms,
					Features:  features,
				})
			}

			p, err := a.session.AddProperty(cmd.Context(), roster.NewPropertyParams{
				Name:        name,
				Address:     address,
				Bedrooms:    bedrooms,
				Bathrooms:   bathrooms,
				Description: description,
				ImageURL:    imageURL,
				RentAmount:  amount,
				Status:      st,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Added property %s (%s)\n", p.ID, p.Name)
			if p.Description != "" {
				fmt.Fprintf(a.out, "\n%s\n", p.Description)
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "property name")
	cmd.Flags().StringVar(&address, "address", "", "street address")
	cmd.Flags().StringVar(&rent, "rent", "", "monthly rent")
	cmd.Flags().StringVar(&status, "status", "", "Occupied, Vacant or Maintenance (default Vacant)")
	cmd.Flags().StringVar(&description, "description", "", "listing description")
	cmd.Flags().IntVar(&bedrooms, "bedrooms", 0, "number of bedrooms")
	cmd.Flags().Float64Var(&bathrooms, "bathrooms", 0, "number of bathrooms, e.g. 1.5")
	cmd.Flags().StringVar(&image, "image", "", "image file path or URL")
	cmd.Flags().BoolVar(&generate, "generate", false, "draft the description with the text-generation model")
	cmd.Flags().StringVar(&kind, "type", "Apartment", "property type used when generating a description")
	cmd.Flags().StringVar(&features, "features", "", "key features used when generating a description")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("address")

	return cmd
}
