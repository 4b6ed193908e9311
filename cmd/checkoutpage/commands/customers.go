package commands

import (
	"iter"

	"github.com/andyle182810/checkoutpage"
	"github.com/spf13/cobra"
)

var customerHeader = []string{"ID", "Name", "Email", "Created"}

func customerRow(c checkoutpage.Customer) []string {
	return []string{c.ID, c.Name, c.Email, formatTime(c.CreatedAt)}
}

func newCustomersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer"},
		Short:   "Inspect customers",
	}

	cmd.AddCommand(newCustomersGetCommand(a))
	cmd.AddCommand(newCustomersListCommand(a))

	return cmd
}

func newCustomersGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get CUSTOMER_ID",
		Short: "Get customer details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			customer, err := client.Customers.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			c := customer.Data
			rows := [][]string{
				{"ID", c.ID},
				{"Name", c.Name},
				{"Email", c.Email},
				{"Company", c.CompanyName},
				{"Phone", c.Phone},
				{"Created", formatTime(c.CreatedAt)},
				{"Updated", formatTime(c.UpdatedAt)},
			}

			if c.Address != nil {
				rows = append(rows, []string{"City", c.Address.City}, []string{"Country", c.Address.Country})
			}

			return a.render(customer, propertyTable(rows))
		},
	}
}

func newCustomersListCommand(a *app) *cobra.Command {
	var opts cursorOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			params := &checkoutpage.CustomerListParams{Search: opts.search, CursorParams: opts.params()}

			return listing(a, opts.all,
				func() (*checkoutpage.List[checkoutpage.Customer], error) {
					return client.Customers.List(cmd.Context(), params)
				},
				func() iter.Seq2[checkoutpage.Customer, error] {
					return client.Customers.ListAll(cmd.Context(), params)
				},
				customerHeader, customerRow, "No customers found",
			)
		},
	}

	opts.bind(cmd)

	return cmd
}
