package commands

import (
	"iter"

	"github.com/andyle182810/checkoutpage"
	"github.com/spf13/cobra"
)

var bookingHeader = []string{"ID", "Status", "Order", "Email", "Amount", "Created"}

func bookingRow(b checkoutpage.Booking) []string {
	return []string{
		b.ID, b.Status, b.OrderID, b.CustomerEmail, formatAmount(b.Amount, b.Currency), formatTime(b.CreatedAt),
	}
}

func newBookingsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookings",
		Aliases: []string{"booking"},
		Short:   "Inspect bookings",
	}

	cmd.AddCommand(newBookingsListCommand(a))

	return cmd
}

func newBookingsListCommand(a *app) *cobra.Command {
	var (
		opts   cursorOptions
		status string
		pageID string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			params := &checkoutpage.BookingListParams{
				Search:       opts.search,
				CursorParams: opts.params(),
				Status:       status,
				PageID:       pageID,
			}

			return listing(a, opts.all,
				func() (*checkoutpage.List[checkoutpage.Booking], error) {
					return client.Bookings.List(cmd.Context(), params)
				},
				func() iter.Seq2[checkoutpage.Booking, error] {
					return client.Bookings.ListAll(cmd.Context(), params)
				},
				bookingHeader, bookingRow, "No bookings found",
			)
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVar(&status, "status", "", "only include this status")
	cmd.Flags().StringVar(&pageID, "page-id", "", "only include this checkout page")

	return cmd
}
