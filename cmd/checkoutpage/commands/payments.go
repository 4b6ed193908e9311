package commands

import (
	"iter"

	"github.com/andyle182810/checkoutpage"
	"github.com/spf13/cobra"
)

var chargeHeader = []string{"ID", "Status", "Amount", "Page", "Created"}

func paymentRow(p checkoutpage.Payment) []string {
	return []string{p.ID, p.Status, formatAmount(p.Amount, p.Currency), p.PageID, formatTime(p.CreatedAt)}
}

func subscriptionRow(s checkoutpage.Subscription) []string {
	return []string{s.ID, s.Status, formatAmount(s.Amount, s.Currency), s.PageID, formatTime(s.CreatedAt)}
}

func newPaymentsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payments",
		Aliases: []string{"payment"},
		Short:   "Inspect payments",
	}

	cmd.AddCommand(newPaymentsListCommand(a))

	return cmd
}

func newPaymentsListCommand(a *app) *cobra.Command {
	var opts offsetOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			params := &checkoutpage.PaymentListParams{
				Search:       opts.search,
				Status:       opts.status,
				PageID:       opts.pageID,
				OffsetParams: opts.params(),
			}

			return listing(a, opts.all,
				func() (*checkoutpage.List[checkoutpage.Payment], error) {
					return client.Payments.List(cmd.Context(), params)
				},
				func() iter.Seq2[checkoutpage.Payment, error] {
					return client.Payments.ListAll(cmd.Context(), params)
				},
				chargeHeader, paymentRow, "No payments found",
			)
		},
	}

	opts.bind(cmd)

	return cmd
}

func newSubscriptionsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"subscription", "subs"},
		Short:   "Inspect subscriptions",
	}

	cmd.AddCommand(newSubscriptionsListCommand(a))

	return cmd
}

func newSubscriptionsListCommand(a *app) *cobra.Command {
	var opts offsetOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subscriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			params := &checkoutpage.SubscriptionListParams{
				Search:       opts.search,
				Status:       opts.status,
				PageID:       opts.pageID,
				OffsetParams: opts.params(),
			}

			return listing(a, opts.all,
				func() (*checkoutpage.List[checkoutpage.Subscription], error) {
					return client.Subscriptions.List(cmd.Context(), params)
				},
				func() iter.Seq2[checkoutpage.Subscription, error] {
					return client.Subscriptions.ListAll(cmd.Context(), params)
				},
				chargeHeader, subscriptionRow, "No subscriptions found",
			)
		},
	}

	opts.bind(cmd)

	return cmd
}
