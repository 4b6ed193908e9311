package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/andyle182810/checkoutpage"
	"github.com/spf13/cobra"
)

var errMetadataFormat = errors.New("metadata must be key=value, or key= to remove the key")

// ParseMetadata turns key=value pairs into entries. "key=" yields a nil value,
// which removes the key from the ticket.
func ParseMetadata(pairs []string) ([]checkoutpage.MetadataEntry, error) {
	entries := make([]checkoutpage.MetadataEntry, 0, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: %q", errMetadataFormat, pair)
		}

		entry := checkoutpage.MetadataEntry{Key: strings.TrimSpace(key), Value: nil}
		if value != "" {
			entry.Value = checkoutpage.MetadataValue(value)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func newTicketsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tickets",
		Aliases: []string{"ticket"},
		Short:   "Check in event tickets",
	}

	cmd.AddCommand(newTicketsValidateCommand(a))

	return cmd
}

func newTicketsValidateCommand(a *app) *cobra.Command {
	var meta []string

	cmd := &cobra.Command{
		Use:   "validate QR_CODE",
		Short: "Validate a ticket and record a check-in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := ParseMetadata(meta)
			if err != nil {
				return err
			}

			client, err := a.client()
			if err != nil {
				return err
			}

			result, err := client.Tickets.Validate(cmd.Context(), args[0], &checkoutpage.ValidateTicketParams{
				Metadata: entries,
			})
			if err != nil {
				return err
			}

			return a.render(result, ticketTable(result))
		},
	}

	cmd.Flags().StringArrayVar(&meta, "meta", nil, "set ticket metadata as key=value; key= removes it")

	return cmd
}

func ticketTable(result *checkoutpage.TicketValidation) tabular {
	ticket := result.Ticket
	rows := [][]string{
		{"Success", strconv.FormatBool(result.Success)},
		{"Ticket", ticket.TicketShortID},
		{"Status", ticket.Status},
		{"Check-in status", ticket.CheckInStatus},
		{"Check-ins", strconv.Itoa(len(ticket.CheckIns))},
		{"Customer", strings.TrimSpace(ticket.CustomerName + " " + ticket.CustomerEmail)},
		{"Revenue", formatAmount(ticket.Revenue, ticket.Currency)},
	}

	for _, entry := range ticket.Metadata {
		rows = append(rows, []string{"Metadata " + entry.Key, entry.Value})
	}

	return propertyTable(rows)
}
