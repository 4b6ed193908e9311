// Package commands implements the checkoutpage command tree.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andyle182810/checkoutpage"
	"github.com/andyle182810/checkoutpage/httpclient"
	"github.com/andyle182810/checkoutpage/internal/config"
	"github.com/andyle182810/checkoutpage/logutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagConfig   = "config"
	flagAPIKey   = "api-key"
	flagBaseURL  = "base-url"
	flagOutput   = "output"
	flagLogLevel = "log-level"
	flagTimeout  = "timeout"
)

var ErrMissingAPIKey = fmt.Errorf("%w: set CHECKOUTPAGE_API_KEY or --api-key", checkoutpage.ErrInvalidArgument)

// app carries the per-invocation state shared by every subcommand.
type app struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer
}

// NewRootCommand builds the command tree. Flag defaults come from cfg; a
// --config YAML file overrides them and explicit flags override both.
func NewRootCommand(cfg *config.Config, out io.Writer) *cobra.Command {
	state := &app{v: viper.New(), out: out, errOut: os.Stderr}

	root := &cobra.Command{
		Use:   "checkoutpage",
		Short: "Checkout Page API command-line client",
		Long: `A command-line client for the Checkout Page API.

Customers, coupons, payments, subscriptions, bookings and tickets can be
listed and inspected. The API key is read from CHECKOUTPAGE_API_KEY.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return state.loadConfigFile()
		},
	}

	flags := root.PersistentFlags()
	flags.String(flagConfig, "", "YAML file with default flag values")
	flags.String(flagAPIKey, cfg.APIKey, "API key (defaults to CHECKOUTPAGE_API_KEY)")
	flags.String(flagBaseURL, cfg.BaseURL, "API base URL")
	flags.StringP(flagOutput, "o", cfg.Output, "output format (table, json, yaml)")
	flags.String(flagLogLevel, cfg.LogLevel, "log level (debug, info, warn, error, disabled)")
	flags.Duration(flagTimeout, cfg.ClientTimeout, "request timeout")

	_ = state.v.BindPFlags(flags)

	root.AddCommand(newCustomersCommand(state))
	root.AddCommand(newCouponsCommand(state))
	root.AddCommand(newPaymentsCommand(state))
	root.AddCommand(newSubscriptionsCommand(state))
	root.AddCommand(newBookingsCommand(state))
	root.AddCommand(newTicketsCommand(state))

	return root
}

func (a *app) loadConfigFile() error {
	path := a.v.GetString(flagConfig)
	if path == "" {
		return nil
	}

	a.v.SetConfigFile(path)
	a.v.SetConfigType("yaml")

	if err := a.v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return nil
}

func (a *app) output() string {
	return strings.ToLower(a.v.GetString(flagOutput))
}

func (a *app) client() (*checkoutpage.Client, error) {
	apiKey := a.v.GetString(flagAPIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	logger := logutil.New(a.v.GetString(flagLogLevel), logutil.FormatConsole, a.errOut)

	return checkoutpage.New(apiKey,
		httpclient.WithBaseURL(a.v.GetString(flagBaseURL)),
		httpclient.WithTimeout(a.v.GetDuration(flagTimeout)),
		httpclient.WithLogger(logger),
	)
}

// Describe renders err for the terminal, prefixed with its kind when it came
// from an API response.
func Describe(err error) string {
	apiErr, ok := httpclient.AsError(err)
	if !ok {
		return err.Error()
	}

	msg := fmt.Sprintf("%s error: %s", apiErr.Kind, apiErr.Message)

	if apiErr.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", apiErr.StatusCode)
	}

	if apiErr.RequestID != "" {
		msg += " [request " + apiErr.RequestID + "]"
	}

	return msg
}
