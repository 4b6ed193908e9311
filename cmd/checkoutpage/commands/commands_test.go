package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andyle182810/checkoutpage"
	"github.com/andyle182810/checkoutpage/cmd/checkoutpage/commands"
	"github.com/andyle182810/checkoutpage/fakeapi"
	"github.com/andyle182810/checkoutpage/httpserver"
	"github.com/andyle182810/checkoutpage/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const testAPIKey = "sk_test_cli"

func startFakeAPI(t *testing.T) string {
	t.Helper()

	api := fakeapi.New(fakeapi.Config{
		APIKeys:   []string{testAPIKey},
		RateLimit: 0,
		RateBurst: 0,
		Seed:      fakeapi.DefaultSeed(),
		Now:       nil,
	})

	srv := httpserver.New(&httpserver.Config{
		Host:         "127.0.0.1",
		Port:         0,
		BodyLimit:    "",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		GracePeriod:  time.Second,
	}, zerolog.Nop())
	api.Register(srv.Root)

	require.NoError(t, srv.Start(t.Context()))
	t.Cleanup(func() { require.NoError(t, srv.Stop()) })

	return srv.URL()
}

func testConfig(baseURL, apiKey string) *config.Config {
	return &config.Config{ //nolint:exhaustruct
		LogLevel:      "disabled",
		APIKey:        apiKey,
		BaseURL:       baseURL,
		ClientTimeout: 5 * time.Second,
		Output:        commands.OutputFormatTable,
	}
}

func execute(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := commands.NewRootCommand(cfg, &out)
	root.SetArgs(args)
	root.SetErr(&bytes.Buffer{})

	err := root.ExecuteContext(t.Context())

	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	root := commands.NewRootCommand(testConfig("", ""), &bytes.Buffer{})

	var names []string
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}

	for _, name := range []string{"customers", "coupons", "payments", "subscriptions", "bookings", "tickets"} {
		assert.Contains(t, names, name)
	}

	for _, flag := range []string{"output", "base-url", "log-level", "api-key", "config", "timeout"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %s should exist", flag)
	}
}

func TestCustomersList_JSON(t *testing.T) {
	t.Parallel()

	cfg := testConfig(startFakeAPI(t), testAPIKey)

	out, err := execute(t, cfg, "customers", "list", "--limit", "3", "-o", "json")
	require.NoError(t, err)

	var list checkoutpage.List[checkoutpage.Customer]
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list.Data, 3)
	require.True(t, list.HasMore)

	out, err = execute(t, cfg, "customers", "get", list.Data[1].ID, "--output", "json")
	require.NoError(t, err)

	var customer checkoutpage.Envelope[checkoutpage.Customer]
	require.NoError(t, json.Unmarshal([]byte(out), &customer))
	require.Equal(t, list.Data[1].Email, customer.Data.Email)
}

func TestCustomersList_All(t *testing.T) {
	t.Parallel()

	cfg := testConfig(startFakeAPI(t), testAPIKey)

	out, err := execute(t, cfg, "customers", "list", "--all", "--limit", "4", "-o", "json")
	require.NoError(t, err)

	var customers []checkoutpage.Customer
	require.NoError(t, json.Unmarshal([]byte(out), &customers))
	require.Len(t, customers, 25)
}

func TestPaymentsList_Table(t *testing.T) {
	t.Parallel()

	cfg := testConfig(startFakeAPI(t), testAPIKey)

	out, err := execute(t, cfg, "payments", "list", "--status", "paid", "--limit", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "paid")
	assert.Contains(t, out, "Showing 2 of 8")
}

func TestBookingsList_Empty(t *testing.T) {
	t.Parallel()

	cfg := testConfig(startFakeAPI(t), testAPIKey)

	out, err := execute(t, cfg, "bookings", "list", "--search", "nobody-matches-this")
	require.NoError(t, err)
	assert.Equal(t, "No bookings found\n", out)
}

func TestSubscriptionsList_YAML(t *testing.T) {
	t.Parallel()

	cfg := testConfig(startFakeAPI(t), testAPIKey)

	out, err := execute(t, cfg, "subscriptions", "list", "--page-id", "page_2", "-o", "yaml")
	require.NoError(t, err)

	var decoded struct {
		Data []struct {
			PageID string `yaml:"pageId"`
		} `yaml:"data"`
		HasMore bool `yaml:"has_more"`
		Total   int  `yaml:"total"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	require.Equal(t, 5, decoded.Total)
	require.Len(t, decoded.Data, 5)

	for _, sub := range decoded.Data {
		assert.Equal(t, "page_2", sub.PageID)
	}
}

func TestCouponsCreate(t *testing.T) {
	t.Parallel()

	cfg := testConfig(startFakeAPI(t), testAPIKey)

	out, err := execute(t, cfg, "coupons", "create",
		"--label", "Launch", "--code", "LAUNCH",
		"--amount-off", "12.50", "--currency", "EUR",
		"--duration", "repeating", "--months", "2",
		"-o", "json",
	)
	require.NoError(t, err)

	var coupon checkoutpage.Envelope[checkoutpage.Coupon]
	require.NoError(t, json.Unmarshal([]byte(out), &coupon))
	require.NotNil(t, coupon.Data.AmountOff)
	require.Equal(t, int64(1250), *coupon.Data.AmountOff)
	require.Equal(t, "eur", coupon.Data.Currency)

	_, err = execute(t, cfg, "coupons", "create", "--label", "Again", "--code", "launch", "--percent-off", "5")
	require.ErrorIs(t, err, checkoutpage.ErrConflict)
	require.Equal(t, "conflict error: Coupon code already exists", trimRequestID(commands.Describe(err)))

	out, err = execute(t, cfg, "coupons", "list", "--search", "launch")
	require.NoError(t, err)
	assert.Contains(t, out, "12.50 EUR")
}

func TestTicketsValidate(t *testing.T) {
	t.Parallel()

	cfg := testConfig(startFakeAPI(t), testAPIKey)

	out, err := execute(t, cfg, "tickets", "validate", fakeapi.TicketCode(1), "--meta", "gate=west", "-o", "json")
	require.NoError(t, err)

	var result checkoutpage.TicketValidation
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.True(t, result.Success)
	require.Len(t, result.Ticket.Metadata, 1)
	require.Equal(t, "west", result.Ticket.Metadata[0].Value)

	out, err = execute(t, cfg, "tickets", "validate", fakeapi.TicketCode(1), "--meta", "gate=")
	require.NoError(t, err)
	assert.Contains(t, out, "CHECKEDIN")
	assert.NotContains(t, out, "Metadata gate")
}

func TestMissingAPIKey(t *testing.T) {
	t.Parallel()

	_, err := execute(t, testConfig("http://127.0.0.1:1", ""), "customers", "list")
	require.ErrorIs(t, err, commands.ErrMissingAPIKey)
	require.ErrorIs(t, err, checkoutpage.ErrInvalidArgument)
}

func TestWrongAPIKey(t *testing.T) {
	t.Parallel()

	_, err := execute(t, testConfig(startFakeAPI(t), "sk_wrong"), "coupons", "list")
	require.ErrorIs(t, err, checkoutpage.ErrAuthentication)
	require.Equal(t, "authentication error: Invalid API key", trimRequestID(commands.Describe(err)))
}

func TestConfigFile(t *testing.T) {
	t.Parallel()

	baseURL := startFakeAPI(t)
	path := filepath.Join(t.TempDir(), "checkoutpage.yaml")
	content := "output: json\napi-key: " + testAPIKey + "\nbase-url: " + baseURL + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	out, err := execute(t, testConfig("http://127.0.0.1:1", ""), "--config", path, "coupons", "list", "--limit", "1")
	require.NoError(t, err)

	var list checkoutpage.List[checkoutpage.Coupon]
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list.Data, 1)
}

func TestUnknownOutput(t *testing.T) {
	t.Parallel()

	cfg := testConfig(startFakeAPI(t), testAPIKey)

	_, err := execute(t, cfg, "payments", "list", "-o", "xml")
	require.ErrorContains(t, err, "unknown output format")
}

func trimRequestID(msg string) string {
	if idx := bytes.Index([]byte(msg), []byte(" [request ")); idx >= 0 {
		return msg[:idx]
	}

	return msg
}
