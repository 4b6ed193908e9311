package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/andyle182810/checkoutpage/money"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"

	yamlIndent = 2
)

var errUnknownOutput = fmt.Errorf("unknown output format, expected %s, %s or %s",
	OutputFormatTable, OutputFormatJSON, OutputFormatYAML)

// tabular is the table rendition of a value printed by a command.
type tabular struct {
	header []string
	rows   [][]string
	empty  string
	footer string
}

func (a *app) render(value any, table tabular) error {
	switch a.output() {
	case OutputFormatJSON:
		return writeJSON(a.out, value)
	case OutputFormatYAML:
		return writeYAML(a.out, value)
	case OutputFormatTable, "":
		return writeTable(a.out, table)
	default:
		return fmt.Errorf("%w: %q", errUnknownOutput, a.output())
	}
}

func propertyTable(rows [][]string) tabular {
	return tabular{header: []string{"Property", "Value"}, rows: rows, empty: "", footer: ""}
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("failed to encode output as JSON: %w", err)
	}

	return nil
}

func writeYAML(out io.Writer, value any) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("failed to encode output as YAML: %w", err)
	}

	return encoder.Close()
}

func writeTable(out io.Writer, data tabular) error {
	if len(data.rows) == 0 {
		_, _ = fmt.Fprintln(out, data.empty)

		return nil
	}

	table := tablewriter.NewWriter(out)
	table.Header(cells(data.header)...)

	for _, row := range data.rows {
		_ = table.Append(cells(row)...)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if data.footer != "" {
		_, _ = fmt.Fprintln(out, data.footer)
	}

	return nil
}

func cells(values []string) []any {
	out := make([]any, len(values))
	for idx, value := range values {
		out[idx] = value
	}

	return out
}

func formatAmount(amount int64, currency string) string {
	return money.Format(amount, currency)
}

func formatTime(at time.Time) string {
	if at.IsZero() {
		return ""
	}

	return at.UTC().Format(time.RFC3339)
}

func formatTotal(total *int, shown int) string {
	if total == nil {
		return strconv.Itoa(shown)
	}

	return fmt.Sprintf("%d of %d", shown, *total)
}
