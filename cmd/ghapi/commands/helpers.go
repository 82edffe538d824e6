package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/ghapi-client/internal/constants"
)

// JSON formatting.
const defaultJSONIndent = "  "

// outputFormat returns the configured output format.
func outputFormat() string {
	format := viper.GetString("output")
	if format == "" {
		return constants.FormatTable
	}

	return strings.ToLower(format)
}

// writeOutput renders value as JSON or YAML, or calls fillTable to build a
// table for the table format.
func writeOutput(w io.Writer, format string, value any, fillTable func(table *tablewriter.Table)) error {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", defaultJSONIndent)

		return encoder.Encode(value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(value)
	case constants.FormatTable:
		table := tablewriter.NewWriter(w)
		fillTable(table)

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownFormat, format)
	}
}

// parseRepoSlug splits "owner/name".
func parseRepoSlug(slug string) (string, string, error) {
	owner, name, ok := strings.Cut(slug, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("%w: %q", constants.ErrInvalidRepoSlug, slug)
	}

	return owner, name, nil
}

// truncate shortens s to at most limit runes.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)

	return string(runes[:limit])
}

// firstLine returns the commit subject.
func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")

	return strings.TrimSpace(line)
}

func orNotAvailable(s string) string {
	if s == "" {
		return constants.NotAvailable
	}

	return s
}
