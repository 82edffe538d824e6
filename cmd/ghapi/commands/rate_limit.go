package commands

import (
	"context"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ghapi-client/internal/constants"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

// NewRateLimitCommand creates the rate-limit command.
func NewRateLimitCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rate-limit",
		Aliases: []string{"ratelimit", "limits"},
		Short:   "Show rate limit status",
		Long:    "Display the request quota of every API resource family",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := CreateClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			return runRateLimit(cmd.Context(), client, cmd.OutOrStdout(), outputFormat())
		},
	}
}

func runRateLimit(ctx context.Context, client ghapi.Client, w io.Writer, format string) error {
	overview, err := client.RateLimit().Get(ctx)
	if err != nil {
		return err
	}

	return writeOutput(w, format, overview, func(table *tablewriter.Table) {
		table.Header("Resource", "Limit", "Used", "Remaining", "Resets")

		names := make([]string, 0, len(overview.Resources))
		for name := range overview.Resources {
			names = append(names, name)
		}

		sort.Strings(names)

		for _, name := range names {
			resource := overview.Resources[name]
			_ = table.Append(
				name,
				strconv.Itoa(resource.Limit),
				strconv.Itoa(resource.Used),
				strconv.Itoa(resource.Remaining),
				resource.ResetTime().Local().Format(constants.TimeDisplayFormat),
			)
		}
	})
}
