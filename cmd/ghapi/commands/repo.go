package commands

import (
	"context"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ghapi-client/internal/constants"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

// NewRepoCommand creates the repo command.
func NewRepoCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "repo OWNER/NAME",
		Aliases: []string{"repository"},
		Short:   "Show a repository",
		Long:    "Display details of a single repository",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			return runRepo(cmd.Context(), client, cmd.OutOrStdout(), outputFormat(), args[0])
		},
	}
}

func runRepo(ctx context.Context, client ghapi.Client, w io.Writer, format, slug string) error {
	owner, name, err := parseRepoSlug(slug)
	if err != nil {
		return err
	}

	repo, err := client.Repos().Get(ctx, owner, name)
	if err != nil {
		return err
	}

	return writeOutput(w, format, repo, func(table *tablewriter.Table) {
		table.Header("Property", "Value")
		_ = table.Append("Name", repo.FullName)
		_ = table.Append("Description", orNotAvailable(repo.Description))
		_ = table.Append("Language", orNotAvailable(repo.Language))
		_ = table.Append("Default Branch", orNotAvailable(repo.DefaultBranch))
		_ = table.Append("Stars", strconv.Itoa(repo.StargazersCount))
		_ = table.Append("Forks", strconv.Itoa(repo.ForksCount))
		_ = table.Append("Open Issues", strconv.Itoa(repo.OpenIssuesCount))
		_ = table.Append("Private", strconv.FormatBool(repo.Private))
		_ = table.Append("Archived", strconv.FormatBool(repo.Archived))

		if !repo.UpdatedAt.IsZero() {
			_ = table.Append("Updated", repo.UpdatedAt.Format(constants.TimeDisplayFormat))
		}
	})
}
