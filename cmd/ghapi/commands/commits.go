package commands

import (
	"context"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ghapi-client/internal/constants"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

// commitsOptions are the filters of the commits command.
type commitsOptions struct {
	sha     string
	path    string
	author  string
	since   time.Duration
	page    int
	perPage int
}

// NewCommitsCommand creates the commits command.
func NewCommitsCommand() *cobra.Command {
	var opts commitsOptions

	cmd := &cobra.Command{
		Use:   "commits OWNER/NAME",
		Short: "List commits",
		Long:  "List one page of commits of a repository, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			return runCommits(cmd.Context(), client, cmd.OutOrStdout(), outputFormat(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.sha, "sha", "", "branch name or commit SHA to start from")
	cmd.Flags().StringVar(&opts.path, "path", "", "only commits touching this path")
	cmd.Flags().StringVar(&opts.author, "author", "", "GitHub login or email address of the author")
	cmd.Flags().DurationVar(&opts.since, "since", 0, "only commits newer than this (e.g. 72h)")
	cmd.Flags().IntVar(&opts.page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.perPage, "per-page", constants.DefaultPerPage, "commits per page")

	return cmd
}

func (o commitsOptions) params(now time.Time) *ghapi.QueryParams {
	params := ghapi.NewQueryParams().
		WithPage(o.page).
		WithPerPage(o.perPage).
		WithFilter("sha", o.sha).
		WithFilter("path", o.path).
		WithFilter("author", o.author)

	if o.since > 0 {
		params.WithSince(now.Add(-o.since))
	}

	return params
}

func runCommits(ctx context.Context, client ghapi.Client, w io.Writer, format, slug string, opts commitsOptions) error {
	owner, name, err := parseRepoSlug(slug)
	if err != nil {
		return err
	}

	commits, err := client.Repos().ListCommits(ctx, owner, name, opts.params(time.Now()))
	if err != nil {
		return err
	}

	return writeOutput(w, format, commits, func(table *tablewriter.Table) {
		table.Header("SHA", "Author", "Date", "Message")

		for _, commit := range commits {
			author, date := constants.NotAvailable, constants.NotAvailable
			if commit.Commit.Author != nil {
				author = orNotAvailable(commit.Commit.Author.Name)
				date = commit.Commit.Author.Date.Format(constants.TimeDisplayFormat)
			}

			_ = table.Append(
				truncate(commit.SHA, constants.StringTruncationLimit),
				author,
				date,
				truncate(firstLine(commit.Commit.Message), constants.MessageTruncationLimit),
			)
		}
	})
}
