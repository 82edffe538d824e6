package commands

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ghapi-client/internal/constants"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

// searchOptions are shared by the search subcommands.
type searchOptions struct {
	sort  string
	order string
	limit int
}

// NewSearchCommand creates the search command group.
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search GitHub",
		Long:  "Search repositories and issues. Results are fetched page by page within the rate limit.",
	}

	cmd.AddCommand(newSearchReposCommand())
	cmd.AddCommand(newSearchIssuesCommand())

	return cmd
}

func addSearchFlags(cmd *cobra.Command, opts *searchOptions) {
	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort field")
	cmd.Flags().StringVar(&opts.order, "order", "", "sort order (asc, desc)")
	cmd.Flags().IntVar(&opts.limit, "limit", constants.DefaultPerPage, "maximum results to show (0 for all)")
}

func newSearchReposCommand() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:     "repos QUERY...",
		Aliases: []string{"repositories"},
		Short:   "Search repositories",
		Long:    "Search repositories using GitHub search syntax, e.g. 'language:go stars:>1000'",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			return runSearchRepos(cmd.Context(), client, cmd.OutOrStdout(), outputFormat(), strings.Join(args, " "), opts)
		},
	}

	addSearchFlags(cmd, &opts)

	return cmd
}

func newSearchIssuesCommand() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "issues QUERY...",
		Short: "Search issues and pull requests",
		Long:  "Search issues and pull requests using GitHub search syntax, e.g. 'repo:owner/name is:open'",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			return runSearchIssues(cmd.Context(), client, cmd.OutOrStdout(), outputFormat(), strings.Join(args, " "), opts)
		},
	}

	addSearchFlags(cmd, &opts)

	return cmd
}

func (o searchOptions) params(query string) (*ghapi.QueryParams, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, constants.ErrSearchQueryNeeded
	}

	params := ghapi.NewQueryParams().WithQuery(query).WithSort(o.sort, o.order)
	if o.limit > 0 && o.limit < constants.MaxPerPage {
		params.WithPerPage(o.limit)
	}

	return params, nil
}

// collect drains stream, stopping after limit items when limit is positive.
func collect[T any](ctx context.Context, stream *ghapi.Stream[T], limit int) ([]T, error) {
	var items []T

	for item, err := range stream.Items(ctx) {
		if err != nil {
			return items, err
		}

		items = append(items, item)
		if limit > 0 && len(items) >= limit {
			break
		}
	}

	return items, nil
}

func runSearchRepos(ctx context.Context, client ghapi.Client, w io.Writer, format, query string, opts searchOptions) error {
	params, err := opts.params(query)
	if err != nil {
		return err
	}

	repos, err := collect(ctx, client.Search().StreamRepositories(params), opts.limit)
	if err != nil {
		return err
	}

	return writeOutput(w, format, repos, func(table *tablewriter.Table) {
		table.Header("Name", "Stars", "Language", "Description")

		for _, repo := range repos {
			_ = table.Append(
				repo.FullName,
				strconv.Itoa(repo.StargazersCount),
				orNotAvailable(repo.Language),
				truncate(repo.Description, constants.MessageTruncationLimit),
			)
		}
	})
}

func runSearchIssues(ctx context.Context, client ghapi.Client, w io.Writer, format, query string, opts searchOptions) error {
	params, err := opts.params(query)
	if err != nil {
		return err
	}

	issues, err := collect(ctx, client.Search().StreamIssues(params), opts.limit)
	if err != nil {
		return err
	}

	return writeOutput(w, format, issues, func(table *tablewriter.Table) {
		table.Header("Number", "State", "Title", "Author")

		for _, issue := range issues {
			_ = table.Append(
				strconv.Itoa(issue.Number),
				issue.State,
				truncate(issue.Title, constants.MessageTruncationLimit),
				issueAuthor(&issue),
			)
		}
	})
}
