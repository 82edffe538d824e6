package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ghapi-client/internal/constants"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

// NewIssueCommand creates the issue command group.
func NewIssueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "issue",
		Aliases: []string{"issues"},
		Short:   "Work with issues",
		Long:    "Show and create GitHub issues",
	}

	cmd.AddCommand(newIssueGetCommand())
	cmd.AddCommand(newIssueCreateCommand())

	return cmd
}

func newIssueGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get OWNER/NAME NUMBER",
		Short: "Show an issue",
		Long:  "Display a single issue or pull request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseIssueNumber(args[1])
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			return runIssueGet(cmd.Context(), client, cmd.OutOrStdout(), outputFormat(), args[0], number)
		},
	}
}

func newIssueCreateCommand() *cobra.Command {
	var (
		title     string
		body      string
		labels    []string
		assignees []string
	)

	cmd := &cobra.Command{
		Use:   "create OWNER/NAME",
		Short: "Create an issue",
		Long:  "Open a new issue in a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(title) == "" {
				return constants.ErrTitleRequired
			}

			client, err := CreateClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			req := &ghapi.IssueCreateRequest{
				Title:     title,
				Body:      body,
				Labels:    labels,
				Assignees: assignees,
			}

			return runIssueCreate(cmd.Context(), client, cmd.OutOrStdout(), outputFormat(), args[0], req)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "issue title (required)")
	cmd.Flags().StringVar(&body, "body", "", "issue body")
	cmd.Flags().StringSliceVar(&labels, "label", nil, "label to add (repeatable)")
	cmd.Flags().StringSliceVar(&assignees, "assignee", nil, "login to assign (repeatable)")

	return cmd
}

func parseIssueNumber(s string) (int, error) {
	number, err := strconv.Atoi(s)
	if err != nil || number <= 0 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidIssueNum, s)
	}

	return number, nil
}

func runIssueGet(ctx context.Context, client ghapi.Client, w io.Writer, format, slug string, number int) error {
	owner, name, err := parseRepoSlug(slug)
	if err != nil {
		return err
	}

	issue, err := client.Issues().Get(ctx, owner, name, number)
	if err != nil {
		return err
	}

	return writeIssue(w, format, issue)
}

func runIssueCreate(ctx context.Context, client ghapi.Client, w io.Writer, format, slug string, req *ghapi.IssueCreateRequest) error {
	owner, name, err := parseRepoSlug(slug)
	if err != nil {
		return err
	}

	issue, err := client.Issues().Create(ctx, owner, name, req)
	if err != nil {
		return err
	}

	return writeIssue(w, format, issue)
}

func writeIssue(w io.Writer, format string, issue *ghapi.Issue) error {
	return writeOutput(w, format, issue, func(table *tablewriter.Table) {
		table.Header("Property", "Value")
		_ = table.Append("Number", strconv.Itoa(issue.Number))
		_ = table.Append("Title", issue.Title)
		_ = table.Append("State", issue.State)
		_ = table.Append("Author", issueAuthor(issue))
		_ = table.Append("Labels", orNotAvailable(labelNames(issue.Labels)))
		_ = table.Append("Comments", strconv.Itoa(issue.Comments))
		_ = table.Append("URL", orNotAvailable(issue.HTMLURL))
	})
}

func issueAuthor(issue *ghapi.Issue) string {
	if issue.User == nil {
		return constants.NotAvailable
	}

	return orNotAvailable(issue.User.Login)
}

func labelNames(labels []ghapi.Label) string {
	names := make([]string, 0, len(labels))
	for _, label := range labels {
		names = append(names, label.Name)
	}

	return strings.Join(names, ", ")
}
