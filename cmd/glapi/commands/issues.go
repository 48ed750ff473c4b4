package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/gitlab-client/internal/constants"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// NewIssuesCommand creates the issues command group.
func NewIssuesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "issues",
		Aliases: []string{"issue"},
		Short:   "List, inspect and resolve issues",
		Long:    "List issues across GitLab or within a project, show an issue, and resolve an issue's id from namespace, project and iid",
	}

	cmd.AddCommand(newIssuesListCommand())
	cmd.AddCommand(newIssuesProjectCommand())
	cmd.AddCommand(newIssuesGetCommand())
	cmd.AddCommand(newIssuesResolveCommand())

	return cmd
}

// issueFilterFlags holds the filters shared by the issue listings.
type issueFilterFlags struct {
	state     string
	labels    []string
	milestone string
}

func (f *issueFilterFlags) register(cmd *cobra.Command, withMilestone bool) {
	cmd.Flags().StringVar(&f.state, "state", "", "filter by state (opened, closed)")
	cmd.Flags().StringSliceVar(&f.labels, "labels", nil, "filter by labels (comma separated)")

	if withMilestone {
		cmd.Flags().StringVar(&f.milestone, "milestone", "", "filter by milestone title")
	}
}

func (f *issueFilterFlags) issueState() (gitlab.IssueState, bool, error) {
	return parseEnumFlag(f.state, gitlab.ParseIssueState, constants.ErrInvalidState)
}

func newIssuesListCommand() *cobra.Command {
	var (
		issues   issueFilterFlags
		ordering orderingFlags
		pages    listFlags
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues visible to the caller",
		RunE: func(cmd *cobra.Command, args []string) error {
			listing := gitlab.NewIssuesListing()

			state, ok, err := issues.issueState()
			if err != nil {
				return err
			}

			if ok {
				listing = listing.State(state)
			}

			if len(issues.labels) > 0 {
				listing = listing.Labels(issues.labels...)
			}

			orderBy, ok, err := parseEnumFlag(ordering.orderBy, gitlab.ParseOrderBy, constants.ErrInvalidOrderBy)
			if err != nil {
				return err
			}

			if ok {
				listing = listing.OrderBy(orderBy)
			}

			sort, ok, err := ordering.sortDirection()
			if err != nil {
				return err
			}

			if ok {
				listing = listing.Sort(sort)
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			found, err := fetchList(cmd.Context(), client.Issues().List(listing), pages)
			if err != nil {
				return fmt.Errorf("failed to list issues: %w", err)
			}

			return render(cmd, found, func(out io.Writer) error {
				return renderIssuesTable(out, found)
			})
		},
	}

	issues.register(cmd, false)
	ordering.register(cmd, "order by (created_at, updated_at)")
	pages.register(cmd)

	return cmd
}

func newIssuesProjectCommand() *cobra.Command {
	var (
		issues   issueFilterFlags
		iids     []int
		ordering orderingFlags
		pages    listFlags
	)

	cmd := &cobra.Command{
		Use:   "project PROJECT",
		Short: "List a project's issues",
		Long:  "List the issues of a project given by numeric id or namespaced path (group/project)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listing := gitlab.NewProjectIssuesListing(gitlab.ParseProjectID(args[0]))

			state, ok, err := issues.issueState()
			if err != nil {
				return err
			}

			if ok {
				listing = listing.State(state)
			}

			if len(issues.labels) > 0 {
				listing = listing.Labels(issues.labels...)
			}

			if cmd.Flags().Changed("milestone") {
				listing = listing.Milestone(issues.milestone)
			}

			orderBy, ok, err := parseEnumFlag(ordering.orderBy, gitlab.ParseOrderBy, constants.ErrInvalidOrderBy)
			if err != nil {
				return err
			}

			if ok {
				listing = listing.OrderBy(orderBy)
			}

			sort, ok, err := ordering.sortDirection()
			if err != nil {
				return err
			}

			if ok {
				listing = listing.Sort(sort)
			}

			if len(iids) > 0 {
				listing = listing.IIDs(iids...)
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			found, err := fetchList(cmd.Context(), client.Issues().ListForProject(listing), pages)
			if err != nil {
				return fmt.Errorf("failed to list project issues: %w", err)
			}

			return render(cmd, found, func(out io.Writer) error {
				return renderIssuesTable(out, found)
			})
		},
	}

	issues.register(cmd, true)
	cmd.Flags().IntSliceVar(&iids, "iid", nil, "only issues with these iids")
	ordering.register(cmd, "order by (created_at, updated_at)")
	pages.register(cmd)

	return cmd
}

func newIssuesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PROJECT ISSUE_ID",
		Short: "Show an issue by its id",
		Long:  "Show an issue by its instance-wide id; use 'issues resolve' to find the id from an iid",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			issueID, err := parseID("issue id", args[1])
			if err != nil {
				return err
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			issue, err := client.Issues().Get(cmd.Context(), gitlab.ParseProjectID(args[0]), issueID)
			if err != nil {
				return fmt.Errorf("failed to get issue: %w", err)
			}

			return render(cmd, issue, func(out io.Writer) error {
				return renderIssueDetails(out, issue)
			})
		},
	}
}

// resolveFlags holds the -n/-p/-i triple of the resolve commands.
type resolveFlags struct {
	namespace string
	project   string
	iid       int
}

func (f *resolveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.namespace, "namespace", "n", "", "namespace (group or user path)")
	cmd.Flags().StringVarP(&f.project, "project", "p", "", "project path or name")
	cmd.Flags().IntVarP(&f.iid, "iid", "i", 0, "project-scoped number (#iid)")

	_ = cmd.MarkFlagRequired("namespace")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("iid")
}

func (f *resolveFlags) reference(separator string) string {
	return fmt.Sprintf("%s/%s%s%d", f.namespace, f.project, separator, f.iid)
}

func newIssuesResolveCommand() *cobra.Command {
	var target resolveFlags

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve an issue id from namespace, project and iid",
		Long: `Resolve the instance-wide id of an issue from its namespace, project and
project-scoped number by scanning the project and issue listings.`,
		Example: "  glapi issues resolve -n gitlab-org -p gitlab -i 1",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			issue, found, err := client.ResolveIssue(cmd.Context(), target.namespace, target.project, target.iid)
			if err != nil {
				return err
			}

			if !found {
				return fmt.Errorf("%w: %s", constants.ErrIssueNotFound, target.reference("#"))
			}

			return render(cmd, issue, func(out io.Writer) error {
				_, err := fmt.Fprintf(out, "Id for %s: %d\n", target.reference("#"), issue.ID)

				return err
			})
		},
	}

	target.register(cmd)

	return cmd
}

func renderIssuesTable(out io.Writer, issues []gitlab.Issue) error {
	if len(issues) == 0 {
		return writeEmpty(out, "issues")
	}

	width := titleWidth()
	table := newTable(out, "ID", "IID", "Project", "State", "Title", "Author", "Created")

	for _, issue := range issues {
		_ = table.Append(
			strconv.Itoa(issue.ID),
			strconv.Itoa(issue.IID),
			strconv.Itoa(issue.ProjectID),
			issue.State,
			truncate(issue.Title, width),
			issue.Author.Username,
			formatTime(issue.CreatedAt),
		)
	}

	return renderTable(table)
}

func renderIssueDetails(out io.Writer, issue *gitlab.Issue) error {
	milestone := constants.NotAvailable
	if issue.Milestone != nil {
		milestone = issue.Milestone.Title
	}

	return renderProperties(out, [][2]string{
		{"ID", strconv.Itoa(issue.ID)},
		{"IID", strconv.Itoa(issue.IID)},
		{"Project ID", strconv.Itoa(issue.ProjectID)},
		{"Title", issue.Title},
		{"State", issue.State},
		{"Author", issue.Author.Username},
		{"Labels", formatOptional(strings.Join(issue.Labels, ", "))},
		{"Milestone", milestone},
		{"Created", formatTime(issue.CreatedAt)},
		{"Updated", formatTime(issue.UpdatedAt)},
		{"Web URL", formatOptional(issue.WebURL)},
	})
}
