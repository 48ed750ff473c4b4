package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/gitlab-client/internal/constants"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// NewGroupsCommand creates the groups command group.
func NewGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "groups",
		Aliases: []string{"group"},
		Short:   "List and inspect groups",
		Long:    "List GitLab groups, show a group, and list a group's projects and issues",
	}

	cmd.AddCommand(newGroupsListCommand())
	cmd.AddCommand(newGroupsGetCommand())
	cmd.AddCommand(newGroupsProjectsCommand())
	cmd.AddCommand(newGroupsIssuesCommand())

	return cmd
}

func newGroupsListCommand() *cobra.Command {
	var (
		owned        bool
		allAvailable bool
		search       string
		skip         []int
		ordering     orderingFlags
		pages        listFlags
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		Long:  "List the groups visible to the caller, or with --owned only the groups the caller owns",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			var lister gitlab.Lister[gitlab.Group]

			if owned {
				lister = client.Groups().Owned()
			} else {
				listing := gitlab.NewGroupsListing()

				if len(skip) > 0 {
					listing = listing.SkipGroups(skip...)
				}

				if cmd.Flags().Changed("all-available") {
					listing = listing.AllAvailable(allAvailable)
				}

				if cmd.Flags().Changed("search") {
					listing = listing.Search(search)
				}

				orderBy, ok, err := parseEnumFlag(ordering.orderBy, gitlab.ParseGroupOrderBy, constants.ErrInvalidOrderBy)
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

				lister = client.Groups().List(listing)
			}

			groups, err := fetchList(cmd.Context(), lister, pages)
			if err != nil {
				return fmt.Errorf("failed to list groups: %w", err)
			}

			return render(cmd, groups, func(out io.Writer) error {
				return renderGroupsTable(out, groups)
			})
		},
	}

	cmd.Flags().BoolVar(&owned, "owned", false, "only groups owned by the caller")
	cmd.Flags().BoolVar(&allAvailable, "all-available", false, "include all groups the caller can see")
	cmd.Flags().StringVar(&search, "search", "", "filter by name or path")
	cmd.Flags().IntSliceVar(&skip, "skip", nil, "group ids to leave out")
	ordering.register(cmd, "order by (name, path)")
	pages.register(cmd)

	return cmd
}

func newGroupsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get GROUP_ID",
		Short: "Show a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groupID, err := parseID("group id", args[0])
			if err != nil {
				return err
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			group, err := client.Groups().Get(cmd.Context(), groupID)
			if err != nil {
				return fmt.Errorf("failed to get group: %w", err)
			}

			return render(cmd, group, func(out io.Writer) error {
				return renderProperties(out, [][2]string{
					{"ID", strconv.Itoa(group.ID)},
					{"Name", group.Name},
					{"Full Path", group.FullPath},
					{"Visibility", group.Visibility},
					{"Description", formatOptional(group.Description)},
					{"Web URL", group.WebURL},
				})
			})
		},
	}
}

func newGroupsProjectsCommand() *cobra.Command {
	var (
		archived       bool
		visibility     string
		search         string
		ciEnabledFirst bool
		ordering       orderingFlags
		pages          listFlags
	)

	cmd := &cobra.Command{
		Use:   "projects GROUP_ID",
		Short: "List a group's projects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groupID, err := parseID("group id", args[0])
			if err != nil {
				return err
			}

			listing := gitlab.NewGroupProjectsListing(groupID)

			if cmd.Flags().Changed("archived") {
				listing = listing.Archived(archived)
			}

			vis, ok, err := parseEnumFlag(visibility, gitlab.ParseVisibility, constants.ErrInvalidVisibility)
			if err != nil {
				return err
			}

			if ok {
				listing = listing.Visibility(vis)
			}

			orderBy, ok, err := parseEnumFlag(ordering.orderBy, gitlab.ParseProjectOrderBy, constants.ErrInvalidOrderBy)
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

			if cmd.Flags().Changed("search") {
				listing = listing.Search(search)
			}

			if cmd.Flags().Changed("ci-enabled-first") {
				listing = listing.CIEnabledFirst(ciEnabledFirst)
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			projects, err := fetchList(cmd.Context(), client.Groups().Projects(listing), pages)
			if err != nil {
				return fmt.Errorf("failed to list group projects: %w", err)
			}

			return render(cmd, projects, func(out io.Writer) error {
				return renderProjectsTable(out, projects)
			})
		},
	}

	cmd.Flags().BoolVar(&archived, "archived", false, "filter by archived state")
	cmd.Flags().StringVar(&visibility, "visibility", "", "filter by visibility (public, internal, private)")
	cmd.Flags().StringVar(&search, "search", "", "filter by name")
	cmd.Flags().BoolVar(&ciEnabledFirst, "ci-enabled-first", false, "list projects with CI enabled first")
	ordering.register(cmd, "order by (id, name, path, created_at, updated_at, last_activity_at)")
	pages.register(cmd)

	return cmd
}

func newGroupsIssuesCommand() *cobra.Command {
	var (
		issues   issueFilterFlags
		ordering orderingFlags
		pages    listFlags
	)

	cmd := &cobra.Command{
		Use:   "issues GROUP_ID",
		Short: "List a group's issues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groupID, err := parseID("group id", args[0])
			if err != nil {
				return err
			}

			listing := gitlab.NewGroupIssuesListing(groupID)

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

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			found, err := fetchList(cmd.Context(), client.Groups().Issues(listing), pages)
			if err != nil {
				return fmt.Errorf("failed to list group issues: %w", err)
			}

			return render(cmd, found, func(out io.Writer) error {
				return renderIssuesTable(out, found)
			})
		},
	}

	issues.register(cmd, true)
	ordering.register(cmd, "order by (created_at, updated_at)")
	pages.register(cmd)

	return cmd
}

func renderGroupsTable(out io.Writer, groups []gitlab.Group) error {
	if len(groups) == 0 {
		return writeEmpty(out, "groups")
	}

	table := newTable(out, "ID", "Full Path", "Name", "Visibility")

	for _, group := range groups {
		_ = table.Append(strconv.Itoa(group.ID), group.FullPath, group.Name, group.Visibility)
	}

	return renderTable(table)
}
