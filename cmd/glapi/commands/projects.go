package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/gitlab-client/internal/constants"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "List, inspect and resolve projects",
		Long: `List and search GitLab projects, show a project with its events, hooks
and branches, and resolve a project from its namespace and name.

PROJECT is either a numeric id or a namespaced path such as group/project.`,
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsSearchCommand())
	cmd.AddCommand(newProjectsGetCommand())
	cmd.AddCommand(newProjectsEventsCommand())
	cmd.AddCommand(newProjectsHooksCommand())
	cmd.AddCommand(newProjectsHookCommand())
	cmd.AddCommand(newProjectsBranchesCommand())
	cmd.AddCommand(newProjectsBranchCommand())
	cmd.AddCommand(newProjectsResolveCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	var (
		scope      string
		archived   bool
		visibility string
		search     string
		simple     bool
		ordering   orderingFlags
		pages      listFlags
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			listing := gitlab.NewProjectsListing()

			projectScope, ok, err := parseEnumFlag(scope, gitlab.ParseProjectScope, constants.ErrInvalidScope)
			if err != nil {
				return err
			}

			if ok {
				listing = listing.Scope(projectScope)
			}

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

			if cmd.Flags().Changed("simple") {
				listing = listing.Simple(simple)
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			projects, err := fetchList(cmd.Context(), client.Projects().List(listing), pages)
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}

			return render(cmd, projects, func(out io.Writer) error {
				return renderProjectsTable(out, projects)
			})
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "collection to list (accessible, all, owned, visible)")
	cmd.Flags().BoolVar(&archived, "archived", false, "filter by archived state")
	cmd.Flags().StringVar(&visibility, "visibility", "", "filter by visibility (public, internal, private)")
	cmd.Flags().StringVar(&search, "search", "", "filter by name")
	cmd.Flags().BoolVar(&simple, "simple", false, "return only limited fields")
	ordering.register(cmd, "order by (id, name, path, created_at, updated_at, last_activity_at)")
	pages.register(cmd)

	return cmd
}

func newProjectsSearchCommand() *cobra.Command {
	var (
		ordering orderingFlags
		pages    listFlags
	)

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search projects by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listing := gitlab.NewProjectSearchListing(args[0])

			orderBy, ok, err := parseEnumFlag(ordering.orderBy, gitlab.ParseSearchOrderBy, constants.ErrInvalidOrderBy)
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

			projects, err := fetchList(cmd.Context(), client.Projects().Search(listing), pages)
			if err != nil {
				return fmt.Errorf("failed to search projects: %w", err)
			}

			return render(cmd, projects, func(out io.Writer) error {
				return renderProjectsTable(out, projects)
			})
		},
	}

	ordering.register(cmd, "order by (id, name, created_at, last_activity_at)")
	pages.register(cmd)

	return cmd
}

func newProjectsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PROJECT",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			project, err := client.Projects().Get(cmd.Context(), gitlab.ParseProjectID(args[0]))
			if err != nil {
				return fmt.Errorf("failed to get project: %w", err)
			}

			return render(cmd, project, func(out io.Writer) error {
				return renderProjectDetails(out, project)
			})
		},
	}
}

func newProjectsEventsCommand() *cobra.Command {
	var pages listFlags

	cmd := &cobra.Command{
		Use:   "events PROJECT",
		Short: "List a project's events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			events, err := fetchList(cmd.Context(), client.Projects().Events(gitlab.ParseProjectID(args[0])), pages)
			if err != nil {
				return fmt.Errorf("failed to list project events: %w", err)
			}

			return render(cmd, events, func(out io.Writer) error {
				if len(events) == 0 {
					return writeEmpty(out, "events")
				}

				width := titleWidth()
				table := newTable(out, "ID", "Action", "Target", "Title", "Author", "Created")

				for _, event := range events {
					_ = table.Append(
						strconv.Itoa(event.ID),
						event.ActionName,
						formatOptional(event.TargetType),
						truncate(formatOptional(event.TargetTitle), width),
						event.AuthorUsername,
						formatTime(event.CreatedAt),
					)
				}

				return renderTable(table)
			})
		},
	}

	pages.register(cmd)

	return cmd
}

func newProjectsHooksCommand() *cobra.Command {
	var pages listFlags

	cmd := &cobra.Command{
		Use:   "hooks PROJECT",
		Short: "List a project's webhooks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			hooks, err := fetchList(cmd.Context(), client.Projects().Hooks(gitlab.ParseProjectID(args[0])), pages)
			if err != nil {
				return fmt.Errorf("failed to list project hooks: %w", err)
			}

			return render(cmd, hooks, func(out io.Writer) error {
				if len(hooks) == 0 {
					return writeEmpty(out, "hooks")
				}

				table := newTable(out, "ID", "URL", "Push", "Issues", "Merge Requests", "Created")

				for _, hook := range hooks {
					_ = table.Append(
						strconv.Itoa(hook.ID),
						hook.URL,
						strconv.FormatBool(hook.PushEvents),
						strconv.FormatBool(hook.IssuesEvents),
						strconv.FormatBool(hook.MergeRequestsEvents),
						formatTime(hook.CreatedAt),
					)
				}

				return renderTable(table)
			})
		},
	}

	pages.register(cmd)

	return cmd
}

func newProjectsHookCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hook PROJECT HOOK_ID",
		Short: "Show a project webhook",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			hookID, err := parseID("hook id", args[1])
			if err != nil {
				return err
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			hook, err := client.Projects().GetHook(cmd.Context(), gitlab.ParseProjectID(args[0]), hookID)
			if err != nil {
				return fmt.Errorf("failed to get project hook: %w", err)
			}

			return render(cmd, hook, func(out io.Writer) error {
				return renderProperties(out, [][2]string{
					{"ID", strconv.Itoa(hook.ID)},
					{"URL", hook.URL},
					{"Project ID", strconv.Itoa(hook.ProjectID)},
					{"Push Events", strconv.FormatBool(hook.PushEvents)},
					{"Issues Events", strconv.FormatBool(hook.IssuesEvents)},
					{"Merge Requests Events", strconv.FormatBool(hook.MergeRequestsEvents)},
					{"Tag Push Events", strconv.FormatBool(hook.TagPushEvents)},
					{"Pipeline Events", strconv.FormatBool(hook.PipelineEvents)},
					{"SSL Verification", strconv.FormatBool(hook.EnableSSLVerification)},
					{"Created", formatTime(hook.CreatedAt)},
				})
			})
		},
	}
}

func newProjectsBranchesCommand() *cobra.Command {
	var pages listFlags

	cmd := &cobra.Command{
		Use:   "branches PROJECT",
		Short: "List a project's branches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			branches, err := fetchList(cmd.Context(), client.Projects().Branches(gitlab.ParseProjectID(args[0])), pages)
			if err != nil {
				return fmt.Errorf("failed to list project branches: %w", err)
			}

			return render(cmd, branches, func(out io.Writer) error {
				if len(branches) == 0 {
					return writeEmpty(out, "branches")
				}

				table := newTable(out, "Name", "Default", "Protected", "Merged", "Commit")

				for _, branch := range branches {
					_ = table.Append(
						branch.Name,
						strconv.FormatBool(branch.Default),
						strconv.FormatBool(branch.Protected),
						strconv.FormatBool(branch.Merged),
						branch.Commit.ShortID,
					)
				}

				return renderTable(table)
			})
		},
	}

	pages.register(cmd)

	return cmd
}

func newProjectsBranchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "branch PROJECT NAME",
		Short: "Show a branch",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			branch, err := client.Projects().GetBranch(cmd.Context(), gitlab.ParseProjectID(args[0]), args[1])
			if err != nil {
				return fmt.Errorf("failed to get branch: %w", err)
			}

			return render(cmd, branch, func(out io.Writer) error {
				return renderProperties(out, [][2]string{
					{"Name", branch.Name},
					{"Default", strconv.FormatBool(branch.Default)},
					{"Protected", strconv.FormatBool(branch.Protected)},
					{"Merged", strconv.FormatBool(branch.Merged)},
					{"Commit", branch.Commit.ID},
					{"Commit Title", branch.Commit.Title},
					{"Author", branch.Commit.AuthorName},
					{"Committed", formatTime(branch.Commit.CommittedDate)},
				})
			})
		},
	}
}

func newProjectsResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "resolve NAMESPACE NAME",
		Short:   "Find a project by namespace and name",
		Example: "  glapi projects resolve gitlab-org gitlab",
		Args:    cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			namespace, name := args[0], args[1]

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			project, found, err := client.ResolveProject(cmd.Context(), namespace, name)
			if err != nil {
				return err
			}

			if !found {
				return fmt.Errorf("%w: %s/%s", constants.ErrProjectNotFound, namespace, name)
			}

			return render(cmd, project, func(out io.Writer) error {
				return renderProjectDetails(out, project)
			})
		},
	}
}

func renderProjectsTable(out io.Writer, projects []gitlab.Project) error {
	if len(projects) == 0 {
		return writeEmpty(out, "projects")
	}

	table := newTable(out, "ID", "Path", "Visibility", "Default Branch", "Last Activity")

	for _, project := range projects {
		_ = table.Append(
			strconv.Itoa(project.ID),
			project.PathWithNamespace,
			formatOptional(project.Visibility),
			formatOptional(project.DefaultBranch),
			formatTime(project.LastActivityAt),
		)
	}

	return renderTable(table)
}

func renderProjectDetails(out io.Writer, project *gitlab.Project) error {
	return renderProperties(out, [][2]string{
		{"ID", strconv.Itoa(project.ID)},
		{"Name", project.Name},
		{"Path", project.PathWithNamespace},
		{"Namespace", project.Namespace.FullPath},
		{"Description", formatOptional(project.Description)},
		{"Visibility", formatOptional(project.Visibility)},
		{"Default Branch", formatOptional(project.DefaultBranch)},
		{"Archived", strconv.FormatBool(project.Archived)},
		{"Open Issues", strconv.Itoa(project.OpenIssuesCount)},
		{"Created", formatTime(project.CreatedAt)},
		{"Web URL", formatOptional(project.WebURL)},
	})
}
