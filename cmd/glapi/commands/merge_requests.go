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

// NewMergeRequestsCommand creates the merge-requests command group.
func NewMergeRequestsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "merge-requests",
		Aliases: []string{"mrs", "mr"},
		Short:   "List, inspect and resolve merge requests",
	}

	cmd.AddCommand(newMergeRequestsListCommand())
	cmd.AddCommand(newMergeRequestsGetCommand())
	cmd.AddCommand(newMergeRequestsResolveCommand())

	return cmd
}

func newMergeRequestsListCommand() *cobra.Command {
	var (
		iids     []int
		state    string
		ordering orderingFlags
		pages    listFlags
	)

	cmd := &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's merge requests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listing := gitlab.NewMergeRequestsListing(gitlab.ParseProjectID(args[0]))

			if len(iids) > 0 {
				listing = listing.IIDs(iids...)
			}

			mrState, ok, err := parseEnumFlag(state, gitlab.ParseMergeRequestState, constants.ErrInvalidState)
			if err != nil {
				return err
			}

			if ok {
				listing = listing.State(mrState)
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

			mergeRequests, err := fetchList(cmd.Context(), client.MergeRequests().List(listing), pages)
			if err != nil {
				return fmt.Errorf("failed to list merge requests: %w", err)
			}

			return render(cmd, mergeRequests, func(out io.Writer) error {
				return renderMergeRequestsTable(out, mergeRequests)
			})
		},
	}

	cmd.Flags().IntSliceVar(&iids, "iid", nil, "only merge requests with these iids")
	cmd.Flags().StringVar(&state, "state", "", "filter by state (merged, opened, closed, all)")
	ordering.register(cmd, "order by (created_at, updated_at)")
	pages.register(cmd)

	return cmd
}

func newMergeRequestsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PROJECT MR_ID",
		Short: "Show a merge request by its id",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			mergeRequestID, err := parseID("merge request id", args[1])
			if err != nil {
				return err
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			mergeRequest, err := client.MergeRequests().Get(cmd.Context(), gitlab.ParseProjectID(args[0]), mergeRequestID)
			if err != nil {
				return fmt.Errorf("failed to get merge request: %w", err)
			}

			return render(cmd, mergeRequest, func(out io.Writer) error {
				return renderProperties(out, [][2]string{
					{"ID", strconv.Itoa(mergeRequest.ID)},
					{"IID", strconv.Itoa(mergeRequest.IID)},
					{"Project ID", strconv.Itoa(mergeRequest.ProjectID)},
					{"Title", mergeRequest.Title},
					{"State", mergeRequest.State},
					{"Source Branch", mergeRequest.SourceBranch},
					{"Target Branch", mergeRequest.TargetBranch},
					{"Author", mergeRequest.Author.Username},
					{"Labels", formatOptional(strings.Join(mergeRequest.Labels, ", "))},
					{"Draft", strconv.FormatBool(mergeRequest.Draft)},
					{"Created", formatTime(mergeRequest.CreatedAt)},
					{"Merged", formatTime(mergeRequest.MergedAt)},
					{"Web URL", formatOptional(mergeRequest.WebURL)},
				})
			})
		},
	}
}

func newMergeRequestsResolveCommand() *cobra.Command {
	var target resolveFlags

	cmd := &cobra.Command{
		Use:     "resolve",
		Short:   "Resolve a merge request id from namespace, project and iid",
		Example: "  glapi merge-requests resolve -n gitlab-org -p gitlab -i 1",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			mergeRequest, found, err := client.ResolveMergeRequest(cmd.Context(), target.namespace, target.project, target.iid)
			if err != nil {
				return err
			}

			if !found {
				return fmt.Errorf("%w: %s", constants.ErrMergeRequestNotFound, target.reference("!"))
			}

			return render(cmd, mergeRequest, func(out io.Writer) error {
				_, err := fmt.Fprintf(out, "Id for %s: %d\n", target.reference("!"), mergeRequest.ID)

				return err
			})
		},
	}

	target.register(cmd)

	return cmd
}

func renderMergeRequestsTable(out io.Writer, mergeRequests []gitlab.MergeRequest) error {
	if len(mergeRequests) == 0 {
		return writeEmpty(out, "merge requests")
	}

	width := titleWidth()
	table := newTable(out, "ID", "IID", "State", "Title", "Source", "Target", "Author")

	for _, mergeRequest := range mergeRequests {
		_ = table.Append(
			strconv.Itoa(mergeRequest.ID),
			strconv.Itoa(mergeRequest.IID),
			mergeRequest.State,
			truncate(mergeRequest.Title, width),
			mergeRequest.SourceBranch,
			mergeRequest.TargetBranch,
			mergeRequest.Author.Username,
		)
	}

	return renderTable(table)
}
