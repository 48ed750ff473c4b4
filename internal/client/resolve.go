package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// projectMatches accepts a project whose namespace path (short or full)
// equals namespace and whose path or display name equals name.
func projectMatches(namespace, name string) gitlab.Predicate[gitlab.Project] {
	return func(project gitlab.Project) bool {
		inNamespace := project.Namespace.Path == namespace || project.Namespace.FullPath == namespace

		return inNamespace && (project.Path == name || project.Name == name)
	}
}

// ResolveProject implements gitlab.Resolvers.ResolveProject.
func (c *Client) ResolveProject(ctx context.Context, namespace, name string) (*gitlab.Project, bool, error) {
	listing := gitlab.NewProjectsListing().Search(name)

	project, found, err := gitlab.NewResolver[gitlab.Project](c.resolverOptions(namespace+"/"+name)...).Resolve(
		ctx,
		func(int) gitlab.Lister[gitlab.Project] { return c.projects.List(listing) },
		projectMatches(namespace, name),
	)
	if err != nil {
		return nil, false, fmt.Errorf("resolving project %s/%s: %w", namespace, name, err)
	}

	if !found {
		return nil, false, nil
	}

	return &project, true, nil
}

// ResolveIssue implements gitlab.Resolvers.ResolveIssue.
func (c *Client) ResolveIssue(ctx context.Context, namespace, name string, iid int) (*gitlab.Issue, bool, error) {
	project, found, err := c.ResolveProject(ctx, namespace, name)
	if err != nil || !found {
		return nil, false, err
	}

	listing := gitlab.NewProjectIssuesListing(gitlab.ProjectByID(project.ID))

	issue, found, err := gitlab.NewResolver[gitlab.Issue](c.resolverOptions(fmt.Sprintf("%s/%s#%d", namespace, name, iid))...).Resolve(
		ctx,
		func(int) gitlab.Lister[gitlab.Issue] { return c.issues.ListForProject(listing) },
		func(issue gitlab.Issue) bool { return issue.IID == iid },
	)
	if err != nil {
		return nil, false, fmt.Errorf("resolving issue %s/%s#%d: %w", namespace, name, iid, err)
	}

	if !found {
		return nil, false, nil
	}

	return &issue, true, nil
}

// ResolveMergeRequest implements gitlab.Resolvers.ResolveMergeRequest.
func (c *Client) ResolveMergeRequest(ctx context.Context, namespace, name string, iid int) (*gitlab.MergeRequest, bool, error) {
	project, found, err := c.ResolveProject(ctx, namespace, name)
	if err != nil || !found {
		return nil, false, err
	}

	listing := gitlab.NewMergeRequestsListing(gitlab.ProjectByID(project.ID))

	mergeRequest, found, err := gitlab.NewResolver[gitlab.MergeRequest](c.resolverOptions(fmt.Sprintf("%s/%s!%d", namespace, name, iid))...).Resolve(
		ctx,
		func(int) gitlab.Lister[gitlab.MergeRequest] { return c.mergeRequests.List(listing) },
		func(mergeRequest gitlab.MergeRequest) bool { return mergeRequest.IID == iid },
	)
	if err != nil {
		return nil, false, fmt.Errorf("resolving merge request %s/%s!%d: %w", namespace, name, iid, err)
	}

	if !found {
		return nil, false, nil
	}

	return &mergeRequest, true, nil
}

func (c *Client) resolverOptions(target string) []gitlab.ResolverOption {
	opts := []gitlab.ResolverOption{gitlab.WithPageSize(c.resolvePageSize)}

	if c.logger != nil && c.debug {
		opts = append(opts, gitlab.WithObserver(func(state gitlab.ResolveState, page int) {
			c.logger.Debug("Resolve", map[string]interface{}{
				"target": target,
				"state":  state.String(),
				"page":   page,
			})
		}))
	}

	return opts
}
