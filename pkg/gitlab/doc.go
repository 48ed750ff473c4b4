// Package gitlab provides types, listings, and helpers for reading the
// GitLab REST API.
//
// # Overview
//
// The gitlab package defines the resource types (Group, Project, Issue,
// MergeRequest, ...), the immutable Listing builders that encode each
// endpoint's filters into a canonical query string, the Lister capability
// that executes a Listing, and the Resolver that finds a single item by
// scanning pages. A concrete client is provided by the glclient package.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
//	  "github.com/fivetwenty-io/gitlab-client/pkg/glclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := glclient.NewWithToken(ctx, "gitlab.example.com", "glpat-...")
//	  if err != nil { log.Fatal(err) }
//
//	  issues, err := cli.Issues().ListForProject(
//	    gitlab.NewProjectIssuesListing(gitlab.ProjectByPath("group/project")).
//	      State(gitlab.IssueStateOpened).
//	      Labels("bug", "p1"),
//	  ).List(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = issues
//	}
//
// # Listings
//
// Every setter returns a modified copy, so a base listing can be reused:
//
//	base := gitlab.NewProjectsListing().Archived(false)
//	mine := base.Scope(gitlab.ProjectScopeOwned)     // projects/owned?archived=false
//	all := base.Sort(gitlab.SortAsc)                 // projects?archived=false&sort=asc
//
// Filters are always encoded in the order documented on each listing type.
// Enum setters panic on values outside their declared set.
//
// # Resolution
//
// The API cannot look up a project by namespace and name, or an issue by
// its project-scoped iid, in one call. Resolve scans pages until a
// predicate matches or a short page ends the listing:
//
//	project, found, err := cli.ResolveProject(ctx, "group", "project")
//
// found == false with err == nil means the item does not exist.
package gitlab
