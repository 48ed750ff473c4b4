// Package glclient is the entry point for building a gitlab.Client.
//
// It normalizes the endpoint, checks the configuration and wires the HTTP
// transport and token authentication behind the interfaces of the gitlab
// package.
//
// Quick start
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
//
//	  // GITLAB_HOSTNAME and GITLAB_TOKEN from the environment.
//	  cli, err := glclient.NewFromEnv(ctx)
//	  if err != nil { log.Fatal(err) }
//
//	  // Or explicit settings, with retries and a client-side rate limit:
//	  cli, err = glclient.New(ctx, &gitlab.Config{
//	    BaseURL:   "gitlab.example.com",
//	    Token:     "glpat-...",
//	    RetryMax:  3,
//	    RateLimit: 10,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  issue, found, err := cli.ResolveIssue(ctx, "group", "project", 42)
//	  if err != nil { log.Fatal(err) }
//	  if found {
//	    log.Printf("issue id %d", issue.ID)
//	  }
//	}
//
// Accepted endpoints
//
// gitlab.example.com, https://gitlab.example.com/ and
// https://gitlab.example.com/api/v4 all resolve to the same API root.
//
// TLS
//
// SkipTLSVerify is rejected with gitlab.ErrSkipTLSOnlyInDev unless
// GITLAB_CLIENT_DEV_MODE is "true" or "1".
package glclient
