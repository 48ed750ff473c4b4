package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/gitlab-client/internal/http"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// pagedLister runs a listing against an endpoint that honours page and
// per_page.
type pagedLister[T any] struct {
	httpClient *http.Client
	listing    gitlab.Listing
	// what names the resource in error messages, e.g. "groups".
	what string
}

func newPagedLister[T any](httpClient *http.Client, listing gitlab.Listing, what string) *pagedLister[T] {
	return &pagedLister[T]{httpClient: httpClient, listing: listing, what: what}
}

// List implements gitlab.Lister.List.
func (l *pagedLister[T]) List(ctx context.Context) ([]T, error) {
	return l.fetch(ctx, 0, 0)
}

// ListPaginated implements gitlab.Lister.ListPaginated.
func (l *pagedLister[T]) ListPaginated(ctx context.Context, page, pageSize int) ([]T, error) {
	err := gitlab.ValidatePage(page, pageSize)
	if err != nil {
		return nil, err
	}

	return l.fetch(ctx, page, pageSize)
}

func (l *pagedLister[T]) fetch(ctx context.Context, page, pageSize int) ([]T, error) {
	resp, err := l.httpClient.GetPage(ctx, l.listing.Query(), page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", l.what, err)
	}

	return decodeList[T](resp.Body, l.what)
}

// newUnpagedLister binds a listing whose endpoint returns everything in one
// response. Pages are cut from that response.
func newUnpagedLister[T any](httpClient *http.Client, listing gitlab.Listing, what string) gitlab.ListFunc[T] {
	return func(ctx context.Context) ([]T, error) {
		resp, err := httpClient.Get(ctx, listing.Query(), nil)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", what, err)
		}

		return decodeList[T](resp.Body, what)
	}
}

func decodeList[T any](body []byte, what string) ([]T, error) {
	items := []T{}

	err := json.Unmarshal(body, &items)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", what, err)
	}

	return items, nil
}

// getOne fetches a single resource.
func getOne[T any](ctx context.Context, httpClient *http.Client, listing gitlab.Listing, what string) (*T, error) {
	resp, err := httpClient.Get(ctx, listing.Query(), nil)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", what, err)
	}

	var item T

	err = json.Unmarshal(resp.Body, &item)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", what, err)
	}

	return &item, nil
}
