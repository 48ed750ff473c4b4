package gitlab

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/gitlab-client/internal/constants"
)

// PaginationOptions controls FetchAll and StreamPages.
type PaginationOptions struct {
	// PageSize is the per_page value; defaults to MaxPageSize.
	PageSize int
	// MaxPages stops after this many pages when > 0.
	MaxPages int
}

// DefaultPaginationOptions returns options that fetch every page at the
// largest page size the server accepts.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{
		PageSize: constants.MaxPageSize,
	}
}

func (o *PaginationOptions) normalized() PaginationOptions {
	if o == nil {
		return *DefaultPaginationOptions()
	}

	opts := *o
	if opts.PageSize < 1 {
		opts.PageSize = constants.MaxPageSize
	}

	return opts
}

// FetchAll collects every page produced by factory, stopping at the first
// page shorter than the page size or after MaxPages pages.
func FetchAll[T any](ctx context.Context, factory PageFactory[T], options *PaginationOptions) ([]T, error) {
	opts := options.normalized()

	var all []T

	for page := constants.FirstPage; opts.MaxPages == 0 || page <= opts.MaxPages; page++ {
		items, err := factory(page).ListPaginated(ctx, page, opts.PageSize)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", page, err)
		}

		all = append(all, items...)

		if len(items) < opts.PageSize {
			break
		}
	}

	return all, nil
}

// PageResult is one page delivered by StreamPages.
type PageResult[T any] struct {
	Page  int
	Items []T
	Err   error
}

// StreamPages fetches pages in a goroutine and sends each one on the
// returned channel, which is closed after the last page, the first error,
// or cancellation of ctx.
func StreamPages[T any](ctx context.Context, factory PageFactory[T], options *PaginationOptions) <-chan PageResult[T] {
	opts := options.normalized()
	results := make(chan PageResult[T])

	go func() {
		defer close(results)

		for page := constants.FirstPage; opts.MaxPages == 0 || page <= opts.MaxPages; page++ {
			items, err := factory(page).ListPaginated(ctx, page, opts.PageSize)

			select {
			case results <- PageResult[T]{Page: page, Items: items, Err: err}:
			case <-ctx.Done():
				return
			}

			if err != nil || len(items) < opts.PageSize {
				return
			}
		}
	}()

	return results
}
