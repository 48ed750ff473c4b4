package gitlab

import (
	"context"
	"fmt"
)

// Lister executes a Listing against the remote API.
//
// List fetches one result using the listing's own query and the server's
// default page size. ListPaginated fetches exactly one 1-based page of at
// most pageSize items; only the final page may be shorter. Each call is one
// round trip; a Lister does not retry or cache.
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
	ListPaginated(ctx context.Context, page, pageSize int) ([]T, error)
}

// ListFunc adapts a whole-result fetch into a Lister for endpoints that
// ignore page parameters. ListPaginated slices the full result.
type ListFunc[T any] func(ctx context.Context) ([]T, error)

// List implements Lister.
func (f ListFunc[T]) List(ctx context.Context) ([]T, error) {
	return f(ctx)
}

// ListPaginated implements Lister via PaginateByList.
func (f ListFunc[T]) ListPaginated(ctx context.Context, page, pageSize int) ([]T, error) {
	return PaginateByList(ctx, f, page, pageSize)
}

// PaginateByList serves one page out of a full, unpaginated result. Pages
// past the end are empty, so a scan over them terminates.
func PaginateByList[T any](ctx context.Context, list func(context.Context) ([]T, error), page, pageSize int) ([]T, error) {
	err := ValidatePage(page, pageSize)
	if err != nil {
		return nil, err
	}

	items, err := list(ctx)
	if err != nil {
		return nil, err
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}, nil
	}

	end := min(start+pageSize, len(items))

	return items[start:end], nil
}

// ValidatePage rejects page numbers and sizes below 1.
func ValidatePage(page, pageSize int) error {
	if page < 1 {
		return fmt.Errorf("%w: page %d", ErrInvalidPage, page)
	}

	if pageSize < 1 {
		return fmt.Errorf("%w: page size %d", ErrInvalidPage, pageSize)
	}

	return nil
}
