package gitlab

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/gitlab-client/internal/constants"
)

// PageFactory returns the Lister for a 1-based page.
type PageFactory[T any] func(page int) Lister[T]

// Predicate reports whether an item is the one being resolved.
type Predicate[T any] func(item T) bool

// ResolveState is the state of a single resolution.
type ResolveState int

const (
	// StateSearching means page N is being fetched and scanned.
	StateSearching ResolveState = iota
	// StateFound means an item matched; terminal.
	StateFound
	// StateNotFound means a short page was scanned without a match; terminal.
	StateNotFound
	// StateFailed means a page fetch returned an error; terminal.
	StateFailed
)

func (s ResolveState) String() string {
	switch s {
	case StateSearching:
		return "searching"
	case StateFound:
		return "found"
	case StateNotFound:
		return "not found"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("ResolveState(%d)", int(s))
	}
}

// ResolverOption configures a Resolver.
type ResolverOption func(*resolverSettings)

type resolverSettings struct {
	pageSize int
	maxPages int
	observer func(state ResolveState, page int)
}

// WithPageSize sets the page size used for the scan. Values below 1 keep
// the default.
func WithPageSize(pageSize int) ResolverOption {
	return func(s *resolverSettings) {
		if pageSize > 0 {
			s.pageSize = pageSize
		}
	}
}

// WithMaxPages stops the scan with ErrMaxPagesExceeded after n pages
// without a match. Zero means no limit.
func WithMaxPages(n int) ResolverOption {
	return func(s *resolverSettings) {
		s.maxPages = n
	}
}

// WithObserver registers a callback for every state transition.
func WithObserver(observer func(state ResolveState, page int)) ResolverOption {
	return func(s *resolverSettings) {
		s.observer = observer
	}
}

// Resolver finds the first item matching a predicate by scanning
// successive pages of a listing. It is stateless between calls and safe to
// share.
type Resolver[T any] struct {
	settings resolverSettings
}

// NewResolver creates a resolver using constants.DefaultResolvePageSize
// unless overridden.
func NewResolver[T any](opts ...ResolverOption) *Resolver[T] {
	settings := resolverSettings{pageSize: constants.DefaultResolvePageSize}
	for _, opt := range opts {
		opt(&settings)
	}

	return &Resolver[T]{settings: settings}
}

// PageSize returns the configured page size.
func (r *Resolver[T]) PageSize() int {
	return r.settings.pageSize
}

// Resolve scans pages 1, 2, ... built by factory and returns the first item
// for which match is true.
//
// found is false with a nil error when a page shorter than the page size
// was scanned without a match. A fetch error is returned as is and stops
// the scan; no further page is requested.
//
// Termination relies on the remote honouring offset pagination: only the
// last page may be shorter than the page size. A Lister that always
// returns full pages without a match keeps the scan going until ctx is
// cancelled or WithMaxPages is reached.
func (r *Resolver[T]) Resolve(ctx context.Context, factory PageFactory[T], match Predicate[T]) (T, bool, error) {
	var zero T

	pageSize := r.settings.pageSize

	for page := constants.FirstPage; ; page++ {
		if r.settings.maxPages > 0 && page > r.settings.maxPages {
			r.notify(StateFailed, page)

			return zero, false, fmt.Errorf("%w: %d pages of %d", ErrMaxPagesExceeded, r.settings.maxPages, pageSize)
		}

		err := ctx.Err()
		if err != nil {
			r.notify(StateFailed, page)

			return zero, false, err
		}

		r.notify(StateSearching, page)

		items, err := factory(page).ListPaginated(ctx, page, pageSize)
		if err != nil {
			r.notify(StateFailed, page)

			return zero, false, err
		}

		for _, item := range items {
			if match(item) {
				r.notify(StateFound, page)

				return item, true, nil
			}
		}

		if len(items) < pageSize {
			r.notify(StateNotFound, page)

			return zero, false, nil
		}
	}
}

func (r *Resolver[T]) notify(state ResolveState, page int) {
	if r.settings.observer != nil {
		r.settings.observer(state, page)
	}
}

// Resolve is a shorthand for NewResolver[T](opts...).Resolve.
func Resolve[T any](ctx context.Context, factory PageFactory[T], match Predicate[T], opts ...ResolverOption) (T, bool, error) {
	return NewResolver[T](opts...).Resolve(ctx, factory, match)
}
