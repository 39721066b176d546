package dashboard

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rpupo63/catalog-admin/catalog"
)

// Query is the read state of a list. Only paged lists use Limit and Offset,
// and only the product list uses Filter and Model.
type Query struct {
	Paged  bool
	Limit  int
	Offset int
	Filter catalog.ProductFilter
	// Model, when non-empty, overrides Filter entirely.
	Model string
}

// Fetcher reads one list for the given query.
type Fetcher[T any] func(ctx context.Context, q Query) ([]T, error)

// ListController owns the rows a screen renders. Rows only change when a load
// succeeds; a failed load keeps the previous rows.
type ListController[T Entity] struct {
	fetch   Fetcher[T]
	sortKey func(T) int
	logger  zerolog.Logger

	mu      sync.Mutex
	query   Query
	items   []T
	loading bool
	loaded  bool
	// seq identifies the most recent load; only that load may apply its rows.
	seq uint64
}

func NewListController[T Entity](fetch Fetcher[T], sortKey func(T) int, query Query, logger zerolog.Logger) *ListController[T] {
	return &ListController[T]{
		fetch:   fetch,
		sortKey: sortKey,
		query:   query,
		logger:  logger,
	}
}

// Load fetches the list for the current query. Loading is true until the
// newest outstanding load finishes. A load overtaken by a newer one is
// discarded without error. On failure the error is logged, the previous rows
// stay, and the error is returned.
func (l *ListController[T]) Load(ctx context.Context) error {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	query := l.query
	l.loading = true
	l.mu.Unlock()

	items, err := l.fetch(ctx, query)

	l.mu.Lock()
	defer l.mu.Unlock()

	if seq != l.seq {
		l.logger.Debug().Uint64("seq", seq).Uint64("latest", l.seq).Msg("discarding stale list response")
		return nil
	}
	l.loading = false

	if err != nil {
		l.logger.Error().Err(err).
			Int("offset", query.Offset).
			Str("model", query.Model).
			Msg("error fetching list")
		return err
	}

	if l.sortKey != nil {
		sort.SliceStable(items, func(i, j int) bool {
			return l.sortKey(items[i]) < l.sortKey(items[j])
		})
	}
	l.items = items
	l.loaded = true
	return nil
}

// Items returns a copy of the current rows.
func (l *ListController[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Find returns the current row with the given id.
func (l *ListController[T]) Find(id int64) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, item := range l.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (l *ListController[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Loaded reports whether any load has succeeded yet.
func (l *ListController[T]) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

func (l *ListController[T]) Query() Query {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

// Range returns the 1-based positions of the first and last row shown:
// from = offset+1, to = offset+len(rows).
func (l *ListController[T]) Range() (from, to int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query.Offset + 1, l.query.Offset + len(l.items)
}

// CanPrevious is false on the first page and while loading.
func (l *ListController[T]) CanPrevious() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query.Paged && l.query.Offset > 0 && !l.loading
}

// CanNext is false only while loading. The total is unknown, so Next may
// walk past the last page and show an empty one.
func (l *ListController[T]) CanNext() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query.Paged && !l.loading
}

// Next advances one page and loads it. It does nothing when CanNext is false.
func (l *ListController[T]) Next(ctx context.Context) error {
	if !l.CanNext() {
		return nil
	}
	l.mutate(func(q *Query) { q.Offset += q.Limit })
	return l.Load(ctx)
}

// Previous goes back one page, never below offset 0, and loads it.
func (l *ListController[T]) Previous(ctx context.Context) error {
	if !l.CanPrevious() {
		return nil
	}
	l.mutate(func(q *Query) {
		q.Offset -= q.Limit
		if q.Offset < 0 {
			q.Offset = 0
		}
	})
	return l.Load(ctx)
}

// Search sets the dropdown filters and the model text together, returns to
// the first page and loads.
func (l *ListController[T]) Search(ctx context.Context, filter catalog.ProductFilter, model string) error {
	l.mutate(func(q *Query) {
		q.Filter = catalog.ProductFilter{
			MainCat: strings.TrimSpace(filter.MainCat),
			SubCat:  strings.TrimSpace(filter.SubCat),
			Brand:   strings.TrimSpace(filter.Brand),
		}
		q.Model = strings.TrimSpace(model)
		q.Offset = 0
	})
	return l.Load(ctx)
}

// ClearFilters drops every filter and the search text and reloads the first
// unfiltered page.
func (l *ListController[T]) ClearFilters(ctx context.Context) error {
	l.mutate(func(q *Query) {
		q.Filter = catalog.ProductFilter{}
		q.Model = ""
		q.Offset = 0
	})
	return l.Load(ctx)
}

func (l *ListController[T]) mutate(fn func(q *Query)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(&l.query)
}
