package content

import "errors"

// Source tells where a snapshot collection came from.
type Source string

const (
	SourceStore    Source = "store"
	SourceFallback Source = "fallback"
)

// Fetch is the outcome of one read against the content store: rows, empty,
// or failed. Build it with Rows, Empty or Failed.
type Fetch[T any] struct {
	value T
	err   error
	empty bool
}

// Rows is a read that returned usable data.
func Rows[T any](v T) Fetch[T] { return Fetch[T]{value: v} }

// Empty is a read that succeeded with nothing in it.
func Empty[T any]() Fetch[T] { return Fetch[T]{empty: true} }

// Failed is a read that errored.
func Failed[T any](err error) Fetch[T] {
	if err == nil {
		err = errors.New("read failed")
	}
	return Fetch[T]{err: err}
}

// Err returns the read error, if any.
func (f Fetch[T]) Err() error { return f.err }

// IsEmpty reports whether the store answered with no rows.
func (f Fetch[T]) IsEmpty() bool { return f.empty }

// Resolve picks the fetched value, or fallback when the read failed or came
// back empty. The two are never merged.
func Resolve[T any](f Fetch[T], fallback T) (T, Source) {
	if f.err != nil || f.empty {
		return fallback, SourceFallback
	}
	return f.value, SourceStore
}

// profileFetch classifies a profile read; a nil row is empty.
func profileFetch(p *Profile, err error) Fetch[Profile] {
	switch {
	case err != nil:
		return Failed[Profile](err)
	case p == nil:
		return Empty[Profile]()
	default:
		return Rows(*p)
	}
}

// listFetch classifies a list read; zero rows is empty.
func listFetch[T any](rows []T, err error) Fetch[[]T] {
	switch {
	case err != nil:
		return Failed[[]T](err)
	case len(rows) == 0:
		return Empty[[]T]()
	default:
		return Rows(rows)
	}
}
