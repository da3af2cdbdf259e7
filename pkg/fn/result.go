// Package fn provides a generic Result type and the settle-all join used to
// fan out independent research queries.
package fn

// Result[T] holds either a value or the error that prevented producing one.
type Result[T any] struct {
	val T
	err error
	ok  bool
}

// Ok creates a successful Result.
func Ok[T any](v T) Result[T] {
	return Result[T]{val: v, ok: true}
}

// Err creates a failed Result.  A nil err still yields a failed Result.
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// FromPair creates a Result from a (value, error) pair.
func FromPair[T any](v T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(v)
}

func (r Result[T]) IsOk() bool  { return r.ok }
func (r Result[T]) IsErr() bool { return !r.ok }

// Unwrap returns the value and error.
func (r Result[T]) Unwrap() (T, error) { return r.val, r.err }

// Error returns the failure cause, nil when ok.
func (r Result[T]) Error() error { return r.err }

// UnwrapOr returns the value, or fallback on error.
func (r Result[T]) UnwrapOr(fallback T) T {
	if !r.ok {
		return fallback
	}
	return r.val
}

// UnwrapOrElse returns the value, or the result of recover(err) on error.
func (r Result[T]) UnwrapOrElse(recover func(error) T) T {
	if !r.ok {
		return recover(r.err)
	}
	return r.val
}

// MapResult transforms Result[T] to Result[U].
func MapResult[T, U any](r Result[T], f func(T) U) Result[U] {
	if !r.ok {
		return Err[U](r.err)
	}
	return Ok(f(r.val))
}
