// Package result carries the outcome of one pipeline invocation.
//
// A pipeline never panics or returns a bare error past its boundary; callers
// inspect the tagged variant and render a uniform "no usable output" state on
// failure. The zero value is a failure with no cause.
package result

// Result is a tagged success/failure value produced by a pipeline.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Ok wraps a successfully produced value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Fail wraps a failure cause. A nil err still yields a failed result.
func Fail[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// OK reports whether the pipeline produced a usable value.
func (r Result[T]) OK() bool { return r.ok }

// Value returns the produced value; the zero value on failure.
func (r Result[T]) Value() T { return r.value }

// Err returns the failure cause, nil on success.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	return r.err
}
