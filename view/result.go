package view

// Result holds either a success value T or an error value E.
type Result[T, E any] struct {
	value T
	err   E
	ok    bool
}

// Ok returns a successful Result.
func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{value: v, ok: true}
}

// Err returns a failed Result.
func Err[T, E any](e E) Result[T, E] {
	return Result[T, E]{err: e}
}

// IsOk reports whether the Result holds a success value.
func (r Result[T, E]) IsOk() bool {
	return r.ok
}

// Value returns the success value and true, or the zero T and false.
func (r Result[T, E]) Value() (T, bool) {
	return r.value, r.ok
}

// ErrValue returns the error value and true, or the zero E and false.
func (r Result[T, E]) ErrValue() (E, bool) {
	return r.err, !r.ok
}

// ReborrowResult narrows whichever variant is present with Reborrow.
func ReborrowResult[U, F any, T Reborrower[U], E Reborrower[F]](r Result[T, E]) Result[U, F] {
	if !r.ok {
		return Result[U, F]{err: r.err.Reborrow()}
	}

	return Result[U, F]{value: r.value.Reborrow(), ok: true}
}

// ReborrowMutResult narrows whichever variant is present with ReborrowMut.
func ReborrowMutResult[T MutReborrower[T], E MutReborrower[E]](r Result[T, E]) Result[T, E] {
	if !r.ok {
		return Result[T, E]{err: r.err.ReborrowMut()}
	}

	return Result[T, E]{value: r.value.ReborrowMut(), ok: true}
}

// IntoConstResult converts whichever variant is present with IntoConst.
func IntoConstResult[U, F any, T ConstConverter[U], E ConstConverter[F]](r Result[T, E]) Result[U, F] {
	if !r.ok {
		return Result[U, F]{err: r.err.IntoConst()}
	}

	return Result[U, F]{value: r.value.IntoConst(), ok: true}
}
