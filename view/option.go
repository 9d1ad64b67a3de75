package view

// Option holds either a value or nothing.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the held value and whether there was one.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome reports whether a value is held.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone reports whether the Option is empty.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// OrElse returns the held value, or fallback when empty.
func (o Option[T]) OrElse(fallback T) T {
	if !o.ok {
		return fallback
	}

	return o.value
}

// ReborrowOption narrows the held value with Reborrow. U is the immutable
// view type of T and usually has to be spelled out:
//
//	ro := view.ReborrowOption[view.Ref[int]](o)
func ReborrowOption[U any, T Reborrower[U]](o Option[T]) Option[U] {
	if !o.ok {
		return Option[U]{}
	}

	return Option[U]{value: o.value.Reborrow(), ok: true}
}

// ReborrowMutOption narrows the held value with ReborrowMut.
func ReborrowMutOption[T MutReborrower[T]](o Option[T]) Option[T] {
	if !o.ok {
		return Option[T]{}
	}

	return Option[T]{value: o.value.ReborrowMut(), ok: true}
}

// IntoConstOption converts the held value with IntoConst.
func IntoConstOption[U any, T ConstConverter[U]](o Option[T]) Option[U] {
	if !o.ok {
		return Option[U]{}
	}

	return Option[U]{value: o.value.IntoConst(), ok: true}
}
