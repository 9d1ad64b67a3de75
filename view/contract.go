package view

// Reborrower produces an immutable view of the receiver without consuming it.
type Reborrower[T any] interface {
	Reborrow() T
}

// MutReborrower produces a mutable view of the receiver. The receiver must
// stay unused while the returned view is alive.
type MutReborrower[T any] interface {
	ReborrowMut() T
}

// ConstConverter consumes the receiver and returns its immutable counterpart.
type ConstConverter[T any] interface {
	IntoConst() T
}

// GeneralizedRef is implemented by anything that can lend an immutable view,
// so callers can accept plain handles and generated views alike.
type GeneralizedRef[T any] interface {
	AsGeneralizedRef() T
}

// GeneralizedMut is the mutable counterpart of GeneralizedRef.
type GeneralizedMut[T any] interface {
	AsGeneralizedMut() T
}

// View is the full contract of a mutable view V whose immutable form is C.
type View[V, C any] interface {
	Reborrower[C]
	MutReborrower[V]
	ConstConverter[C]
	GeneralizedRef[C]
	GeneralizedMut[V]
}
