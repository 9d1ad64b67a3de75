package view

import "fmt"

// Ref is a shared handle to a T. It exposes no way to write through it.
type Ref[T any] struct {
	p *T
}

// RefOf wraps p in a shared handle.
func RefOf[T any](p *T) Ref[T] {
	return Ref[T]{p: p}
}

// Get returns a copy of the referenced value. It panics if the handle is nil.
func (r Ref[T]) Get() T {
	return *r.p
}

// IsNil reports whether the handle points nowhere.
func (r Ref[T]) IsNil() bool {
	return r.p == nil
}

// Aliases reports whether the handle points at p.
func (r Ref[T]) Aliases(p *T) bool {
	return r.p == p
}

// Same reports whether both handles point at the same memory.
func (r Ref[T]) Same(other Ref[T]) bool {
	return r.p == other.p
}

func (r Ref[T]) String() string {
	if r.p == nil {
		return "&<nil>"
	}

	return fmt.Sprintf("&%v", *r.p)
}

// Reborrow returns the handle itself.
func (r Ref[T]) Reborrow() Ref[T] {
	return r
}

// ReborrowMut returns the handle itself; a shared handle never gains write access.
func (r Ref[T]) ReborrowMut() Ref[T] {
	return r
}

// IntoConst returns the handle itself.
func (r Ref[T]) IntoConst() Ref[T] {
	return r
}

func (r Ref[T]) AsGeneralizedRef() Ref[T] {
	return r
}

func (r Ref[T]) AsGeneralizedMut() Ref[T] {
	return r
}

// Mut is an exclusive handle to a T.
type Mut[T any] struct {
	p *T
}

// MutOf wraps p in an exclusive handle.
func MutOf[T any](p *T) Mut[T] {
	return Mut[T]{p: p}
}

// Get returns a copy of the referenced value. It panics if the handle is nil.
func (m Mut[T]) Get() T {
	return *m.p
}

// Set stores v in the referenced memory.
func (m Mut[T]) Set(v T) {
	*m.p = v
}

// Ptr returns the underlying pointer.
func (m Mut[T]) Ptr() *T {
	return m.p
}

// IsNil reports whether the handle points nowhere.
func (m Mut[T]) IsNil() bool {
	return m.p == nil
}

// Aliases reports whether the handle points at p.
func (m Mut[T]) Aliases(p *T) bool {
	return m.p == p
}

func (m Mut[T]) String() string {
	if m.p == nil {
		return "&mut <nil>"
	}

	return fmt.Sprintf("&mut %v", *m.p)
}

// Reborrow returns a shared handle to the same memory.
func (m Mut[T]) Reborrow() Ref[T] {
	return Ref[T]{p: m.p}
}

// ReborrowMut returns an exclusive handle to the same memory.
func (m Mut[T]) ReborrowMut() Mut[T] {
	return Mut[T]{p: m.p}
}

// IntoConst gives up write access and returns a shared handle.
func (m Mut[T]) IntoConst() Ref[T] {
	return Ref[T]{p: m.p}
}

func (m Mut[T]) AsGeneralizedRef() Ref[T] {
	return m.Reborrow()
}

func (m Mut[T]) AsGeneralizedMut() Mut[T] {
	return m.ReborrowMut()
}

// GeneralizeAsRef lends an ordinary pointer as a shared handle.
func GeneralizeAsRef[T any](p *T) Ref[T] {
	return Ref[T]{p: p}
}

// GeneralizeAsMut lends an ordinary pointer as an exclusive handle.
func GeneralizeAsMut[T any](p *T) Mut[T] {
	return Mut[T]{p: p}
}
