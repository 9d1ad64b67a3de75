// Package view defines the reborrowing contract for view types and its
// built-in instances.
//
// A view is a small value that lends access to memory it does not own. A
// mutable view can be narrowed in three ways:
//   - Reborrow: an immutable view that leaves the receiver usable.
//   - ReborrowMut: a mutable view of the same memory. While the result is in
//     use the receiver must not be touched.
//   - IntoConst: consume the receiver and return its immutable counterpart.
//
// Built-in instances:
//   - Ref[T]: a shared, read-only handle to a *T.
//   - Mut[T]: an exclusive, read/write handle to a *T.
//   - Option[T] and Result[T, E] via the ReborrowOption/ReborrowResult
//     families of functions, which recurse into the present payload only.
//
// Go has no borrow checker. The exclusivity rule for ReborrowMut is a
// convention callers follow; nothing in this package tracks borrows at
// runtime. Every method uses a value receiver: a copy of a view aliases the
// same memory as the original, so narrowing a copy narrows the receiver.
//
// User-defined views get the same methods from cmd/reborrow-gen.
package view
