// Package analyze loads Go packages and extracts view record declarations.
//
// It uses golang.org/x/tools/go/packages with AST and go/types. A record is
// a named struct type carrying one of these directives in its doc comment:
//
//	//reborrow:generate const=PointRef
//	//reborrow:generate const=shared.PointRef positional
//	//reborrow:copy
//
// Field policies come from the `reborrow:"recurse"` and `reborrow:"direct"`
// struct tags. Records may also be declared in the configuration file.
//
// Key types:
//   - TypeID: package import path + type name
//   - Record: a declaration with its shape, mode, counterpart and fields
//   - Field: a struct field with its go/types type and policy
//   - Graph: all records and packages seen by one load
package analyze
