// Package gen emits the contract methods for resolved records.
//
// Generation uses text/template + go/format. Each package with records gets
// one file (reborrow_gen.go by default) holding, per record:
//   - IntoConst: the counterpart built from the receiver's fields
//   - ReborrowMut: the record rebuilt from narrowed fields
//   - Reborrow: the counterpart built from immutably narrowed fields
//   - AsGeneralizedMut / AsGeneralizedRef: forwarding to the two above
//
// Copy records get the same five methods returning the receiver.
package gen
