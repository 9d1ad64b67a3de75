package plan

import (
	"go/types"

	"reborrow-generator/internal/analyze"
	"reborrow-generator/internal/diagnostic"
)

//go:generate go tool stringer -type=Dispatch -linecomment -output=dispatch_string.go

// ViewPkgPath is the import path of the view contract package.
const ViewPkgPath = "reborrow-generator/view"

// Contract method names.
const (
	MethodReborrow    = "Reborrow"
	MethodReborrowMut = "ReborrowMut"
	MethodIntoConst   = "IntoConst"
)

// Dispatch is how a field is carried through the three operations.
type Dispatch int

const (
	// DispatchDirect copies the field unchanged.
	DispatchDirect Dispatch = iota // direct
	// DispatchMethod calls the field's own contract methods.
	DispatchMethod // method
	// DispatchOption maps a view.Option through its payload's methods.
	DispatchOption // option
	// DispatchResult maps a view.Result through whichever variant is held.
	DispatchResult // result
	// DispatchPointer lends a plain pointer as a view.Ref.
	DispatchPointer // pointer
)

// ResolvedPlan is the final output of the resolution pipeline.
// It contains everything needed for code generation.
type ResolvedPlan struct {
	// Records are the resolved records, sorted by package path then name.
	Records []ResolvedRecord
	// Graph holds the analyzed packages, for package names and directories.
	Graph *analyze.Graph
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// ConstRef is a resolved counterpart type reference.
type ConstRef struct {
	// PkgPath is empty when the counterpart lives in the record's package.
	PkgPath string
	// PkgName is the name the counterpart's package is imported under.
	PkgName string
	Name    string
	// Obj is the counterpart's type name, nil when it could not be looked up.
	Obj *types.TypeName
}

// Qualified returns the counterpart as written in the record's package.
func (c ConstRef) Qualified() string {
	if c.PkgPath == "" {
		return c.Name
	}

	return c.PkgName + "." + c.Name
}

// ResolvedRecord is a record ready for generation.
type ResolvedRecord struct {
	Record *analyze.Record
	Const  ConstRef
	Fields []ResolvedField
}

// ResolvedField is a field with its dispatch decided.
type ResolvedField struct {
	analyze.Field
	Dispatch Dispatch
	// RefArgs are the Reborrow results of the payload types of an option
	// (one) or result (two) field.
	RefArgs []types.Type
	// ConstArgs are the IntoConst results of the same payload types.
	ConstArgs []types.Type
}

// ByPackage groups the plan's records by package path.
func (p *ResolvedPlan) ByPackage() map[string][]ResolvedRecord {
	out := make(map[string][]ResolvedRecord)
	for _, r := range p.Records {
		out[r.Record.ID.PkgPath] = append(out[r.Record.ID.PkgPath], r)
	}

	return out
}
