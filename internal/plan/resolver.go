package plan

import (
	"fmt"
	"go/types"
	"log/slog"
	"sort"
	"strings"

	"reborrow-generator/internal/analyze"
	"reborrow-generator/internal/diagnostic"
	"reborrow-generator/internal/match"
)

// Config holds configuration for the resolution process.
type Config struct {
	// Strict checks each record against its counterpart field by field.
	// Without it a mismatch only shows up when the generated code is compiled.
	Strict bool
	// Logger receives progress messages. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() Config {
	return Config{}
}

type constResult struct {
	ref ConstRef
	ok  bool
}

// Resolver performs the resolution pipeline.
type Resolver struct {
	graph  *analyze.Graph
	config Config
	logger *slog.Logger
	diags  diagnostic.Diagnostics
	consts map[analyze.TypeID]constResult
}

// NewResolver creates a new Resolver.
func NewResolver(graph *analyze.Graph, config Config) *Resolver {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{
		graph:  graph,
		config: config,
		logger: logger,
		consts: make(map[analyze.TypeID]constResult),
	}
}

// Resolve classifies every record of the graph. The returned plan is never
// nil; the error summarizes the error diagnostics, if any. Records with
// errors are left out of the plan.
func (r *Resolver) Resolve() (*ResolvedPlan, error) {
	p := &ResolvedPlan{Graph: r.graph}
	p.Diagnostics.Merge(r.graph.Diagnostics)

	ids := make([]analyze.TypeID, 0, len(r.graph.Records))
	for id := range r.graph.Records {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		if ids[i].PkgPath != ids[j].PkgPath {
			return ids[i].PkgPath < ids[j].PkgPath
		}

		return ids[i].Name < ids[j].Name
	})

	for _, id := range ids {
		rec := r.graph.Records[id]

		rr, ok := r.resolveRecord(rec)
		if !ok {
			continue
		}

		r.logger.Debug("record resolved", "record", id.String(), "mode", rec.Mode, "counterpart", rr.Const.Qualified())
		p.Records = append(p.Records, rr)
	}

	p.Diagnostics.Merge(r.diags)

	return p, p.Diagnostics.Error()
}

func (r *Resolver) resolveRecord(rec *analyze.Record) (ResolvedRecord, bool) {
	rr := ResolvedRecord{Record: rec}

	cref, ok := r.resolveConst(rec)
	if !ok {
		return rr, false
	}

	rr.Const = cref
	valid := true

	for _, f := range rec.Fields {
		rf, ok := r.classify(rec, f)
		valid = valid && ok
		rr.Fields = append(rr.Fields, rf)
	}

	if r.config.Strict && rec.Mode == analyze.ModeFields {
		valid = r.checkCounterpart(rec, cref) && valid
	}

	return rr, valid
}

// resolveConst resolves a record's counterpart once and remembers the
// outcome, so diagnostics are not repeated when other records refer to it.
func (r *Resolver) resolveConst(rec *analyze.Record) (ConstRef, bool) {
	if c, ok := r.consts[rec.ID]; ok {
		return c.ref, c.ok
	}

	ref, ok := r.lookupConst(rec)
	r.consts[rec.ID] = constResult{ref: ref, ok: ok}

	return ref, ok
}

func (r *Resolver) lookupConst(rec *analyze.Record) (ConstRef, bool) {
	if rec.Mode == analyze.ModeCopy {
		return ConstRef{Name: rec.ID.Name, Obj: rec.Named.Obj()}, true
	}

	if rec.Const == "" {
		r.report(diagnostic.SeverityError, diagnostic.CodeMissingCounterpart, rec, "",
			"counterpart type required: add const=<Type> to the directive", nil)

		return ConstRef{}, false
	}

	pkg := rec.Pkg.Types
	qual, name := "", rec.Const

	if i := strings.LastIndex(rec.Const, "."); i >= 0 {
		qual, name = rec.Const[:i], rec.Const[i+1:]
	}

	if qual == "" || qual == pkg.Path() || qual == pkg.Name() {
		obj := lookupTypeName(pkg, name)
		if obj == nil && r.config.Strict {
			r.report(diagnostic.SeverityError, diagnostic.CodeUnknownCounterpart, rec, "",
				fmt.Sprintf("counterpart %s is not declared in %s", name, pkg.Path()),
				match.Suggest(name, typeNames(pkg), match.DefaultThreshold))

			return ConstRef{}, false
		}

		return ConstRef{Name: name, Obj: obj}, true
	}

	var imported []string

	for _, imp := range pkg.Imports() {
		if imp.Path() != qual && imp.Name() != qual {
			imported = append(imported, imp.Name())
			continue
		}

		obj := lookupTypeName(imp, name)
		if obj == nil && r.config.Strict {
			r.report(diagnostic.SeverityError, diagnostic.CodeUnknownCounterpart, rec, "",
				fmt.Sprintf("counterpart %s is not declared in %s", name, imp.Path()),
				match.Suggest(name, typeNames(imp), match.DefaultThreshold))

			return ConstRef{}, false
		}

		return ConstRef{PkgPath: imp.Path(), PkgName: imp.Name(), Name: name, Obj: obj}, true
	}

	r.report(diagnostic.SeverityError, diagnostic.CodeUnknownCounterpart, rec, "",
		fmt.Sprintf("counterpart package %q is not imported by %s", qual, pkg.Path()),
		match.Suggest(qual, imported, match.DefaultThreshold))

	return ConstRef{}, false
}

// classify decides the dispatch of one field.
func (r *Resolver) classify(rec *analyze.Record, f analyze.Field) (ResolvedField, bool) {
	rf := ResolvedField{Field: f, Dispatch: DispatchDirect}

	if rec.Mode == analyze.ModeCopy {
		if r.containsExclusive(f.Type, make(map[types.Type]bool)) {
			r.report(diagnostic.SeverityError, diagnostic.CodeCopyNotDuplicable, rec, f.Name,
				fmt.Sprintf("%s holds an exclusive view and cannot be duplicated", f.Type), nil)

			return rf, false
		}

		return rf, true
	}

	if f.Policy == analyze.PolicyDirect {
		if r.containsExclusive(f.Type, make(map[types.Type]bool)) {
			r.report(diagnostic.SeverityWarning, diagnostic.CodeDirectExclusive, rec, f.Name,
				"direct field duplicates an exclusive view; mark it recurse", nil)
		}

		return rf, true
	}

	if named, ok := f.Type.(*types.Named); ok {
		switch {
		case isViewNamed(named, "Option"):
			rf.Dispatch = DispatchOption
			return rf, r.payloadTargets(rec, &rf, named)
		case isViewNamed(named, "Result"):
			rf.Dispatch = DispatchResult
			return rf, r.payloadTargets(rec, &rf, named)
		}
	}

	if _, ok := f.Type.(*types.Pointer); ok {
		rf.Dispatch = DispatchPointer
		return rf, true
	}

	if r.conforms(f.Type) {
		rf.Dispatch = DispatchMethod
		return rf, true
	}

	r.report(diagnostic.SeverityError, diagnostic.CodeNonconformantField, rec, f.Name,
		fmt.Sprintf("%s does not implement %s, %s and %s", f.Type, MethodReborrow, MethodReborrowMut, MethodIntoConst), nil)

	return rf, false
}

// payloadTargets fills in the Reborrow and IntoConst result types of an
// option or result field's payloads.
func (r *Resolver) payloadTargets(rec *analyze.Record, rf *ResolvedField, named *types.Named) bool {
	args := named.TypeArgs()
	if args == nil {
		return false
	}

	for i := range args.Len() {
		payload := args.At(i)

		refT, okRef := r.target(payload, MethodReborrow)
		mutT, okMut := r.target(payload, MethodReborrowMut)
		constT, okConst := r.target(payload, MethodIntoConst)

		if !okRef || !okMut || !okConst {
			r.report(diagnostic.SeverityError, diagnostic.CodeNonconformantField, rec, rf.Name,
				fmt.Sprintf("payload %s does not implement %s, %s and %s with value receivers",
					payload, MethodReborrow, MethodReborrowMut, MethodIntoConst), nil)

			return false
		}

		if !types.Identical(mutT, payload) {
			r.report(diagnostic.SeverityError, diagnostic.CodeNonconformantField, rec, rf.Name,
				fmt.Sprintf("payload %s: %s returns %s, want %s", payload, MethodReborrowMut, mutT, payload), nil)

			return false
		}

		rf.RefArgs = append(rf.RefArgs, refT)
		rf.ConstArgs = append(rf.ConstArgs, constT)
	}

	return true
}

// target returns the result type of a contract method on t. Records of the
// current run have no methods yet; their results follow from the record.
func (r *Resolver) target(t types.Type, method string) (types.Type, bool) {
	if named, ok := t.(*types.Named); ok {
		if rec := r.graph.RecordOf(named); rec != nil {
			if method == MethodReborrowMut || rec.Mode == analyze.ModeCopy {
				return t, true
			}

			cref, ok := r.resolveConst(rec)
			if !ok || cref.Obj == nil {
				return nil, false
			}

			return instantiate(cref.Obj, named.TypeArgs())
		}
	}

	return methodResult(t, method, false)
}

// conforms reports whether a field's type can be narrowed with method calls.
func (r *Resolver) conforms(t types.Type) bool {
	if named, ok := t.(*types.Named); ok && r.graph.RecordOf(named) != nil {
		return true
	}

	for _, m := range []string{MethodReborrow, MethodReborrowMut, MethodIntoConst} {
		if _, ok := methodResult(t, m, true); !ok {
			return false
		}
	}

	return true
}

// containsExclusive reports whether duplicating a value of type t would
// duplicate a view.Mut or a mutable record.
func (r *Resolver) containsExclusive(t types.Type, seen map[types.Type]bool) bool {
	switch tt := t.(type) {
	case *types.Named:
		if isViewNamed(tt, "Mut") {
			return true
		}

		if rec := r.graph.RecordOf(tt); rec != nil && rec.Mode == analyze.ModeFields {
			return true
		}

		if seen[tt] {
			return false
		}

		seen[tt] = true

		return r.containsExclusive(tt.Underlying(), seen)
	case *types.Struct:
		for i := range tt.NumFields() {
			if r.containsExclusive(tt.Field(i).Type(), seen) {
				return true
			}
		}
	case *types.Array:
		return r.containsExclusive(tt.Elem(), seen)
	}

	return false
}

// checkCounterpart compares a record with its counterpart field by field.
func (r *Resolver) checkCounterpart(rec *analyze.Record, cref ConstRef) bool {
	mismatch := func(field, msg string, suggestions []string) bool {
		r.report(diagnostic.SeverityError, diagnostic.CodeCounterpartMismatch, rec, field, msg, suggestions)
		return false
	}

	if cref.Obj == nil {
		return mismatch("", fmt.Sprintf("counterpart %s not found", cref.Qualified()), nil)
	}

	named, ok := cref.Obj.Type().(*types.Named)
	if !ok {
		return mismatch("", fmt.Sprintf("counterpart %s is not a named type", cref.Qualified()), nil)
	}

	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return mismatch("", fmt.Sprintf("counterpart %s is not a struct", cref.Qualified()), nil)
	}

	if n := named.TypeParams().Len(); n != len(rec.TypeParams) {
		return mismatch("", fmt.Sprintf("record has %d type parameters, counterpart %s has %d",
			len(rec.TypeParams), cref.Qualified(), n), nil)
	}

	if st.NumFields() != len(rec.Fields) {
		return mismatch("", fmt.Sprintf("record has %d fields, counterpart %s has %d",
			len(rec.Fields), cref.Qualified(), st.NumFields()), nil)
	}

	names := make([]string, st.NumFields())
	for i := range st.NumFields() {
		names[i] = st.Field(i).Name()
	}

	valid := true

	for i, f := range rec.Fields {
		other := st.Field(i)

		if cref.PkgPath != "" && !other.Exported() {
			valid = mismatch(f.Name, fmt.Sprintf("counterpart field %s is unexported in %s", other.Name(), cref.PkgPath), nil)
			continue
		}

		if rec.Shape == analyze.ShapeNamed && other.Name() != f.Name {
			valid = mismatch(f.Name, fmt.Sprintf("counterpart field %d is %s", i, other.Name()),
				match.Suggest(f.Name, names, match.DefaultThreshold))
		}
	}

	return valid
}

func (r *Resolver) report(sev diagnostic.Severity, code string, rec *analyze.Record, field, msg string, suggestions []string) {
	pos := rec.Pos
	if f, ok := rec.Field(field); ok && f.Pos.IsValid() {
		pos = f.Pos
	}

	r.diags.Add(diagnostic.Diagnostic{
		Severity:    sev,
		Code:        code,
		Message:     msg,
		Record:      rec.ID.String(),
		FieldPath:   field,
		Pos:         pos,
		Suggestions: suggestions,
	})
}

func isViewNamed(named *types.Named, name string) bool {
	obj := named.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == ViewPkgPath && obj.Name() == name
}

func lookupTypeName(pkg *types.Package, name string) *types.TypeName {
	obj, _ := pkg.Scope().Lookup(name).(*types.TypeName)
	return obj
}

func typeNames(pkg *types.Package) []string {
	var names []string

	for _, n := range pkg.Scope().Names() {
		if _, ok := pkg.Scope().Lookup(n).(*types.TypeName); ok {
			names = append(names, n)
		}
	}

	return names
}

// methodResult returns the single result type of a niladic method.
func methodResult(t types.Type, name string, addressable bool) (types.Type, bool) {
	obj, _, _ := types.LookupFieldOrMethod(t, addressable, nil, name)

	fn, ok := obj.(*types.Func)
	if !ok {
		return nil, false
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return nil, false
	}

	return sig.Results().At(0).Type(), true
}

func instantiate(obj *types.TypeName, args *types.TypeList) (types.Type, bool) {
	if args == nil || args.Len() == 0 {
		return obj.Type(), true
	}

	targs := make([]types.Type, args.Len())
	for i := range args.Len() {
		targs[i] = args.At(i)
	}

	t, err := types.Instantiate(nil, obj.Type(), targs, false)
	if err != nil {
		return nil, false
	}

	return t, true
}
