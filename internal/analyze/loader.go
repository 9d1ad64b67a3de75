package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"
	"path/filepath"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"

	"reborrow-generator/internal/config"
	"reborrow-generator/internal/diagnostic"
	"reborrow-generator/internal/match"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// ErrNoPackages is returned when the patterns match nothing.
var ErrNoPackages = errors.New("no packages matched")

// Config configures an Analyzer.
type Config struct {
	// Dir is the directory patterns are resolved in. Empty means the
	// current directory.
	Dir string
	// Tags are build tags passed to the go command.
	Tags []string
	// Logger receives progress and tolerated type errors. Nil means slog.Default().
	Logger *slog.Logger
}

// Analyzer loads Go packages and extracts record declarations.
type Analyzer struct {
	cfg    Config
	graph  *Graph
	logger *slog.Logger
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(cfg Config) *Analyzer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Analyzer{
		cfg:    cfg,
		graph:  NewGraph(),
		logger: logger,
	}
}

// Graph returns the current record graph.
func (a *Analyzer) Graph() *Graph {
	return a.graph
}

// LoadPackages loads the packages matching patterns and extracts the records
// declared in them with //reborrow: directives.
//
// Type errors are tolerated and reported as warnings: code calling methods
// that have not been generated yet must not block generating them. List and
// parse errors are fatal.
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*Graph, error) {
	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     a.cfg.Dir,
	}

	if len(a.cfg.Tags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(a.cfg.Tags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPackages, strings.Join(patterns, " "))
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if e.Kind != packages.TypeError {
				errs = append(errs, e)
				continue
			}

			a.logger.Warn("type error tolerated", "package", pkg.PkgPath, "error", e.Msg)
			a.graph.Diagnostics.AddWarning(diagnostic.CodeTypeCheck, e.Msg, pkg.PkgPath, "")
		}

		if pkg.Types == nil || pkg.TypesInfo == nil {
			errs = append(errs, fmt.Errorf("package %s: no type information", pkg.PkgPath))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

// processPackage extracts records from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	info := &PackageInfo{
		Path:  pkg.PkgPath,
		Name:  pkg.Name,
		Types: pkg.Types,
		Fset:  pkg.Fset,
	}

	if len(pkg.GoFiles) > 0 {
		info.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	a.graph.Packages[pkg.PkgPath] = info

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				a.processTypeSpec(pkg, info, gd, ts)
			}
		}
	}

	a.logger.Debug("package analyzed", "package", info.Path, "records", len(info.Records))
}

func (a *Analyzer) processTypeSpec(pkg *packages.Package, info *PackageInfo, gd *ast.GenDecl, ts *ast.TypeSpec) {
	doc := ts.Doc
	if doc == nil && len(gd.Specs) == 1 {
		doc = gd.Doc
	}

	pos := pkg.Fset.Position(ts.Pos())
	id := TypeID{PkgPath: info.Path, Name: ts.Name.Name}

	d, err := ParseDirective(doc)
	if err != nil {
		a.graph.Diagnostics.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     diagnostic.CodeBadDirective,
			Message:  err.Error(),
			Record:   id.String(),
			Pos:      pos,
		})

		return
	}

	if d == nil {
		return
	}

	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return
	}

	rec, ok := a.buildRecord(info, obj, d.Mode(), d.Const, d.Positional, pos)
	if !ok {
		return
	}

	a.graph.AddRecord(rec)
}

// buildRecord turns a type into a Record. It reports a diagnostic and returns
// false when the type cannot be a record.
func (a *Analyzer) buildRecord(
	info *PackageInfo,
	obj *types.TypeName,
	mode Mode,
	constRef string,
	positional bool,
	pos token.Position,
) (*Record, bool) {
	id := IDOf(obj)

	unsupported := func(format string, args ...any) (*Record, bool) {
		a.graph.Diagnostics.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     diagnostic.CodeUnsupportedShape,
			Message:  "only single-shape record types are supported: " + fmt.Sprintf(format, args...),
			Record:   id.String(),
			Pos:      pos,
		})

		return nil, false
	}

	if obj.IsAlias() {
		return unsupported("%s is a type alias", id.Name)
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		return unsupported("%s is not a named type", id.Name)
	}

	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		if _, isIface := named.Underlying().(*types.Interface); isIface {
			return unsupported("%s is an interface (sum type)", id.Name)
		}

		return unsupported("%s has underlying type %s", id.Name, named.Underlying())
	}

	rec := &Record{
		ID:    id,
		Mode:  mode,
		Const: constRef,
		Named: named,
		Pkg:   info,
		Pos:   pos,
	}

	if tps := named.TypeParams(); tps != nil {
		for i := range tps.Len() {
			rec.TypeParams = append(rec.TypeParams, tps.At(i).Obj().Name())
		}
	}

	valid := true

	for i := range st.NumFields() {
		v := st.Field(i)
		tag := reflect.StructTag(st.Tag(i))
		fieldPos := info.Fset.Position(v.Pos())

		if v.Name() == "_" {
			return unsupported("blank field at index %d cannot be read", i)
		}

		policy, err := ParsePolicy(tag.Get(TagKey), mode.DefaultPolicy())
		if err != nil {
			a.graph.Diagnostics.Add(diagnostic.Diagnostic{
				Severity:  diagnostic.SeverityError,
				Code:      diagnostic.CodeBadPolicy,
				Message:   err.Error(),
				Record:    id.String(),
				FieldPath: v.Name(),
				Pos:       fieldPos,
			})

			valid = false
		}

		rec.Fields = append(rec.Fields, Field{
			Name:     v.Name(),
			Index:    i,
			Type:     v.Type(),
			Policy:   policy,
			Embedded: v.Embedded(),
			Tag:      tag,
			Pos:      fieldPos,
		})
	}

	switch {
	case len(rec.Fields) == 0:
		rec.Shape = ShapeUnit
	case positional:
		rec.Shape = ShapePositional
	default:
		rec.Shape = ShapeNamed
	}

	return rec, valid
}

// Apply merges the records declared in the configuration file into the
// graph. A config record replaces a directive on the same type; its field
// lists override struct tags. Records in packages that were not loaded are
// skipped.
func (a *Analyzer) Apply(cfg *config.File) {
	for i := range cfg.Records {
		cr := &cfg.Records[i]
		pkgPath, name := cr.PkgPath()

		info, ok := a.graph.Packages[pkgPath]
		if !ok {
			a.logger.Debug("config record outside loaded packages", "type", cr.Type)
			continue
		}

		obj, _ := info.Types.Scope().Lookup(name).(*types.TypeName)
		if obj == nil {
			a.graph.Diagnostics.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.SeverityError,
				Code:        diagnostic.CodeUnsupportedShape,
				Message:     fmt.Sprintf("only single-shape record types are supported: %s is not declared in %s", name, pkgPath),
				Record:      cr.Type,
				Suggestions: match.Suggest(name, info.Types.Scope().Names(), match.DefaultThreshold),
			})

			continue
		}

		mode := ModeFields
		if cr.Copy {
			mode = ModeCopy
		}

		rec, ok := a.buildRecord(info, obj, mode, cr.Const, cr.Positional, info.Fset.Position(obj.Pos()))
		if !ok {
			continue
		}

		rec.FromConfig = true

		ok = a.overridePolicies(rec, cr.Recurse, PolicyRecurse)
		ok = a.overridePolicies(rec, cr.Direct, PolicyDirect) && ok

		if ok {
			a.graph.AddRecord(rec)
		}
	}
}

func (a *Analyzer) overridePolicies(rec *Record, names []string, policy Policy) bool {
	ok := true

	for _, name := range names {
		f, found := rec.Field(name)
		if !found {
			a.graph.Diagnostics.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.SeverityError,
				Code:        diagnostic.CodeBadPolicy,
				Message:     fmt.Sprintf("no field %s to mark %s", name, policy),
				Record:      rec.ID.String(),
				FieldPath:   name,
				Pos:         rec.Pos,
				Suggestions: match.Suggest(name, rec.FieldNames(), match.DefaultThreshold),
			})

			ok = false

			continue
		}

		f.Policy = policy
	}

	return ok
}
