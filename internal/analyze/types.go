package analyze

import (
	"go/token"
	"go/types"
	"reflect"

	"reborrow-generator/internal/diagnostic"
)

//go:generate go tool stringer -type=Policy,Shape,Mode -linecomment -output=enum_string.go

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "reborrow-generator/examples/basic"
	Name    string // e.g., "I32RefMut"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// IDOf returns the TypeID of a named type. Predeclared types have no package.
func IDOf(obj *types.TypeName) TypeID {
	id := TypeID{Name: obj.Name()}
	if obj.Pkg() != nil {
		id.PkgPath = obj.Pkg().Path()
	}

	return id
}

// Policy is how a field takes part in narrowing.
type Policy int

const (
	PolicyDirect  Policy = iota // direct
	PolicyRecurse               // recurse
)

// Shape is the field layout of a record.
type Shape int

const (
	ShapeNamed      Shape = iota // named
	ShapePositional              // positional
	ShapeUnit                    // unit
)

// Mode selects how the three operations are generated.
type Mode int

const (
	// ModeFields dispatches per field according to policy.
	ModeFields Mode = iota // fields
	// ModeCopy duplicates the whole receiver.
	ModeCopy // copy
)

// DefaultPolicy is the policy of an untagged field in the given mode.
func (m Mode) DefaultPolicy() Policy {
	if m == ModeCopy {
		return PolicyRecurse
	}

	return PolicyDirect
}

// Record is a view type declaration.
type Record struct {
	ID    TypeID
	Mode  Mode
	Shape Shape
	// Const is the counterpart reference as written: "Name", "alias.Name"
	// or "import/path.Name". Empty for copy records.
	Const string
	// TypeParams are the names of the record's type parameters, in order.
	TypeParams []string
	Fields     []Field
	Named      *types.Named
	Pkg        *PackageInfo
	Pos        token.Position
	// FromConfig is set when the declaration comes from the config file.
	FromConfig bool
}

// Field describes a struct field of a record.
type Field struct {
	Name     string
	Index    int
	Type     types.Type
	Policy   Policy
	Embedded bool
	Tag      reflect.StructTag
	Pos      token.Position
}

// FieldNames returns the record's field names in declaration order.
func (r *Record) FieldNames() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}

	return names
}

// Field returns the field with the given name.
func (r *Record) Field(name string) (*Field, bool) {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			return &r.Fields[i], true
		}
	}

	return nil, false
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path    string         // Import path
	Name    string         // Package name
	Dir     string         // Directory holding the package sources
	Types   *types.Package // Type-checked package
	Fset    *token.FileSet
	Records []TypeID // Records declared in this package
}

// Graph holds all records extracted from loaded packages.
type Graph struct {
	Records     map[TypeID]*Record
	Packages    map[string]*PackageInfo
	Diagnostics diagnostic.Diagnostics
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		Records:  make(map[TypeID]*Record),
		Packages: make(map[string]*PackageInfo),
	}
}

// Record returns the record for a given TypeID, or nil if not found.
func (g *Graph) Record(id TypeID) *Record {
	return g.Records[id]
}

// RecordOf returns the record declared for a named type, or nil.
func (g *Graph) RecordOf(named *types.Named) *Record {
	return g.Records[IDOf(named.Obj())]
}

// AddRecord registers r, replacing an earlier declaration of the same type.
func (g *Graph) AddRecord(r *Record) {
	if _, exists := g.Records[r.ID]; !exists && r.Pkg != nil {
		r.Pkg.Records = append(r.Pkg.Records, r.ID)
	}

	g.Records[r.ID] = r
}
