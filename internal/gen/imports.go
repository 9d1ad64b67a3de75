package gen

import (
	"go/types"
	"path"
	"strconv"

	"reborrow-generator/internal/common"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importSet collects the imports of one generated file and hands out the
// names packages are referred to by.
type importSet struct {
	self   string
	byPath map[string]string
	byName map[string]string
}

func newImportSet(selfPath string) *importSet {
	return &importSet{
		self:   selfPath,
		byPath: make(map[string]string),
		byName: make(map[string]string),
	}
}

// use records an import of pkgPath and returns the name to qualify with.
// The package being generated is never imported and gets an empty name.
func (s *importSet) use(pkgPath, pkgName string) string {
	if pkgPath == "" || pkgPath == s.self {
		return ""
	}

	if name, ok := s.byPath[pkgPath]; ok {
		return name
	}

	if pkgName == "" {
		pkgName = common.PkgAlias(pkgPath)
	}

	name := pkgName
	for i := 2; ; i++ {
		if _, taken := s.byName[name]; !taken {
			break
		}

		name = pkgName + strconv.Itoa(i)
	}

	s.byPath[pkgPath] = name
	s.byName[name] = pkgPath

	return name
}

// qualifier is a types.Qualifier that records every package it qualifies.
func (s *importSet) qualifier(pkg *types.Package) string {
	return s.use(pkg.Path(), pkg.Name())
}

// typeString renders t as written in the generated file.
func (s *importSet) typeString(t types.Type) string {
	return types.TypeString(t, s.qualifier)
}

// taken reports whether name is used by an import.
func (s *importSet) taken(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// specs returns the imports sorted by path. An alias is only written when
// the name differs from the last element of the path.
func (s *importSet) specs() []importSpec {
	paths := common.SortedKeys(s.byPath)
	out := make([]importSpec, 0, len(paths))

	for _, p := range paths {
		spec := importSpec{Path: p}
		if name := s.byPath[p]; name != path.Base(p) {
			spec.Alias = name
		}

		out = append(out, spec)
	}

	return out
}
