package gen

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reborrow-generator/internal/analyze"
	"reborrow-generator/internal/plan"
)

func TestImportSet_AliasesCollisions(t *testing.T) {
	s := newImportSet("example.com/app/views")

	assert.Empty(t, s.use("example.com/app/views", "views"))
	assert.Equal(t, "view", s.use(plan.ViewPkgPath, "view"))
	assert.Equal(t, "refs", s.use("example.com/a/refs", "refs"))
	assert.Equal(t, "refs2", s.use("example.com/b/refs", "refs"))
	assert.Equal(t, "refs", s.use("example.com/a/refs", "refs"))
	assert.Equal(t, "yaml", s.use("gopkg.in/yaml.v3", "yaml"))

	assert.Equal(t, []importSpec{
		{Path: "example.com/a/refs"},
		{Alias: "refs2", Path: "example.com/b/refs"},
		{Alias: "yaml", Path: "gopkg.in/yaml.v3"},
		{Path: plan.ViewPkgPath},
	}, s.specs())
}

func TestImportSet_TypeString(t *testing.T) {
	viewPkg := types.NewPackage(plan.ViewPkgPath, "view")
	self := types.NewPackage("example.com/app", "app")

	ref := types.NewNamed(types.NewTypeName(0, viewPkg, "Ref", nil), types.NewStruct(nil, nil), nil)
	local := types.NewNamed(types.NewTypeName(0, self, "CellRef", nil), types.NewStruct(nil, nil), nil)

	s := newImportSet(self.Path())

	assert.Equal(t, "view.Ref", s.typeString(ref))
	assert.Equal(t, "CellRef", s.typeString(local))
	assert.Equal(t, "[]*view.Ref", s.typeString(types.NewSlice(types.NewPointer(ref))))
	assert.True(t, s.taken("view"))
	assert.False(t, s.taken("app"))
}

func TestReceiverName_AvoidsTypeParamsAndImports(t *testing.T) {
	s := newImportSet("example.com/app")

	assert.Equal(t, "v", receiverName(&analyze.Record{}, s))
	assert.Equal(t, "self", receiverName(&analyze.Record{TypeParams: []string{"v"}}, s))

	s.use("example.com/self", "self")
	assert.Equal(t, "this", receiverName(&analyze.Record{TypeParams: []string{"v"}}, s))
	assert.Equal(t, "v0", receiverName(&analyze.Record{TypeParams: []string{"v", "this", "rcv"}}, s))
}

func TestAssemble(t *testing.T) {
	exprs := []fieldExprs{
		{name: "I", intoConst: "v.I"},
		{name: "J", intoConst: "v.J.IntoConst()"},
	}
	pick := func(e fieldExprs) string { return e.intoConst }

	assert.Equal(t, "Q{\n\t\tI: v.I,\n\t\tJ: v.J.IntoConst(),\n\t}", assemble(analyze.ShapeNamed, "Q", exprs, pick))
	assert.Equal(t, "Q{\n\t\tv.I,\n\t\tv.J.IntoConst(),\n\t}", assemble(analyze.ShapePositional, "Q", exprs, pick))
	assert.Equal(t, "Q{}", assemble(analyze.ShapeUnit, "Q", nil, pick))
}

func TestExprsFor_Dispatch(t *testing.T) {
	intT := types.Typ[types.Int]
	pr := pendingRecord{
		view:      "view",
		refArgs:   [][]string{nil, nil, {"view.Ref[int]"}, {"A", "B"}, nil},
		constArgs: [][]string{nil, nil, {"view.Ref[int]"}, {"CA", "CB"}, nil},
	}

	field := func(name string, d plan.Dispatch) plan.ResolvedField {
		return plan.ResolvedField{Field: analyze.Field{Name: name, Type: intT}, Dispatch: d}
	}

	tests := []struct {
		name  string
		field plan.ResolvedField
		want  fieldExprs
	}{
		{
			name:  "direct",
			field: field("I", plan.DispatchDirect),
			want:  fieldExprs{name: "I", intoConst: "v.I", reborrowMut: "v.I", reborrow: "v.I"},
		},
		{
			name:  "method",
			field: field("J", plan.DispatchMethod),
			want: fieldExprs{
				name: "J", intoConst: "v.J.IntoConst()", reborrowMut: "v.J.ReborrowMut()", reborrow: "v.J.Reborrow()",
			},
		},
		{
			name:  "option",
			field: field("O", plan.DispatchOption),
			want: fieldExprs{
				name:        "O",
				intoConst:   "view.IntoConstOption[view.Ref[int]](v.O)",
				reborrowMut: "view.ReborrowMutOption(v.O)",
				reborrow:    "view.ReborrowOption[view.Ref[int]](v.O)",
			},
		},
		{
			name:  "result",
			field: field("R", plan.DispatchResult),
			want: fieldExprs{
				name:        "R",
				intoConst:   "view.IntoConstResult[CA, CB](v.R)",
				reborrowMut: "view.ReborrowMutResult(v.R)",
				reborrow:    "view.ReborrowResult[A, B](v.R)",
			},
		},
		{
			name:  "pointer",
			field: field("P", plan.DispatchPointer),
			want: fieldExprs{
				name:        "P",
				intoConst:   "view.GeneralizeAsRef(v.P)",
				reborrowMut: "v.P",
				reborrow:    "view.GeneralizeAsRef(v.P)",
			},
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pr.exprsFor("v", i, tt.field))
		})
	}
}

func TestGeneratePackage_CopyRecord(t *testing.T) {
	info := &analyze.PackageInfo{Path: "example.com/pts", Name: "pts"}
	rec := &analyze.Record{
		ID:         analyze.TypeID{PkgPath: info.Path, Name: "Pair"},
		Mode:       analyze.ModeCopy,
		TypeParams: []string{"A", "B"},
		Pkg:        info,
	}

	g := NewGenerator(GeneratorConfig{GenerateComments: false})

	file, err := g.generatePackage(info, []plan.ResolvedRecord{{Record: rec}})
	require.NoError(t, err)

	assert.Equal(t, "reborrow_gen.go", file.Filename)
	assert.Equal(t, Header+`

package pts

func (v Pair[A, B]) IntoConst() Pair[A, B] {
	return v
}

func (v Pair[A, B]) ReborrowMut() Pair[A, B] {
	return v
}

func (v Pair[A, B]) Reborrow() Pair[A, B] {
	return v
}

func (v Pair[A, B]) AsGeneralizedMut() Pair[A, B] {
	return v.ReborrowMut()
}

func (v Pair[A, B]) AsGeneralizedRef() Pair[A, B] {
	return v.Reborrow()
}
`, string(file.Content))
}

func TestGeneratePackage_UnformattableWritesSidecar(t *testing.T) {
	dir := t.TempDir()
	info := &analyze.PackageInfo{Path: "example.com/bad", Name: "bad", Dir: dir}
	rec := &analyze.Record{
		ID:    analyze.TypeID{PkgPath: info.Path, Name: "Bad"},
		Shape: analyze.ShapeNamed,
		Pkg:   info,
	}

	rr := plan.ResolvedRecord{
		Record: rec,
		Const:  plan.ConstRef{Name: "Bad Ref"},
		Fields: []plan.ResolvedField{{Field: analyze.Field{Name: "X"}, Dispatch: plan.DispatchDirect}},
	}

	file, err := NewGenerator(DefaultGeneratorConfig()).generatePackage(info, []plan.ResolvedRecord{rr})
	require.Error(t, err)
	require.NotNil(t, file)
	assert.FileExists(t, dir+"/reborrow_gen.unformatted.go")
}
