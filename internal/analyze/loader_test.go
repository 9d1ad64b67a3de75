package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reborrow-generator/internal/config"
	"reborrow-generator/internal/diagnostic"
)

const (
	basicPkg = "reborrow-generator/examples/basic"
	tuplePkg = "reborrow-generator/examples/tuple"
	badPkg   = "reborrow-generator/internal/analyze/testdata/bad"
)

func codes(diags []diagnostic.Diagnostic) map[string]int {
	out := make(map[string]int)
	for _, d := range diags {
		out[d.Code]++
	}

	return out
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	analyzer := NewAnalyzer(Config{})
	graph, err := analyzer.LoadPackages(t.Context(), basicPkg, tuplePkg)
	require.NoError(t, err)
	require.NotNil(t, graph)

	assert.Contains(t, graph.Packages, basicPkg)
	assert.Contains(t, graph.Packages, tuplePkg)
	assert.Empty(t, graph.Diagnostics.Errors)

	mut := graph.Record(TypeID{PkgPath: basicPkg, Name: "I32RefMut"})
	require.NotNil(t, mut)
	assert.Equal(t, ModeFields, mut.Mode)
	assert.Equal(t, ShapeNamed, mut.Shape)
	assert.Equal(t, "I32Ref", mut.Const)
	assert.Equal(t, []string{"I", "J", "K"}, mut.FieldNames())
	assert.Equal(t, PolicyDirect, mut.Fields[0].Policy)
	assert.Equal(t, PolicyRecurse, mut.Fields[1].Policy)
	assert.Equal(t, PolicyRecurse, mut.Fields[2].Policy)
	assert.Equal(t, "reborrow-generator/view.Mut[int]", mut.Fields[1].Type.String())
	assert.True(t, mut.Pos.IsValid())

	ref := graph.Record(TypeID{PkgPath: basicPkg, Name: "I32Ref"})
	require.NotNil(t, ref)
	assert.Equal(t, ModeCopy, ref.Mode)
	assert.Equal(t, PolicyRecurse, ref.Fields[0].Policy)

	pair := graph.Record(TypeID{PkgPath: tuplePkg, Name: "PairMut"})
	require.NotNil(t, pair)
	assert.Equal(t, ShapePositional, pair.Shape)

	assert.ElementsMatch(t, []TypeID{mut.ID, ref.ID}, graph.Packages[basicPkg].Records)
	assert.Nil(t, graph.Record(TypeID{PkgPath: basicPkg, Name: "Bump"}))
}

func TestAnalyzer_GenericAndUnit(t *testing.T) {
	graph, err := NewAnalyzer(Config{}).LoadPackages(t.Context(),
		"reborrow-generator/examples/generic", "reborrow-generator/examples/shared")
	require.NoError(t, err)

	slot := graph.Record(TypeID{PkgPath: "reborrow-generator/examples/generic", Name: "Slot"})
	require.NotNil(t, slot)
	assert.Equal(t, []string{"T"}, slot.TypeParams)

	marker := graph.Record(TypeID{PkgPath: "reborrow-generator/examples/shared", Name: "Marker"})
	require.NotNil(t, marker)
	assert.Equal(t, ShapeUnit, marker.Shape)
	assert.Empty(t, marker.Fields)
}

func TestAnalyzer_RejectsBadDeclarations(t *testing.T) {
	graph, err := NewAnalyzer(Config{}).LoadPackages(t.Context(), badPkg)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		diagnostic.CodeUnsupportedShape: 4,
		diagnostic.CodeBadPolicy:        1,
		diagnostic.CodeBadDirective:     1,
	}, codes(graph.Diagnostics.Errors))

	assert.Len(t, graph.Records, 1)
	assert.NotNil(t, graph.Record(TypeID{PkgPath: badPkg, Name: "Good"}))

	for _, d := range graph.Diagnostics.Errors {
		assert.True(t, d.Pos.IsValid(), d.String())
	}
}

func TestAnalyzer_NoPackages(t *testing.T) {
	_, err := NewAnalyzer(Config{}).LoadPackages(t.Context(), "reborrow-generator/does/not/exist")
	require.Error(t, err)
}

func TestAnalyzer_Apply(t *testing.T) {
	analyzer := NewAnalyzer(Config{})
	graph, err := analyzer.LoadPackages(t.Context(), badPkg)
	require.NoError(t, err)

	graph.Diagnostics = diagnostic.Diagnostics{}

	analyzer.Apply(&config.File{Records: []config.Record{
		{Type: badPkg + ".Target", Const: "Good", Recurse: []string{"N"}},
		{Type: badPkg + ".Targt", Const: "Good"},
		{Type: badPkg + ".Good", Copy: true, Direct: []string{"M"}},
		{Type: "example.com/unloaded.Thing", Const: "ThingRef"},
	}})

	target := graph.Record(TypeID{PkgPath: badPkg, Name: "Target"})
	require.NotNil(t, target)
	assert.True(t, target.FromConfig)
	assert.Equal(t, "Good", target.Const)
	assert.Equal(t, PolicyRecurse, target.Fields[0].Policy)

	// The failed override leaves the directive declaration in place.
	good := graph.Record(TypeID{PkgPath: badPkg, Name: "Good"})
	require.NotNil(t, good)
	assert.False(t, good.FromConfig)

	require.Len(t, graph.Diagnostics.Errors, 2)

	missing := graph.Diagnostics.Errors[0]
	assert.Equal(t, diagnostic.CodeUnsupportedShape, missing.Code)
	assert.Equal(t, []string{"Target"}, missing.Suggestions)

	field := graph.Diagnostics.Errors[1]
	assert.Equal(t, diagnostic.CodeBadPolicy, field.Code)
	assert.Equal(t, "M", field.FieldPath)
}
