package analyze

import (
	"go/ast"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentGroup(lines ...string) *ast.CommentGroup {
	g := &ast.CommentGroup{}
	for _, l := range lines {
		g.List = append(g.List, &ast.Comment{Text: l})
	}

	return g
}

func TestParseDirective(t *testing.T) {
	tests := []struct {
		name    string
		doc     *ast.CommentGroup
		want    *Directive
		wantErr string
	}{
		{name: "nil doc", doc: nil},
		{name: "no directive", doc: commentGroup("// Point is a point.")},
		{
			name: "generate",
			doc:  commentGroup("// PointMut is a view.", "//", "//reborrow:generate const=PointRef"),
			want: &Directive{Verb: VerbGenerate, Const: "PointRef"},
		},
		{
			name: "qualified positional",
			doc:  commentGroup("//reborrow:generate const=refs.PointRef positional"),
			want: &Directive{Verb: VerbGenerate, Const: "refs.PointRef", Positional: true},
		},
		{
			name: "import path counterpart",
			doc:  commentGroup("//reborrow:generate const=example.com/refs.PointRef"),
			want: &Directive{Verb: VerbGenerate, Const: "example.com/refs.PointRef"},
		},
		{name: "copy", doc: commentGroup("//reborrow:copy"), want: &Directive{Verb: VerbCopy}},
		{name: "spaced prefix is prose", doc: commentGroup("// reborrow:generate const=X")},
		{name: "empty", doc: commentGroup("//reborrow:"), wantErr: "empty"},
		{name: "unknown verb", doc: commentGroup("//reborrow:derive"), wantErr: "unknown directive"},
		{name: "unknown argument", doc: commentGroup("//reborrow:generate deep"), wantErr: "unknown directive argument"},
		{name: "valued positional", doc: commentGroup("//reborrow:generate positional=1"), wantErr: "unknown directive argument"},
		{name: "copy with const", doc: commentGroup("//reborrow:copy const=X"), wantErr: "drop const="},
		{
			name:    "duplicate",
			doc:     commentGroup("//reborrow:copy", "//reborrow:generate const=X"),
			wantErr: "more than one",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDirective(tt.doc)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirective_Mode(t *testing.T) {
	assert.Equal(t, ModeFields, (&Directive{Verb: VerbGenerate}).Mode())
	assert.Equal(t, ModeCopy, (&Directive{Verb: VerbCopy}).Mode())
	assert.Equal(t, PolicyDirect, ModeFields.DefaultPolicy())
	assert.Equal(t, PolicyRecurse, ModeCopy.DefaultPolicy())
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("", PolicyRecurse)
	require.NoError(t, err)
	assert.Equal(t, PolicyRecurse, p)

	p, err = ParsePolicy("recurse", PolicyDirect)
	require.NoError(t, err)
	assert.Equal(t, PolicyRecurse, p)

	p, err = ParsePolicy("direct", PolicyRecurse)
	require.NoError(t, err)
	assert.Equal(t, PolicyDirect, p)

	_, err = ParsePolicy("deep", PolicyDirect)
	require.Error(t, err)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "recurse", PolicyRecurse.String())
	assert.Equal(t, "positional", ShapePositional.String())
	assert.Equal(t, "copy", ModeCopy.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}
