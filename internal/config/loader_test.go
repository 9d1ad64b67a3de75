package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYAML(t *testing.T) {
	data := `
packages: ["./views/..."]
strict: true
comments: false
tags: [integration]
records:
  - type: example.com/views.PointMut
    const: PointRef
    positional: true
    recurse: [X, Y]
  - type: example.com/views.PointRef
    copy: true
    direct: [Label]
`

	f, err := Parse([]byte(data), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, DefaultOutput, f.Output)
	assert.Equal(t, []string{"./views/..."}, f.Packages)
	assert.True(t, f.Strict)
	assert.False(t, f.GenerateComments())
	assert.Equal(t, []string{"integration"}, f.Tags)

	require.Len(t, f.Records, 2)
	r := f.Records[0]
	assert.Equal(t, "PointRef", r.Const)
	assert.True(t, r.Positional)
	assert.Equal(t, []string{"X", "Y"}, r.Recurse)

	pkg, name := r.PkgPath()
	assert.Equal(t, "example.com/views", pkg)
	assert.Equal(t, "PointMut", name)

	got, ok := f.Lookup("example.com/views", "PointRef")
	require.True(t, ok)
	assert.True(t, got.Copy)
	assert.Equal(t, []string{"Label"}, got.Direct)

	_, ok = f.Lookup("example.com/views", "Missing")
	assert.False(t, ok)
}

func TestParseTOML(t *testing.T) {
	data := `
output = "views_gen.go"

[[records]]
type = "example.com/views.PointMut"
const = "PointRef"
recurse = ["X"]
`

	f, err := Parse([]byte(data), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, "views_gen.go", f.Output)
	assert.True(t, f.GenerateComments())
	require.Len(t, f.Records, 1)
	assert.Equal(t, []string{"X"}, f.Records[0].Recurse)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "missing type",
			data: "records:\n  - const: B\n",
			want: "type is required",
		},
		{
			name: "unqualified type",
			data: "records:\n  - type: PointMut\n",
			want: "must be qualified",
		},
		{
			name: "copy with const",
			data: "records:\n  - type: a/b.C\n    copy: true\n    const: D\n",
			want: "drop const",
		},
		{
			name: "field in both lists",
			data: "records:\n  - type: a/b.C\n    recurse: [X]\n    direct: [X]\n",
			want: "both direct and recurse",
		},
		{
			name: "duplicate",
			data: "records:\n  - type: a/b.C\n  - type: a/b.C\n",
			want: "duplicate record",
		},
		{
			name: "output path",
			data: "output: gen/out.go\n",
			want: "must be a file name",
		},
		{
			name: "bad yaml",
			data: "records: [",
			want: "failed to parse config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatYAML)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFormatOf(t *testing.T) {
	f, err := FormatOf("a/reborrow.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = FormatOf("reborrow.toml")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)

	_, err = FormatOf("reborrow.json")
	assert.Error(t, err)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	_, ok, err := Discover(nested)
	require.NoError(t, err)
	// A config file above the temp dir would be a broken test environment.
	require.False(t, ok)

	cfgPath := filepath.Join(root, "reborrow.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("strict = true\n"), 0o644))

	found, ok, err := Discover(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, cfgPath, found)
}

func TestWriteAndLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"reborrow.yaml", "reborrow.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			in := Default()
			in.Strict = true
			in.Records = []Record{{Type: "a/b.C", Const: "D", Recurse: []string{"X"}}}

			require.NoError(t, WriteFile(in, path))

			out, err := LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}
}
