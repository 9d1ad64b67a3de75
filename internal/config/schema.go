package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DefaultOutput is the name of the generated file in each package.
const DefaultOutput = "reborrow_gen.go"

// File represents the root of a configuration file.
type File struct {
	// Version of the configuration schema.
	Version string `yaml:"version,omitempty" toml:"version,omitempty"`

	// Packages are package patterns processed when none are given on the
	// command line (e.g., "./...", "example.com/views").
	Packages []string `yaml:"packages,omitempty" toml:"packages,omitempty"`

	// Output is the generated file name, written into each package directory.
	Output string `yaml:"output,omitempty" toml:"output,omitempty"`

	// Strict enables field-by-field checking of records against their
	// counterparts at generation time.
	Strict bool `yaml:"strict,omitempty" toml:"strict,omitempty"`

	// Comments controls doc comments on generated methods. Defaults to true.
	Comments *bool `yaml:"comments,omitempty" toml:"comments,omitempty"`

	// Tags are build tags passed to the package loader.
	Tags []string `yaml:"tags,omitempty" toml:"tags,omitempty"`

	// Records declares records in addition to source directives.
	Records []Record `yaml:"records,omitempty" toml:"records,omitempty"`
}

// Record declares one view type.
type Record struct {
	// Type is the fully qualified type, "import/path.Name".
	Type string `yaml:"type" toml:"type"`

	// Const names the immutable counterpart. Same rules as the const=
	// directive argument. Ignored for copy records.
	Const string `yaml:"const,omitempty" toml:"const,omitempty"`

	// Positional builds results with unkeyed composite literals.
	Positional bool `yaml:"positional,omitempty" toml:"positional,omitempty"`

	// Copy selects duplicate-all-fields mode.
	Copy bool `yaml:"copy,omitempty" toml:"copy,omitempty"`

	// Recurse lists fields narrowed through the view contract.
	Recurse []string `yaml:"recurse,omitempty" toml:"recurse,omitempty"`

	// Direct lists fields copied unchanged. Only meaningful with Copy, where
	// fields default to recurse.
	Direct []string `yaml:"direct,omitempty" toml:"direct,omitempty"`
}

// GenerateComments reports whether generated methods get doc comments.
func (f *File) GenerateComments() bool {
	return f.Comments == nil || *f.Comments
}

// PkgPath splits Type into its package path and type name.
func (r *Record) PkgPath() (string, string) {
	i := strings.LastIndex(r.Type, ".")
	if i < 0 {
		return "", r.Type
	}

	return r.Type[:i], r.Type[i+1:]
}

// Lookup returns the record declared for the given package and type name.
func (f *File) Lookup(pkgPath, name string) (*Record, bool) {
	for i := range f.Records {
		p, n := f.Records[i].PkgPath()
		if p == pkgPath && n == name {
			return &f.Records[i], true
		}
	}

	return nil, false
}

// Validate checks the file for structural errors.
func (f *File) Validate() error {
	var errs []error

	seen := make(map[string]bool, len(f.Records))

	for i, r := range f.Records {
		pkgPath, name := r.PkgPath()

		switch {
		case r.Type == "":
			errs = append(errs, fmt.Errorf("records[%d]: type is required", i))
			continue
		case pkgPath == "" || name == "":
			errs = append(errs, fmt.Errorf("records[%d]: type %q must be qualified as import/path.Name", i, r.Type))
			continue
		}

		if seen[r.Type] {
			errs = append(errs, fmt.Errorf("records[%d]: duplicate record %s", i, r.Type))
		}

		seen[r.Type] = true

		if r.Copy && r.Const != "" {
			errs = append(errs, fmt.Errorf("records[%d]: %s: copy records are their own counterpart, drop const", i, r.Type))
		}

		for _, field := range r.Direct {
			if slices.Contains(r.Recurse, field) {
				errs = append(errs, fmt.Errorf("records[%d]: %s: field %s is both direct and recurse", i, r.Type, field))
			}
		}
	}

	if strings.ContainsAny(f.Output, `/\`) {
		errs = append(errs, fmt.Errorf("output %q must be a file name, not a path", f.Output))
	}

	return errors.Join(errs...)
}
