package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"strings"
)

const directivePrefix = "//reborrow:"

// Directive verbs.
const (
	VerbGenerate = "generate"
	VerbCopy     = "copy"
)

// TagKey is the struct tag key holding a field's policy.
const TagKey = "reborrow"

// Directive is a parsed //reborrow: comment.
type Directive struct {
	Verb       string
	Const      string
	Positional bool
}

// Mode returns the generation mode selected by the directive.
func (d *Directive) Mode() Mode {
	if d.Verb == VerbCopy {
		return ModeCopy
	}

	return ModeFields
}

// ParseDirective scans a doc comment for a //reborrow: line. It returns nil
// when there is none.
func ParseDirective(doc *ast.CommentGroup) (*Directive, error) {
	if doc == nil {
		return nil, nil
	}

	var found *Directive

	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, directivePrefix)
		if !ok {
			continue
		}

		if found != nil {
			return nil, errors.New("more than one //reborrow: directive")
		}

		d, err := parseDirectiveLine(rest)
		if err != nil {
			return nil, err
		}

		found = d
	}

	return found, nil
}

func parseDirectiveLine(line string) (*Directive, error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil, errors.New("empty //reborrow: directive")
	}

	d := &Directive{Verb: words[0]}

	switch d.Verb {
	case VerbGenerate, VerbCopy:
	default:
		return nil, fmt.Errorf("unknown directive %q (want %s or %s)", d.Verb, VerbGenerate, VerbCopy)
	}

	for _, w := range words[1:] {
		key, value, hasValue := strings.Cut(w, "=")

		switch {
		case key == "const" && hasValue:
			d.Const = value
		case key == "positional" && !hasValue:
			d.Positional = true
		default:
			return nil, fmt.Errorf("unknown directive argument %q", w)
		}
	}

	if d.Verb == VerbCopy && d.Const != "" {
		return nil, errors.New("copy records are their own counterpart, drop const=")
	}

	return d, nil
}

// ParsePolicy reads a field policy from a struct tag value. An empty value
// yields def.
func ParsePolicy(value string, def Policy) (Policy, error) {
	switch value {
	case "":
		return def, nil
	case "recurse":
		return PolicyRecurse, nil
	case "direct":
		return PolicyDirect, nil
	default:
		return def, fmt.Errorf("unknown policy %q (want recurse or direct)", value)
	}
}
