// Package faulty declares records the resolver must reject or warn about.
package faulty

import (
	"strings"

	"reborrow-generator/view"
)

// NoConst lacks a counterpart.
//
//reborrow:generate
type NoConst struct {
	N int
}

// WrongPkg names a package that is not imported.
//
//reborrow:generate const=refs.Thing
type WrongPkg struct {
	N int
}

// Typo names a counterpart that does not exist.
//
//reborrow:generate const=PlainRfe
type Typo struct {
	N int
}

// PlainRef is a counterpart for several records below.
type PlainRef struct {
	N int
}

// Stubborn recurses into a type without the contract.
//
//reborrow:generate const=PlainRef
type Stubborn struct {
	N int `reborrow:"recurse"`
}

// Maybe recurses into an option of a nonconformant payload.
//
//reborrow:generate const=PlainRef
type Maybe struct {
	N view.Option[strings.Builder] `reborrow:"recurse"`
}

// Hoarder duplicates an exclusive view in copy mode.
//
//reborrow:copy
type Hoarder struct {
	N view.Mut[int]
}

// Leaky copies an exclusive view in a fields record.
//
//reborrow:generate const=LeakyRef
type Leaky struct {
	N view.Mut[int]
}

// LeakyRef is the counterpart of Leaky.
type LeakyRef struct {
	N view.Mut[int]
}

// Renamed differs from its counterpart in field names.
//
//reborrow:generate const=RenamedRef
type Renamed struct {
	Count int
	Label string
}

// RenamedRef is the counterpart of Renamed.
type RenamedRef struct {
	Counts int
	Label  string
}

// Short has fewer fields than its counterpart.
//
//reborrow:generate const=RenamedRef
type Short struct {
	Count int
}

// Generic has a type parameter its counterpart lacks.
//
//reborrow:generate const=PlainRef
type Generic[T any] struct {
	N T
}
