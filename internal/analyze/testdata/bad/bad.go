// Package bad declares records the analyzer must reject.
package bad

import "reborrow-generator/view"

// Alias points at another type.
//
//reborrow:generate const=Target
type Alias = Target

// Target is a plain struct.
type Target struct {
	N int
}

// Shape is an interface standing in for a sum type.
//
//reborrow:generate const=Target
type Shape interface {
	Area() float64
}

// Count is not a struct.
//
//reborrow:generate const=Target
type Count int

// Tagged has an unknown field policy.
//
//reborrow:generate const=Target
type Tagged struct {
	N view.Mut[int] `reborrow:"deep"`
}

// Verb uses an unknown directive verb.
//
//reborrow:derive const=Target
type Verb struct{}

// Blank has a blank field.
//
//reborrow:generate const=Target
type Blank struct {
	_ int
	N int
}

// Good is accepted.
//
//reborrow:generate const=Target
type Good struct {
	N int
}
