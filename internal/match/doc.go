// Package match ranks identifiers by edit distance so diagnostics can offer
// "did you mean" suggestions for misspelled counterpart types and fields.
package match
