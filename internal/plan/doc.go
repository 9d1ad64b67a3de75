// Package plan turns analyzed record declarations into a resolved plan.
//
// Resolution is the one static classification step of the generator: every
// field of every record is assigned a Dispatch that decides, once, how each
// of the three contract operations treats it. Counterpart references are
// resolved to packages, and records that cannot be generated are reported as
// diagnostics instead of producing code.
package plan
