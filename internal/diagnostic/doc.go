// Package diagnostic provides structured errors and warnings reported while
// reading and generating view declarations.
//
// Every diagnostic carries a stable code, the record and field it concerns,
// the source position of the declaration, and optional "did you mean"
// suggestions.
package diagnostic
