package proxy

import (
	"reflect"
	"strconv"
)

// MissingConstructorError is returned when a type requests the wrapped
// shape without a registered parameterless constructor. The wrapped field
// cannot be populated without one, so synthesis refuses to produce the
// type.
type MissingConstructorError struct{ Type reflect.Type }

// Error implements the error interface.
func (e MissingConstructorError) Error() string {
	// Example: proxy: wrapped type mypkg.Account has no registered constructor
	return "proxy: wrapped type " + e.Type.String() + " has no registered constructor"
}

// BadConstructorError is returned when the registered constructor is not
// a func() *T for the type it was bound to.
type BadConstructorError struct {
	// Type is the source type the facade was created for.
	Type reflect.Type

	// GotType is reflect.TypeOf(ctor).String() for the registered value.
	GotType string
}

// Error implements the error interface.
func (e BadConstructorError) Error() string {
	// Example: proxy: constructor for mypkg.Account has wrong type (func() *mypkg.Ledger)
	return "proxy: constructor for " + e.Type.String() + " has wrong type (" + e.GotType + ")"
}

// NilInjectionError is returned when a hook was declared without a usable
// injection capability.
type NilInjectionError struct {
	Type   reflect.Type
	Member string
}

// Error implements the error interface.
func (e NilInjectionError) Error() string {
	// Example: proxy: hook on "Run" of mypkg.Job has no injection capability
	return "proxy: hook on " + strconv.Quote(e.Member) + " of " + e.Type.String() +
		" has no injection capability"
}

// ParamRangeError is returned when a parameter hook targets a position the
// member's signature does not have.
type ParamRangeError struct {
	Type     reflect.Type
	Member   string
	Position int
}

// Error implements the error interface.
func (e ParamRangeError) Error() string {
	// Example: proxy: parameter hook position 3 out of range for "Do" of mypkg.Job
	return "proxy: parameter hook position " + strconv.Itoa(e.Position) +
		" out of range for " + strconv.Quote(e.Member) + " of " + e.Type.String()
}
