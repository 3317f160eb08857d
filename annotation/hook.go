package annotation

import "reflect"

// Call is the invocation context handed to an Injection.
//
// It is created once per intercepted call and shared by every hook that
// fires during that call, so hooks attached to the same member can
// communicate through it (typically via Receiver).
//
// Args holds the live argument values of the call; hooks that run before
// the delegated call may rewrite them. Result is empty until the delegated
// call has run; hooks that run after it may read or replace the captured
// values. Param is zero except while a parameter-scoped hook runs, when it
// holds that hook's 1-based parameter index.
type Call struct {
	// Member is the name of the intercepted member being invoked.
	Member string

	// Receiver is the proxy instance the call was made on.
	Receiver any

	// Args are the call arguments, writable until the delegated call runs.
	Args []reflect.Value

	// Result holds the delegated call's captured return values.
	Result []reflect.Value

	// Param is the 1-based parameter index during a parameter hook, else 0.
	Param int
}

// Injection is the capability a hook carries: arbitrary logic run inside a
// generated member override. A failing injection should panic; the engine
// propagates the panic unmodified, exactly as if it were raised by the
// member body itself.
type Injection func(c *Call)

// Hook is a member-level interception record.
//
// BeforeCall selects the phase: true runs the injection before the
// delegated call, false after it (with the captured result available).
// Hooks attached to one member keep their declaration order within each
// phase.
type Hook struct {
	BeforeCall bool
	Inject     Injection
}

// ParamHook is a parameter-scoped interception record.
//
// Index is the 1-based position of the targeted parameter. It is assigned
// during weaving, never by the author. A -1 "targets the return value"
// sentinel is reserved but no code path assigns it.
//
// BeforeCall is part of the authoring contract only: parameter hooks
// always run before the delegated call regardless of phase, because an
// argument check after the call would be meaningless.
type ParamHook struct {
	BeforeCall bool
	Index      int
	Inject     Injection
}
