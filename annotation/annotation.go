// Package annotation attaches declarative interception metadata to types.
//
// It is an explicit side-table keyed by reflect.Type: types opt in by
// registering typed marker records through Bind, and the engine queries
// them through Lookup. Nothing here parses struct tags or source comments;
// the table is plain data built by ordinary Go calls, usually from an
// init function next to the annotated type.
//
// Design goals:
//   - Declarative: markers describe the type; the engine decides behavior.
//   - Inert: binding metadata has no effect until a generator runs.
//   - Immutable in practice: metadata for a type must be complete before
//     the first generator use of that type; it is never re-read.
package annotation

import (
	"reflect"
	"sync"
)

// Set is the complete metadata bound to one type.
//
// Lookup returns an independent snapshot, so holders can read it without
// locking against later Bind calls.
type Set struct {
	// Proxy marks the type as eligible for proxy synthesis.
	Proxy bool

	// Observable enables accessor change/observe notifications.
	Observable bool

	// Wrapped selects the wrap-and-delegate generation shape.
	Wrapped bool

	// Constructor is the registered parameterless constructor (func() *T),
	// or nil when none was bound.
	Constructor any

	// Members maps a method name or property base name to its hooks, in
	// declaration order. Both accessors of a property share one list.
	Members map[string][]Hook

	// Params maps a member name to its parameter-scoped hooks.
	Params map[string][]BoundParam

	// Changed and Observed hold method names carrying the on-change and
	// on-observe markers.
	Changed  map[string]struct{}
	Observed map[string]struct{}
}

// BoundParam ties a parameter hook to the 0-based parameter position the
// author attached it to. The engine turns Position into the hook's 1-based
// Index when it weaves the member.
type BoundParam struct {
	Position int
	Hook     ParamHook
}

// Option mutates a Set during Bind.
type Option func(*Set)

var (
	mu    sync.RWMutex
	table = map[reflect.Type]*Set{}
)

// Bind merges marker options into the metadata of T.
//
// Bind may be called more than once for the same type (declarations can be
// split across files); later calls merge into the existing set. All Bind
// calls for a type must happen before the first generator use of it.
func Bind[T any](opts ...Option) {
	t := reflect.TypeOf((*T)(nil)).Elem()

	mu.Lock()
	defer mu.Unlock()

	s, ok := table[t]
	if !ok {
		s = newSet()
		table[t] = s
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
}

// Lookup returns a snapshot of the metadata bound to t, if any.
func Lookup(t reflect.Type) (*Set, bool) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := table[t]
	if !ok {
		return nil, false
	}
	return s.snapshot(), true
}

// Proxy marks the type as proxyable.
func Proxy() Option { return func(s *Set) { s.Proxy = true } }

// Observable marks the type as observable.
func Observable() Option { return func(s *Set) { s.Observable = true } }

// Wrapped selects the wrap-and-delegate shape.
func Wrapped() Option { return func(s *Set) { s.Wrapped = true } }

// Constructor registers the parameterless constructor for T.
//
// The T here must be the same type the surrounding Bind is for; the engine
// rejects a mismatched constructor at synthesis time.
func Constructor[T any](fn func() *T) Option {
	return func(s *Set) { s.Constructor = fn }
}

// Member attaches member-level hooks under a method name or, for
// properties, the property base name ("Name" covers GetName and SetName).
func Member(name string, hooks ...Hook) Option {
	return func(s *Set) { s.Members[name] = append(s.Members[name], hooks...) }
}

// Param attaches a parameter-scoped hook to the 0-based parameter
// position of the named member. As with Member, properties are addressed
// by their base name ("Owner" covers GetOwner and SetOwner, a hook keyed
// "SetOwner" is never read); the position is resolved against whichever
// accessor's signature has it.
func Param(member string, position int, h ParamHook) Option {
	return func(s *Set) {
		s.Params[member] = append(s.Params[member], BoundParam{Position: position, Hook: h})
	}
}

// OnChange marks a method as the on-change handler candidate. The method
// must be void-returning and take the mutated property's base name.
func OnChange(method string) Option {
	return func(s *Set) { s.Changed[method] = struct{}{} }
}

// OnObserve marks a method as the on-observe handler candidate. The
// method must return a value and take the observed property's base name.
func OnObserve(method string) Option {
	return func(s *Set) { s.Observed[method] = struct{}{} }
}

func newSet() *Set {
	return &Set{
		Members:  map[string][]Hook{},
		Params:   map[string][]BoundParam{},
		Changed:  map[string]struct{}{},
		Observed: map[string]struct{}{},
	}
}

func (s *Set) snapshot() *Set {
	cp := &Set{
		Proxy:       s.Proxy,
		Observable:  s.Observable,
		Wrapped:     s.Wrapped,
		Constructor: s.Constructor,
		Members:     make(map[string][]Hook, len(s.Members)),
		Params:      make(map[string][]BoundParam, len(s.Params)),
		Changed:     make(map[string]struct{}, len(s.Changed)),
		Observed:    make(map[string]struct{}, len(s.Observed)),
	}
	for k, v := range s.Members {
		cp.Members[k] = append([]Hook(nil), v...)
	}
	for k, v := range s.Params {
		cp.Params[k] = append([]BoundParam(nil), v...)
	}
	for k := range s.Changed {
		cp.Changed[k] = struct{}{}
	}
	for k := range s.Observed {
		cp.Observed[k] = struct{}{}
	}
	return cp
}
