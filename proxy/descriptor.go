package proxy

import (
	"reflect"

	"github.com/bwofter/proxier-core-net/annotation"
)

// Descriptor is the classified interception surface of one source type.
//
// It is computed at most once per type and never mutated afterwards.
// Observable and Wrapped are only meaningful while Proxyable is true; a
// type without the proxy marker classifies with every flag false and
// every member list empty.
type Descriptor struct {
	// Type is the source type the descriptor was computed for.
	Type reflect.Type

	Proxyable  bool
	Observable bool
	Wrapped    bool

	// Methods are the intercepted plain members, in declaration order.
	Methods []Member

	// Accessors are the intercepted property accessors, in declaration
	// order. Both accessors of one property carry the property's shared
	// hook list.
	Accessors []Member

	// Equality holds the universal-surface members (Equals, HashCode).
	// They are never intercepted; the wrapped shape re-points them at the
	// inner instance.
	Equality []Member

	// OnChange and OnObserve are the bound notification handlers, or nil.
	OnChange  *Handler
	OnObserve *Handler

	ctor any // registered constructor, nil when none was bound
}

// Member identifies one overridable member of the source type: an
// exported func-typed struct field declared directly on it.
type Member struct {
	// Name is the field name.
	Name string

	// Index is the field's index on the source struct type.
	Index int

	// Type is the member's func type.
	Type reflect.Type

	// Property is the base name for accessors ("Name" for GetName and
	// SetName); empty for plain members.
	Property string

	// Hooks are the member-level hooks in declaration order.
	Hooks []annotation.Hook

	// Params are the parameter-scoped hooks with their author positions.
	Params []annotation.BoundParam
}

// Handler is a bound change/observe notification method.
type Handler struct {
	// Name is the method name on the source type.
	Name string

	fn reflect.Value // receiver-first method func
}
