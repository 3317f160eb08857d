package proxy

import "reflect"

type shape int

const (
	overrideShape shape = iota
	wrappedShape
)

// Blueprint is the synthesized proxy type for one source type: a fresh
// name, a generation shape and the woven plan of every intercepted
// member. Exactly one blueprint exists per proxyable type for the process
// lifetime.
type Blueprint struct {
	name     string
	source   reflect.Type
	shape    shape
	members  []*memberPlan
	equality []Member
}

// Name returns the blueprint's unique synthetic type name.
func (b *Blueprint) Name() string { return b.name }

// Source returns the source type the blueprint augments.
func (b *Blueprint) Source() reflect.Type { return b.source }

// Wrapped reports whether the blueprint uses the wrap-and-delegate shape.
func (b *Blueprint) Wrapped() bool { return b.shape == wrappedShape }

// synthesize builds the blueprint for a proxyable descriptor and files it
// in the shared container under a fresh name.
//
// Configuration problems surface here, before any instance can exist: a
// wrapped type without a registered constructor, a hook without an
// injection capability, a parameter hook aimed at a position the member
// does not have.
func synthesize(d *Descriptor) (*Blueprint, error) {
	b := &Blueprint{name: freshName(), source: d.Type, shape: overrideShape}
	if d.Wrapped {
		if d.ctor == nil {
			return nil, MissingConstructorError{Type: d.Type}
		}
		b.shape = wrappedShape
		b.equality = d.Equality
	}
	for _, m := range d.Methods {
		p, err := buildMember(d, m)
		if err != nil {
			return nil, err
		}
		b.members = append(b.members, p)
	}
	if err := checkPropertyParams(d); err != nil {
		return nil, err
	}
	for _, m := range d.Accessors {
		p, err := buildMember(d, m)
		if err != nil {
			return nil, err
		}
		b.members = append(b.members, p)
	}
	Container().add(b)
	return b, nil
}

// checkPropertyParams validates the parameter hooks a property's
// accessors share. A position is fine when at least one of the accessors
// has it; only a position that fits neither signature is a configuration
// error, reported under the property's base name.
func checkPropertyParams(d *Descriptor) error {
	widest := map[string]int{}
	for _, m := range d.Accessors {
		if n := m.Type.NumIn(); n > widest[m.Property] {
			widest[m.Property] = n
		}
	}
	checked := map[string]struct{}{}
	for _, m := range d.Accessors {
		if _, done := checked[m.Property]; done {
			continue
		}
		checked[m.Property] = struct{}{}
		for _, bound := range m.Params {
			if bound.Position < 0 || bound.Position >= widest[m.Property] {
				return ParamRangeError{Type: d.Type, Member: m.Property, Position: bound.Position}
			}
		}
	}
	return nil
}

// instantiate constructs one proxy instance. ctor builds plain source
// instances (a *T as a reflect.Value).
//
// Override shape: the instance's own member funcs are snapshotted as the
// base implementations and the fields re-pointed at woven overrides, so
// the delegated call can never re-enter the override.
//
// Wrapped shape: a second, inner instance is built and every override
// forwards to the inner's member as it is at call time. The universal
// surface (Equals, HashCode) is re-pointed to the inner too, when the
// source declares it.
func (b *Blueprint) instantiate(ctor func() reflect.Value) (outer, inner reflect.Value) {
	outer = ctor()
	elem := outer.Elem()
	recv := outer.Interface()

	if b.shape == wrappedShape {
		inner = ctor()
		innerElem := inner.Elem()
		for _, p := range b.members {
			idx := p.index
			late := func() reflect.Value { return innerElem.Field(idx) }
			elem.Field(idx).Set(p.weave(recv, late))
		}
		for _, eq := range b.equality {
			idx := eq.Index
			late := func() reflect.Value { return innerElem.Field(idx) }
			elem.Field(idx).Set(forwardTo(eq.Type, late))
		}
		return outer, inner
	}

	for _, p := range b.members {
		// Snapshot by value: the field itself is about to be re-pointed.
		base := reflect.ValueOf(elem.Field(p.index).Interface())
		elem.Field(p.index).Set(p.weave(recv, func() reflect.Value { return base }))
	}
	return outer, reflect.Value{}
}

func forwardTo(ftype reflect.Type, target func() reflect.Value) reflect.Value {
	return reflect.MakeFunc(ftype, func(args []reflect.Value) []reflect.Value {
		return target().Call(args)
	})
}
