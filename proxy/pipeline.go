package proxy

import (
	"reflect"
	"slices"

	"github.com/bwofter/proxier-core-net/annotation"
)

// memberPlan is the woven form of one intercepted member: the ordered
// injection stages, built once per source type and bound to instances at
// construction time.
//
// Every generated override runs the same fixed sequence:
//
//  1. member hooks with BeforeCall=true, in declaration order
//  2. the change/observe notification, accessors of observable types only
//  3. parameter hooks, index-ordered, regardless of their phase flag
//  4. the delegated call, result captured
//  5. member hooks with BeforeCall=false, in declaration order
//  6. return of the captured result
//
// Failures raised by a hook or by the delegated call propagate unmodified;
// the pipeline never recovers or retries.
type memberPlan struct {
	name   string
	index  int
	ftype  reflect.Type
	before []annotation.Hook
	after  []annotation.Hook
	params []annotation.ParamHook
	notify func(recv any)
}

// buildMember assembles the ordered stages for one intercepted member.
func buildMember(d *Descriptor, m Member) (*memberPlan, error) {
	p := &memberPlan{name: m.Name, index: m.Index, ftype: m.Type}

	for _, h := range m.Hooks {
		if h.Inject == nil {
			return nil, NilInjectionError{Type: d.Type, Member: m.Name}
		}
		if h.BeforeCall {
			p.before = append(p.before, h)
		} else {
			p.after = append(p.after, h)
		}
	}

	for _, bound := range m.Params {
		if bound.Hook.Inject == nil {
			return nil, NilInjectionError{Type: d.Type, Member: m.Name}
		}
		if bound.Position < 0 || bound.Position >= m.Type.NumIn() {
			// Accessors share the property's list, and a position aimed at
			// the setter's value parameter does not exist on the getter.
			// The position belongs to the other accessor; synthesis has
			// already rejected positions that fit neither.
			if m.Property != "" {
				continue
			}
			return nil, ParamRangeError{Type: d.Type, Member: m.Name, Position: bound.Position}
		}
		h := bound.Hook
		h.Index = bound.Position + 1
		p.params = append(p.params, h)
	}
	slices.SortStableFunc(p.params, func(a, b annotation.ParamHook) int {
		return a.Index - b.Index
	})

	// The notification is an accessor-only concern. The accessor's return
	// shape alone picks the handler: a niladic result is a setter and
	// fires on-change, anything returning a value is a getter and fires
	// on-observe. At most one fires per call.
	if m.Property != "" && d.Observable {
		switch {
		case m.Type.NumOut() == 0 && d.OnChange != nil:
			p.notify = notifier(d.OnChange.fn, m.Property)
		case m.Type.NumOut() > 0 && d.OnObserve != nil:
			p.notify = notifier(d.OnObserve.fn, m.Property)
		}
	}
	return p, nil
}

func notifier(handler reflect.Value, property string) func(recv any) {
	name := reflect.ValueOf(property)
	return func(recv any) {
		handler.Call([]reflect.Value{reflect.ValueOf(recv), name})
	}
}

// weave produces the override func for one instance. target resolves the
// delegation target at call time: a captured base implementation in the
// override shape, the inner instance's current member in the wrapped
// shape.
func (p *memberPlan) weave(recv any, target func() reflect.Value) reflect.Value {
	return reflect.MakeFunc(p.ftype, func(args []reflect.Value) []reflect.Value {
		return p.run(recv, target, args)
	})
}

func (p *memberPlan) run(recv any, target func() reflect.Value, args []reflect.Value) []reflect.Value {
	call := &annotation.Call{Member: p.name, Receiver: recv, Args: args}

	for i := range p.before {
		p.before[i].Inject(call)
	}
	if p.notify != nil {
		p.notify(recv)
	}
	for i := range p.params {
		call.Param = p.params[i].Index
		p.params[i].Inject(call)
	}
	call.Param = 0

	call.Result = target().Call(call.Args)

	for i := range p.after {
		p.after[i].Inject(call)
	}
	return call.Result
}
