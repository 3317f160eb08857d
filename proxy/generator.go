package proxy

import (
	"reflect"
	"runtime"
	"sync"
	"sync/atomic"
	"weak"

	"golang.org/x/sync/singleflight"
)

// compiled is the published product of a facade's one-time
// initialization: the descriptor, the blueprint (nil when the type is not
// proxyable) and the resolved constructor.
type compiled[T any] struct {
	desc *Descriptor
	bp   *Blueprint
	ctor func() *T
}

// Generator is the per-type facade: it creates instances, answers
// identity queries and extracts wrapped delegation targets.
//
// Exactly one Generator exists per distinct T for the process lifetime;
// For hands out the shared one. Classification and synthesis run lazily
// on the first New, at most once: concurrent first callers share a single
// attempt, a failed attempt is not published and propagates to every
// waiter, and a later call may retry.
type Generator[T any] struct {
	typ   reflect.Type
	group singleflight.Group
	ready atomic.Pointer[compiled[T]]

	// instances is the extent of the generated type: every live proxy,
	// weakly keyed, mapped to its wrapped inner (nil outside wrapped
	// mode). Entries are removed when the proxy is collected, so the
	// inner lives exactly as long as its proxy.
	mu        sync.RWMutex
	instances map[weak.Pointer[T]]*T
}

var facades sync.Map // reflect.Type -> facade

// For returns the process-wide generator facade for T, creating it on
// first request. Racing creators produce equivalent facades and exactly
// one is retained.
func For[T any]() *Generator[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if g, ok := facades.Load(t); ok {
		return g.(*Generator[T])
	}
	g := &Generator[T]{typ: t, instances: map[weak.Pointer[T]]*T{}}
	actual, _ := facades.LoadOrStore(t, g)
	return actual.(*Generator[T])
}

// New creates a fresh instance: of the generated proxy type when T is
// proxyable, of T itself otherwise. Configuration errors from the first
// classification/synthesis surface here.
func (g *Generator[T]) New() (*T, error) {
	c, err := g.compile()
	if err != nil {
		return nil, err
	}
	if c.bp == nil {
		return c.ctor(), nil
	}
	outer, inner := c.bp.instantiate(func() reflect.Value {
		return reflect.ValueOf(c.ctor())
	})
	inst := outer.Interface().(*T)
	var wrapped *T
	if c.bp.Wrapped() {
		wrapped = inner.Interface().(*T)
	}
	g.track(inst, wrapped)
	return inst, nil
}

// Describe returns the memoized classification of T, running the
// one-time initialization if it has not happened yet.
func (g *Generator[T]) Describe() (*Descriptor, error) {
	c, err := g.compile()
	if err != nil {
		return nil, err
	}
	return c.desc, nil
}

// IsProxied reports whether v is a live instance of the generated proxy
// type. It is false for nil and for every value of a non-proxyable type.
func (g *Generator[T]) IsProxied(v *T) bool {
	if v == nil {
		return false
	}
	g.mu.RLock()
	_, ok := g.instances[weak.Make(v)]
	g.mu.RUnlock()
	return ok
}

// Extract returns the wrapped delegation target when v is a wrapped-mode
// proxy, and v itself otherwise.
func (g *Generator[T]) Extract(v *T) *T {
	if v == nil {
		return v
	}
	g.mu.RLock()
	inner, ok := g.instances[weak.Make(v)]
	g.mu.RUnlock()
	if ok && inner != nil {
		return inner
	}
	return v
}

func (g *Generator[T]) compile() (*compiled[T], error) {
	if c := g.ready.Load(); c != nil {
		return c, nil
	}
	v, err, _ := g.group.Do("compile", func() (any, error) {
		if c := g.ready.Load(); c != nil {
			return c, nil
		}
		d := Classify(g.typ)
		ctor, err := g.constructor(d)
		if err != nil {
			return nil, err
		}
		c := &compiled[T]{desc: d, ctor: ctor}
		if d.Proxyable {
			bp, err := synthesize(d)
			if err != nil {
				return nil, err
			}
			c.bp = bp
		}
		g.ready.Store(c)
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*compiled[T]), nil
}

func (g *Generator[T]) constructor(d *Descriptor) (func() *T, error) {
	if d.ctor == nil {
		return func() *T { return new(T) }, nil
	}
	fn, ok := d.ctor.(func() *T)
	if !ok {
		return nil, BadConstructorError{Type: g.typ, GotType: reflect.TypeOf(d.ctor).String()}
	}
	return fn, nil
}

func (g *Generator[T]) track(inst, inner *T) {
	key := weak.Make(inst)
	g.mu.Lock()
	g.instances[key] = inner
	g.mu.Unlock()

	runtime.AddCleanup(inst, func(k weak.Pointer[T]) {
		g.mu.Lock()
		delete(g.instances, k)
		g.mu.Unlock()
	}, key)
}
