package proxy

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bwofter/proxier-core-net/annotation"
)

var stringType = reflect.TypeOf("")

// Classify computes the interception descriptor for t.
//
// It is a pure function of t's declarative metadata and never fails: a
// type without the proxy marker, and any non-struct type (the
// non-extensible case), simply classifies as not proxyable. Callers are
// expected to memoize the result; the facade runs Classify at most once
// per type.
func Classify(t reflect.Type) *Descriptor {
	d := &Descriptor{Type: t}

	set, ok := annotation.Lookup(t)
	if !ok {
		return d
	}
	d.ctor = set.Constructor
	if !set.Proxy || t.Kind() != reflect.Struct {
		return d
	}
	d.Proxyable = true
	d.Observable = set.Observable
	d.Wrapped = set.Wrapped

	// Overridable surface: exported func-typed fields declared directly
	// on t. Embedded fields belong to their own type and state fields
	// carry no behavior, so both are skipped.
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous || f.Type.Kind() != reflect.Func {
			continue
		}
		m := Member{Name: f.Name, Index: i, Type: f.Type}
		if isUniversal(f.Name) {
			d.Equality = append(d.Equality, m)
			continue
		}
		if base, isAccessor := accessorBase(f.Name); isAccessor {
			m.Property = base
			m.Hooks = set.Members[base]
			m.Params = set.Params[base]
			d.Accessors = append(d.Accessors, m)
			continue
		}
		m.Hooks = set.Members[f.Name]
		m.Params = set.Params[f.Name]
		d.Methods = append(d.Methods, m)
	}

	// Handlers live on the non-overridable surface: ordinary methods of
	// *t. First marker-carrying method of the right shape wins; later
	// duplicates are silently ignored.
	pt := reflect.PointerTo(t)
	for i := 0; i < pt.NumMethod(); i++ {
		meth := pt.Method(i)
		if d.OnChange == nil {
			if _, marked := set.Changed[meth.Name]; marked && isChangeShape(meth.Type) {
				d.OnChange = &Handler{Name: meth.Name, fn: meth.Func}
			}
		}
		if d.OnObserve == nil {
			if _, marked := set.Observed[meth.Name]; marked && isObserveShape(meth.Type) {
				d.OnObserve = &Handler{Name: meth.Name, fn: meth.Func}
			}
		}
	}
	return d
}

// isUniversal reports whether the member belongs to the conventional
// universal surface, which is excluded from interception.
func isUniversal(name string) bool {
	return name == "Equals" || name == "HashCode"
}

// accessorBase strips the accessor-role prefix from a member name.
//
// "SetName" yields ("Name", true); names like "Settle" are plain members
// because the remainder does not start a new word.
func accessorBase(name string) (string, bool) {
	for _, prefix := range [...]string{"Get", "Set"} {
		rest, found := strings.CutPrefix(name, prefix)
		if !found || rest == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(rest)
		if unicode.IsUpper(r) {
			return rest, true
		}
	}
	return "", false
}

// isChangeShape matches func(recv, string) with no results.
func isChangeShape(t reflect.Type) bool {
	return t.NumIn() == 2 && t.In(1) == stringType && t.NumOut() == 0
}

// isObserveShape matches func(recv, string) with at least one result.
func isObserveShape(t reflect.Type) bool {
	return t.NumIn() == 2 && t.In(1) == stringType && t.NumOut() > 0
}
