package proxy_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bwofter/proxier-core-net/annotation"
	"github.com/bwofter/proxier-core-net/proxy"
)

func memberNames(members []proxy.Member) []string {
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	return names
}

//
// -----------------------------------------------------------------------------
// Proxyability
// -----------------------------------------------------------------------------

type unmarkedThing struct {
	Run func()
}

// TestClassify_Unmarked verifies a type without the proxy marker
// classifies as not proxyable with every derived flag false.
func TestClassify_Unmarked(t *testing.T) {
	t.Parallel()

	d := proxy.Classify(reflect.TypeOf(unmarkedThing{}))
	assert.False(t, d.Proxyable)
	assert.False(t, d.Observable)
	assert.False(t, d.Wrapped)
	assert.Empty(t, d.Methods)
	assert.Empty(t, d.Accessors)
}

type markedLevel int

// TestClassify_NonStruct verifies non-struct types are the
// non-extensible case: marked or not, they never classify as proxyable.
func TestClassify_NonStruct(t *testing.T) {
	t.Parallel()

	annotation.Bind[markedLevel](annotation.Proxy())

	d := proxy.Classify(reflect.TypeOf(markedLevel(0)))
	assert.False(t, d.Proxyable)
}

type flaggedSvc struct {
	Run func()
}

// TestClassify_DerivedFlags verifies observable/wrapped markers carry
// through only on proxyable types.
func TestClassify_DerivedFlags(t *testing.T) {
	t.Parallel()

	annotation.Bind[flaggedSvc](annotation.Proxy(), annotation.Observable(), annotation.Wrapped())

	d := proxy.Classify(reflect.TypeOf(flaggedSvc{}))
	require.True(t, d.Proxyable)
	assert.True(t, d.Observable)
	assert.True(t, d.Wrapped)
}

//
// -----------------------------------------------------------------------------
// Member surface
// -----------------------------------------------------------------------------

type classifiedSvc struct {
	label string

	Run      func()
	Settle   func()
	GetLabel func() string
	SetLabel func(string)
	Equals   func(any) bool
	HashCode func() uint64

	hidden func()
}

// TestClassify_SplitsSurface verifies the overridable surface splits into
// plain members, property accessors and the excluded universal surface.
// "Settle" is a plain member: Set must start a new word to make an
// accessor.
func TestClassify_SplitsSurface(t *testing.T) {
	t.Parallel()

	annotation.Bind[classifiedSvc](annotation.Proxy())

	d := proxy.Classify(reflect.TypeOf(classifiedSvc{}))
	require.True(t, d.Proxyable)

	assert.Equal(t, []string{"Run", "Settle"}, memberNames(d.Methods))
	assert.Equal(t, []string{"GetLabel", "SetLabel"}, memberNames(d.Accessors))
	assert.Equal(t, []string{"Equals", "HashCode"}, memberNames(d.Equality))

	for _, m := range d.Accessors {
		assert.Equal(t, "Label", m.Property)
	}
}

type embeddedPart struct {
	Boost func()
}

type hostSvc struct {
	embeddedPart

	Run func()
}

// TestClassify_EmbeddedExcluded verifies members promoted from embedded
// types are not part of the host's intercepted surface.
func TestClassify_EmbeddedExcluded(t *testing.T) {
	t.Parallel()

	annotation.Bind[hostSvc](annotation.Proxy())

	d := proxy.Classify(reflect.TypeOf(hostSvc{}))
	assert.Equal(t, []string{"Run"}, memberNames(d.Methods))
}

type hookedPropSvc struct {
	GetTitle func() string
	SetTitle func(string)
	Publish  func()
}

// TestClassify_PropertyHooksShared verifies both accessors carry the
// property's single attribute list and plain members keep their own.
func TestClassify_PropertyHooksShared(t *testing.T) {
	t.Parallel()

	inject := func(*annotation.Call) {}
	annotation.Bind[hookedPropSvc](
		annotation.Proxy(),
		annotation.Member("Title",
			annotation.Hook{BeforeCall: true, Inject: inject},
			annotation.Hook{Inject: inject},
		),
		annotation.Member("Publish", annotation.Hook{BeforeCall: true, Inject: inject}),
	)

	d := proxy.Classify(reflect.TypeOf(hookedPropSvc{}))
	require.Len(t, d.Accessors, 2)
	for _, m := range d.Accessors {
		assert.Len(t, m.Hooks, 2, "accessor %s shares the property list", m.Name)
	}
	require.Len(t, d.Methods, 1)
	assert.Len(t, d.Methods[0].Hooks, 1)
}

//
// -----------------------------------------------------------------------------
// Handler binding
// -----------------------------------------------------------------------------

type notifiedSvc struct {
	SetName func(string)
}

func (n *notifiedSvc) AlphaChanged(member string) {}

func (n *notifiedSvc) BetaChanged(member string) {}

func (n *notifiedSvc) Peek(member string) int { return 0 }

// TestClassify_HandlerFirstWins verifies the first marker-carrying method
// in scan order binds and later duplicates are silently ignored.
func TestClassify_HandlerFirstWins(t *testing.T) {
	t.Parallel()

	annotation.Bind[notifiedSvc](
		annotation.Proxy(),
		annotation.Observable(),
		annotation.OnChange("AlphaChanged"),
		annotation.OnChange("BetaChanged"),
		annotation.OnObserve("Peek"),
	)

	d := proxy.Classify(reflect.TypeOf(notifiedSvc{}))
	require.NotNil(t, d.OnChange)
	assert.Equal(t, "AlphaChanged", d.OnChange.Name)
	require.NotNil(t, d.OnObserve)
	assert.Equal(t, "Peek", d.OnObserve.Name)
}

type misshapedSvc struct {
	SetName func(string)
}

func (m *misshapedSvc) Changed(member string) int { return 0 }

func (m *misshapedSvc) Observed(member string) {}

// TestClassify_HandlerShapeEnforced verifies a marked method of the wrong
// return shape never binds: on-change must return nothing, on-observe
// must return a value.
func TestClassify_HandlerShapeEnforced(t *testing.T) {
	t.Parallel()

	annotation.Bind[misshapedSvc](
		annotation.Proxy(),
		annotation.Observable(),
		annotation.OnChange("Changed"),
		annotation.OnObserve("Observed"),
	)

	d := proxy.Classify(reflect.TypeOf(misshapedSvc{}))
	assert.Nil(t, d.OnChange)
	assert.Nil(t, d.OnObserve)
}
