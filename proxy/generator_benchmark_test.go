package proxy_test

import (
	"sync"
	"testing"

	"github.com/bwofter/proxier-core-net/annotation"
	"github.com/bwofter/proxier-core-net/proxy"
)

/*
   Shared fixtures (NOT counted in benchmarks)
*/

type benchPlain struct {
	Work func(int) int
}

type benchProxied struct {
	Work func(int) int
}

func newBenchProxied() *benchProxied {
	u := &benchProxied{}
	u.Work = func(n int) int { return n + 1 }
	return u
}

var bindBenchProxied = sync.OnceFunc(func() {
	annotation.Bind[benchProxied](
		annotation.Proxy(),
		annotation.Constructor(newBenchProxied),
		annotation.Member("Work",
			annotation.Hook{BeforeCall: true, Inject: func(*annotation.Call) {}},
			annotation.Hook{Inject: func(*annotation.Call) {}},
		),
	)
})

/*
   Benchmarks
*/

func BenchmarkNew_Plain(b *testing.B) {
	g := proxy.For[benchPlain]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.New()
	}
}

func BenchmarkNew_Proxied(b *testing.B) {
	bindBenchProxied()
	g := proxy.For[benchProxied]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.New()
	}
}

func BenchmarkCall_Base(b *testing.B) {
	u := newBenchProxied()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = u.Work(i)
	}
}

func BenchmarkCall_Woven(b *testing.B) {
	bindBenchProxied()
	inst, err := proxy.For[benchProxied]().New()
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = inst.Work(i)
	}
}

func BenchmarkIsProxied(b *testing.B) {
	bindBenchProxied()
	g := proxy.For[benchProxied]()
	inst, err := g.New()
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.IsProxied(inst)
	}
}
