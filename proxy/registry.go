package proxy

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Space is the process-wide container every synthesized type is filed in.
//
// One shared container, rather than one per source type, keeps all
// generated types in a single place for introspection and debugging and
// amortizes its creation across types. Names inside it come from
// freshName, so independently proxied types cannot collide.
type Space struct {
	mu    sync.RWMutex
	types map[string]*Blueprint
}

var (
	containerOnce sync.Once
	container     *Space
)

// Container returns the shared synthesis container, creating it on first
// use. Creation happens at most once for the process lifetime.
func Container() *Space {
	containerOnce.Do(func() {
		container = &Space{types: map[string]*Blueprint{}}
	})
	return container
}

// Names returns the names of every synthesized type, in no particular
// order.
func (s *Space) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}
	return names
}

// Lookup returns the blueprint filed under name, if any.
func (s *Space) Lookup(name string) (*Blueprint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.types[name]
	return b, ok
}

func (s *Space) add(b *Blueprint) {
	s.mu.Lock()
	s.types[b.name] = b
	s.mu.Unlock()
}

// freshName allocates a collision-free synthetic type name: a letter
// prefix followed by the 32 hex digits of a random 128-bit value, so the
// token stays legal as a type identifier.
func freshName() string {
	return "P" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
