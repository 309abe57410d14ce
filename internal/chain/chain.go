// Package chain provides the ordering tokens threaded through
// side-effecting operations. A token is an opaque, non-forgeable value
// with no data content; a consumer of a token is ordered after its
// producer, and nothing else. Tokens may fan out to several consumers,
// which makes the resulting order partial, not linear.
package chain

import (
	"sync"

	"github.com/google/uuid"
)

// Token is one ordering value. Tokens are compared by identity of
// their name; the graph builder binds them to chain-kind values.
type Token struct {
	name string
}

// Name returns the value name the token is bound to in a program.
func (t Token) Name() string {
	return t.name
}

// Source mints fresh token names. Production code uses UUIDv7Source;
// tests use FixedSource for deterministic programs.
type Source interface {
	Next() Token
}

// UUIDv7Source generates time-sortable UUIDv7 token names, prefixed
// with "ch-". Sortability is convenient when reading program dumps.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Source struct{}

// Next mints a fresh token. Panics if UUID generation fails, which
// does not happen in practice.
func (UUIDv7Source) Next() Token {
	return Token{name: "ch-" + uuid.Must(uuid.NewV7()).String()}
}

// FixedSource returns predetermined token names in order, for
// deterministic tests and golden program comparison.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedSource struct {
	mu    sync.Mutex
	names []string
	idx   int
}

// NewFixedSource creates a source that yields the given names in order.
func NewFixedSource(names ...string) *FixedSource {
	return &FixedSource{names: names}
}

// Next returns the next predetermined token. Panics when the names are
// exhausted, to fail fast on test misconfiguration.
func (s *FixedSource) Next() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idx >= len(s.names) {
		panic("chain: FixedSource exhausted")
	}
	t := Token{name: s.names[s.idx]}
	s.idx++
	return t
}
