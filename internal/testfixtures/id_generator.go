package testfixtures

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// fixtureNamespace seeds the deterministic UUIDs handed out in UUID mode.
var fixtureNamespace = uuid.MustParse("6f1c2a53-9b1e-4c55-8a51-2f7d0c9e4b10")

// IDGenerator produces deterministic identifiers for tests, either as
// prefix-N strings or as UUIDs derived from them.
type IDGenerator struct {
	mu      sync.Mutex
	prefix  string
	counter uint64
	asUUID  bool
}

// NewIDGenerator returns a generator yielding prefix-1, prefix-2, and so on.
// An empty prefix means "id".
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &IDGenerator{prefix: prefix}
}

// NewUUIDGenerator returns a generator yielding stable UUIDs, for code paths
// that validate identifiers.
func NewUUIDGenerator(seed string) *IDGenerator {
	gen := NewIDGenerator(seed)
	gen.asUUID = true
	return gen
}

// Next returns the next identifier in the sequence.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	id := fmt.Sprintf("%s-%d", g.prefix, g.counter)
	if g.asUUID {
		return uuid.NewSHA1(fixtureNamespace, []byte(id)).String()
	}
	return id
}

// NextFunc exposes Next for injection.
func (g *IDGenerator) NextFunc() func() string {
	if g == nil {
		return func() string { return "" }
	}
	return g.Next
}

// SetCounter overrides the counter so sequences can be replayed.
func (g *IDGenerator) SetCounter(counter uint64) {
	g.mu.Lock()
	g.counter = counter
	g.mu.Unlock()
}
