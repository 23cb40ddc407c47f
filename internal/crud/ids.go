package crud

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator hands out record identifiers. Identifiers are never reused.
type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator produces prefix-1, prefix-2, ... and is used where ids
// must be predictable.
type SequenceGenerator struct {
	prefix string
	mu     sync.Mutex
	next   int
}

func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix, next: 1}
}

func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := fmt.Sprintf("%s-%d", g.prefix, g.next)
	g.next++
	return id
}
