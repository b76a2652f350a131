package services

import (
	"math/rand"
	"sync"
	"time"
)

// IDGenerator produces ids for created products. The range it draws from
// should stay disjoint from the seed catalog ids.
type IDGenerator interface {
	NextID() int
}

// RandomIDGenerator draws ids uniformly from [min, max).
type RandomIDGenerator struct {
	min int
	max int
	rng *rand.Rand
	mu  sync.Mutex
}

// NewRandomIDGenerator creates a RandomIDGenerator over [min, max).
func NewRandomIDGenerator(min, max int) *RandomIDGenerator {
	return &RandomIDGenerator{
		min: min,
		max: max,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NextID returns the next random id.
func (g *RandomIDGenerator) NextID() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.min + g.rng.Intn(g.max-g.min)
}

// SequenceIDGenerator hands out consecutive ids starting at a fixed value.
// Tests use it to get predictable ids.
type SequenceIDGenerator struct {
	mu   sync.Mutex
	next int
}

// NewSequenceIDGenerator creates a SequenceIDGenerator starting at start.
func NewSequenceIDGenerator(start int) *SequenceIDGenerator {
	return &SequenceIDGenerator{next: start}
}

// NextID returns the next id in the sequence.
func (g *SequenceIDGenerator) NextID() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.next
	g.next++
	return id
}
