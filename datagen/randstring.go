package datagen

import (
	"math/rand"
	"sync/atomic"
	"time"
)

// DefaultStringLength is the length of generated attribute strings.
const DefaultStringLength = 10

const uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// clockSeeds separates clock-derived seeds handed out within one tick.
var clockSeeds atomic.Int64

// StringGenerator produces short uppercase labels. It is not safe for
// concurrent use; the call counter is.
type StringGenerator struct {
	rng   *rand.Rand
	calls atomic.Uint64
}

// NewStringGenerator returns a generator seeded with seed. A zero seed picks
// a wall-clock seed mixed with a process-wide counter so generators created
// in the same tick still diverge.
func NewStringGenerator(seed int64) *StringGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano() + clockSeeds.Add(1)
	}
	return &StringGenerator{rng: rand.New(rand.NewSource(seed))}
}

// NextString returns length random uppercase letters, or DefaultStringLength
// letters when length is not positive.
func (g *StringGenerator) NextString(length int) string {
	g.calls.Add(1)
	if length <= 0 {
		length = DefaultStringLength
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = uppercase[g.rng.Intn(len(uppercase))]
	}
	return string(b)
}

// Calls reports how many strings have been produced.
func (g *StringGenerator) Calls() uint64 {
	return g.calls.Load()
}
