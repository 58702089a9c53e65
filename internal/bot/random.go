package bot

import (
	"math/rand"
	"time"
)

// Random is the source of randomness for the easy strategy and the medium fallback.
// *rand.Rand satisfies it; tests inject a deterministic one.
type Random interface {
	Intn(n int) int
}

// NewRandom returns a seeded source. A zero seed means seeding from the clock.
func NewRandom(seed int64) Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return rand.New(rand.NewSource(seed)) //nolint: gosec // game moves, not secrets
}
