package utils

import (
	crand "crypto/rand"
	"math"
	"math/big"
	"math/rand"
)

// RandomFloat returns a random float64 between 0.0 and 1.0
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// SecureRandomFloat returns a float64 in [0, 1) drawn from crypto/rand.
// Falls back to math/rand if the system source fails.
func SecureRandomFloat() float64 {
	n, err := crand.Int(crand.Reader, big.NewInt(1<<53))
	if err != nil {
		return RandomFloat()
	}
	return float64(n.Int64()) / (1 << 53)
}

// IsValidWeight reports whether w can be stored as a participant weight
func IsValidWeight(w float64) bool {
	return w >= 0 && !math.IsNaN(w) && !math.IsInf(w, 0)
}
