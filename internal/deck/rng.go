package deck

import (
	rand "math/rand/v2"
	"time"
)

const goldenGamma = 0x9e3779b97f4a7c15

// NewRand returns a PCG-backed *rand.Rand derived from seed. The same seed
// always produces the same shuffles.
func NewRand(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(u), splitmix(u+goldenGamma)))
}

// SeedFromTime returns a seed for non-deterministic play
func SeedFromTime() int64 {
	return time.Now().UnixNano()
}

func splitmix(x uint64) uint64 {
	x += goldenGamma
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
