// Package rand supplies the engine's random number source: a
// Mersenne-twister-backed generator exposing the Uniform and Normal draws
// every jump policy needs, pre-generated on a background goroutine so a
// sampling loop never blocks on the PRNG itself.
package rand

import (
	"math"

	"github.com/seehuhn/mt19937"
)

// Source is the random-number interface jump policies and the sampler
// depend on, so tests can substitute a deterministic stub.
type Source interface {
	Uniform() float64
	Normal() float64
}

// Generator uses a goroutine to populate batches of random numbers ahead of
// demand, backed by the Mersenne twister (mt19937) for reproducible,
// long-period sequences.
type Generator struct {
	ch       chan int64
	haveSpare bool
	spare    float64
}

// NewGenerator starts a new background PRNG based on the given seed.
func NewGenerator(seed int64) (*Generator, error) {
	numChan := make(chan int64, 1024)

	go func() {
		r := mt19937.New()
		r.Seed(seed)
		for {
			numChan <- r.Int63()
		}
	}()

	g := &Generator{
		ch: numChan,
	}

	return g, nil
}

// Int63 provides the same interface as Go's math/rand, but with pre-generation.
func (g *Generator) Int63() int64 {
	return <-g.ch
}

// Int63n is a copy of the current Go code.
func (g *Generator) Int63n(n int64) int64 {
	if n <= 0 {
		panic("invalid argument to Int63n")
	}

	if n&(n-1) == 0 { // n is power of two, can mask
		return g.Int63() & (n - 1)
	}

	max := int64((1 << 63) - 1 - (1<<63)%uint64(n))
	v := g.Int63()
	for v > max {
		v = g.Int63()
	}

	return v % n
}

// Float64 uses the commented, simpler implementation since we don't have the
// same support requirements as the standard library.
func (g *Generator) Float64() float64 {
	// See the Go lang comments for Rand Float64 implementation for details
	return float64(g.Int63n(1<<53)) / (1 << 53)
}

// Uniform returns a draw from U(0,1). Alias of Float64 satisfying Source.
func (g *Generator) Uniform() float64 {
	return g.Float64()
}

// Normal returns a draw from the standard normal distribution, via the
// polar (Marsaglia) Box-Muller method. Draws come in pairs; the second of
// each pair is cached and returned on the following call.
func (g *Generator) Normal() float64 {
	if g.haveSpare {
		g.haveSpare = false
		return g.spare
	}

	var u, v, s float64
	for {
		u = 2*g.Uniform() - 1
		v = 2*g.Uniform() - 1
		s = u*u + v*v
		if s > 0 && s < 1 {
			break
		}
	}

	mul := math.Sqrt(-2 * math.Log(s) / s)
	g.spare = v * mul
	g.haveSpare = true
	return u * mul
}
