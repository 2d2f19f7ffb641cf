package kernels

import (
	"math"
	"sync"
)

// factlnDirectMax is the largest n for which factln is computed by a direct
// product+log rather than lgamma(n+1).
const factlnDirectMax = 100

// Memoizer is an isolated factln lookup table. The package also exposes a
// process-wide singleton (see FactLn) for callers that don't need
// isolation; tests that want a deterministic, empty table per-case should
// construct their own with NewMemoizer.
type Memoizer struct {
	mu    sync.Mutex
	table map[int]float64
}

// NewMemoizer returns an empty, independently-locked factln table.
func NewMemoizer() *Memoizer {
	return &Memoizer{table: make(map[int]float64)}
}

// FactLn returns log(n!) for n >= 0, and -Inf for n < 0. Values are cached
// after first computation.
func (m *Memoizer) FactLn(n int) float64 {
	if n < 0 {
		return math.Inf(-1)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.table[n]; ok {
		return v
	}

	v := factlnSingle(n)
	m.table[n] = v
	return v
}

func factlnSingle(n int) float64 {
	if n > factlnDirectMax {
		return lgamma(float64(n) + 1)
	}
	ans := 1.0
	for i := n; i > 1; i-- {
		ans *= float64(i)
	}
	return math.Log(ans)
}

// lgamma wraps the standard library's two-return-value math.Lgamma and
// returns log|Gamma(x)|, discarding the sign. The sign can only be negative
// for negative arguments: factlnSingle always passes n+1 for n >= 0, while
// the log-density callers pass distribution parameters as given.
func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}

var globalMemoizer = NewMemoizer()

// FactLn returns log(n!) for nonnegative n and -Inf for n < 0, backed by the
// process-wide memoized table. The table is guarded by a mutex since it is
// shared, mutable, process-wide state.
func FactLn(n int) float64 {
	return globalMemoizer.FactLn(n)
}

// FactLnVector applies FactLn elementwise, rounding each element to the
// nearest integer first (the distributions that call this always pass
// integer-valued payloads, but some arrive as float64 slices).
func FactLnVector(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = FactLn(int(math.Round(x)))
	}
	return out
}
