package node

import "github.com/CraigKelly/mcmcbugs/value"

// DeterministicNode is a pure function of other nodes, recomputed whenever
// the model sweeps the graph. It never jumps and contributes nothing to
// the model's log-probability.
type DeterministicNode struct {
	name string
	val  value.Value
	fn   func() value.Value
}

// NewDeterministic builds a node whose value is always fn(), recomputed by
// Recompute. The constructor calls fn once to seed an initial value.
func NewDeterministic(name string, fn func() value.Value) *DeterministicNode {
	return &DeterministicNode{name: name, val: fn(), fn: fn}
}

// Name implements Node.
func (d *DeterministicNode) Name() string { return d.name }

// Value implements Node.
func (d *DeterministicNode) Value() value.Value { return d.val }

// Recompute implements Deterministic.
func (d *DeterministicNode) Recompute() { d.val = d.fn() }

// Linear returns a deterministic node computing X*b - a column vector -
// for a fixed design matrix x (rows of observations, one column per
// coefficient) and a coefficient Param b (typically Dynamic, referencing a
// stochastic node).
func Linear(name string, x value.Value, b Param) *DeterministicNode {
	return NewDeterministic(name, func() value.Value {
		rows, cols := x.Dims()
		coef := b.Resolve()
		out := value.NewZeroVector(rows)
		for r := 0; r < rows; r++ {
			sum := 0.0
			for c := 0; c < cols; c++ {
				sum += x.AtRC(r, c) * coef.At(c)
			}
			out.SetAt(r, sum)
		}
		return out
	})
}
