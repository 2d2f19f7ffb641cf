package node

import "github.com/CraigKelly/mcmcbugs/value"

// StochasticNode is the concrete Stochastic implementation shared by every
// distribution constructor in this package. raw is the representation that
// Jump/Preserve/Revert actually mutate; transform (when non-nil) maps raw
// to the value the rest of the model sees - used by Wishart's
// Cholesky-parameterized nodes, where raw is an unconstrained auxiliary
// vector and the public value is the reconstructed SPD matrix.
type StochasticNode struct {
	name      string
	raw       value.Value
	saved     value.Value
	transform func(value.Value) value.Value

	policy []JumpPolicy // one per component; all entries equal for a uniform policy
	scale  []float64

	logLikFn func(value.Value) float64
	observed bool
}

// newStochastic builds a StochasticNode with a uniform jump policy applied
// to every component of initial.
func newStochastic(name string, initial value.Value, policy JumpPolicy, logLikFn func(value.Value) float64, observed bool) *StochasticNode {
	n := initial.NumElements()
	policies := make([]JumpPolicy, n)
	scale := make([]float64, n)
	for i := 0; i < n; i++ {
		policies[i] = policy
		scale[i] = DefaultScale
	}
	return &StochasticNode{
		name:     name,
		raw:      initial.Clone(),
		policy:   policies,
		scale:    scale,
		logLikFn: logLikFn,
		observed: observed,
	}
}

// Name implements Node.
func (s *StochasticNode) Name() string { return s.name }

// Value implements Node.
func (s *StochasticNode) Value() value.Value {
	if s.transform == nil {
		return s.raw
	}
	return s.transform(s.raw)
}

// LogLik implements Stochastic.
func (s *StochasticNode) LogLik() float64 { return s.logLikFn(s.Value()) }

// Observed implements Stochastic.
func (s *StochasticNode) Observed() bool { return s.observed }

// NumComponents implements Stochastic.
func (s *StochasticNode) NumComponents() int { return s.raw.NumElements() }

// Scale implements Stochastic.
func (s *StochasticNode) Scale() []float64 { return s.scale }

// Preserve implements Stochastic.
func (s *StochasticNode) Preserve() {
	s.saved = s.raw.Clone()
}

// Revert implements Stochastic.
func (s *StochasticNode) Revert() {
	s.raw = s.saved.Clone()
}

// Jump implements Stochastic: proposes every component at once.
func (s *StochasticNode) Jump(rng Source) {
	if s.observed {
		return
	}
	n := s.raw.NumElements()
	for i := 0; i < n; i++ {
		s.jumpComponent(rng, i)
	}
}

// ComponentJump implements Stochastic: proposes a single component.
func (s *StochasticNode) ComponentJump(rng Source, i int) {
	if s.observed {
		return
	}
	s.jumpComponent(rng, i)
}

func (s *StochasticNode) jumpComponent(rng Source, i int) {
	cur := s.raw.At(i)
	step := rng.Normal()
	proposed, ok := s.policy[i].Propose(cur, step, s.scale[i], rng)
	if !ok {
		return
	}
	s.raw.SetAt(i, proposed)
}

// Tune implements Stochastic.
func (s *StochasticNode) Tune(i int, acceptRatio float64) {
	s.scale[i] *= tuneScale(acceptRatio)
}
