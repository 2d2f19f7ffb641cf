// Package model implements the probabilistic graph a chain samples from: a
// flat collection of stochastic and deterministic nodes, a Kahan-summed
// joint log-probability, and the Metropolis random-walk sweep (with
// adaptive per-coordinate proposal tuning) that advances the graph one
// iteration at a time.
package model

import (
	"math"

	"github.com/CraigKelly/mcmcbugs/node"
	"github.com/CraigKelly/mcmcbugs/value"
	"github.com/pkg/errors"
)

// trialsPerTuneComponent is how many isolated component-wise Metropolis
// tests are run to estimate one coordinate's acceptance ratio during an
// adaptive tuning pass.
const trialsPerTuneComponent = 20

// Model is a probabilistic graph: an ordered list of stochastic nodes
// (sampled or observed) and an ordered set of deterministic nodes,
// recomputed in Add order whenever the graph changes.
type Model struct {
	Name string

	stochastics    []node.Stochastic
	deterministics []node.Deterministic
	edges          [][2]string // [parent, child] name pairs, recorded via Depends
}

// New returns an empty model.
func New(name string) *Model {
	return &Model{Name: name}
}

// AddStochastic registers a stochastic (sampled or observed) node.
func (m *Model) AddStochastic(s node.Stochastic) {
	m.stochastics = append(m.stochastics, s)
}

// AddDeterministic registers a deterministic node and recomputes the graph
// once so its parents' current values are reflected immediately.
func (m *Model) AddDeterministic(d node.Deterministic) {
	m.deterministics = append(m.deterministics, d)
	d.Recompute()
}

// Stochastics returns the registered stochastic nodes in Add order.
func (m *Model) Stochastics() []node.Stochastic {
	return m.stochastics
}

// Deterministics returns the registered deterministic nodes in Add order.
func (m *Model) Deterministics() []node.Deterministic {
	return m.deterministics
}

// Depends records that child's distribution or deterministic function
// reads parent's current value, for graph visualization (cmd's graph
// subcommand). It has no effect on sampling - Param already resolves
// dependencies dynamically at LogLik/Recompute time regardless of whether
// the edge was recorded here.
func (m *Model) Depends(child, parent string) {
	m.edges = append(m.edges, [2]string{parent, child})
}

// Edges returns the recorded [parent, child] dependency pairs.
func (m *Model) Edges() [][2]string {
	return m.edges
}

// Update recomputes every deterministic node, in the order it was added.
// Callers must call Update after directly mutating any stochastic node a
// deterministic depends on; Step and Sample do this automatically.
func (m *Model) Update() {
	for _, d := range m.deterministics {
		d.Recompute()
	}
}

// Logp returns the model's total joint log-probability: the sum of every
// stochastic node's LogLik, using Kahan compensated summation so a graph
// with many nodes doesn't lose precision to naive running-sum error. It
// returns -Inf as soon as any node's LogLik is non-finite.
func (m *Model) Logp() float64 {
	sum, c := 0.0, 0.0
	for _, s := range m.stochastics {
		l := s.LogLik()
		if math.IsInf(l, 0) || math.IsNaN(l) {
			return math.Inf(-1)
		}
		y := l - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	return sum
}

// Step advances the graph by one whole-block Metropolis sweep: every
// non-observed stochastic node, in Add order, is preserved, jumped as a
// block, and accepted or reverted against the model's total log-probability
// before and after. Deterministics are recomputed after every jump and
// every revert, since a jumped stochastic may feed one.
func (m *Model) Step(rng node.Source) {
	m.StepObserved(rng)
}

// StepObserved behaves exactly like Step, but also returns which of the
// swept nodes accepted their proposed jump - used by the sampler package
// to feed an ambient per-node acceptance trace, never to alter a sampling
// decision.
func (m *Model) StepObserved(rng node.Source) map[string]bool {
	result := make(map[string]bool, len(m.stochastics))
	for _, s := range m.stochastics {
		if s.Observed() {
			continue
		}
		before := m.Logp()
		s.Preserve()
		s.Jump(rng)
		m.Update()
		after := m.Logp()

		ok := accept(rng, before, after)
		if !ok {
			s.Revert()
			m.Update()
		}
		result[s.Name()] = ok
	}
	return result
}

// Tune runs one adaptive tuning pass: for every non-observed stochastic
// node and every one of its components, it isolates that single coordinate
// with trialsPerTuneComponent independent component-wise Metropolis tests,
// then rescales that coordinate's proposal width from the observed
// acceptance ratio. This is the per-coordinate analogue of Step, run
// periodically during burn-in rather than every iteration.
func (m *Model) Tune(rng node.Source) {
	for _, s := range m.stochastics {
		if s.Observed() {
			continue
		}
		for i := 0; i < s.NumComponents(); i++ {
			accepted := 0
			for t := 0; t < trialsPerTuneComponent; t++ {
				before := m.Logp()
				s.Preserve()
				s.ComponentJump(rng, i)
				m.Update()
				after := m.Logp()

				if accept(rng, before, after) {
					accepted++
				} else {
					s.Revert()
					m.Update()
				}
			}
			s.Tune(i, float64(accepted)/float64(trialsPerTuneComponent))
		}
	}
}

func accept(rng node.Source, before, after float64) bool {
	logAlpha := after - before
	if logAlpha >= 0 {
		return true
	}
	return math.Log(rng.Uniform()) < logAlpha
}

// History is the per-node record produced by Sample: every retained draw
// of every non-observed stochastic node, in draw order.
type History map[string][]value.Value

// Mean returns the elementwise posterior mean for a node's recorded draws.
func (h History) Mean(name string) (value.Value, error) {
	draws, ok := h[name]
	if !ok || len(draws) == 0 {
		return value.Value{}, errors.Errorf("model: no recorded draws for node %q", name)
	}
	return value.Mean(draws)
}

// Sample runs the chain for burn+iterations total steps: burn is the
// number of initial steps (during which, every adaptEvery'th step, proposal
// widths are adaptively tuned) and iterations is the number of steps taken
// after burn, independent of burn's size - a call like Sample(5000, 10000,
// ...) (5k retained draws after a 10k burn-in) is legal. Every thin'th
// post-burn step's stochastic values are recorded into the returned
// History. thin <= 0 is treated as 1 (record every post-burn step);
// adaptEvery <= 0 disables tuning.
func (m *Model) Sample(rng node.Source, iterations, burn, adaptEvery, thin int) (History, error) {
	if iterations <= 0 {
		return nil, errors.New("model: iterations must be positive")
	}
	if burn < 0 {
		return nil, errors.Errorf("model: burn %d must be non-negative", burn)
	}
	if thin <= 0 {
		thin = 1
	}

	m.Update()

	hist := make(History)
	for _, s := range m.stochastics {
		if !s.Observed() {
			hist[s.Name()] = nil
		}
	}

	total := burn + iterations
	for step := 1; step <= total; step++ {
		if step <= burn && adaptEvery > 0 && step%adaptEvery == 0 {
			m.Tune(rng)
		}

		m.Step(rng)

		if step > burn && (step-burn)%thin == 0 {
			for _, s := range m.stochastics {
				if s.Observed() {
					continue
				}
				hist[s.Name()] = append(hist[s.Name()], s.Value().Clone())
			}
		}
	}

	return hist, nil
}
