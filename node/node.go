// Package node implements the node-graph building blocks of a model:
// stochastic nodes (with a log-density and a Metropolis jump policy),
// deterministic nodes (pure functions of other nodes), and the Param
// abstraction that lets a distribution's hyperparameters be either a
// literal or another node's current value.
package node

import (
	"github.com/CraigKelly/mcmcbugs/value"
	"github.com/pkg/errors"
)

// Node is the common surface every graph member exposes: a stable name and
// its current payload.
type Node interface {
	Name() string
	Value() value.Value
}

// Stochastic is a Node with a log-likelihood contribution and a Metropolis
// random-walk jump policy. Observed nodes are Stochastic nodes whose value
// never jumps.
type Stochastic interface {
	Node

	// LogLik returns this node's contribution to the model's total
	// log-probability given its current value and its parents' current
	// values.
	LogLik() float64

	// Observed reports whether this node's value is fixed data rather
	// than a sampled parameter.
	Observed() bool

	// NumComponents returns the number of independently-tunable scalar
	// coordinates backing this node's value.
	NumComponents() int

	// Preserve snapshots the current value so a rejected Jump can Revert.
	Preserve()

	// Revert restores the value snapshotted by the most recent Preserve.
	Revert()

	// Jump proposes a new value for every component at once (a
	// whole-block Metropolis move).
	Jump(rng Source)

	// ComponentJump proposes a new value for a single component, leaving
	// the rest unchanged. Used during the adaptive tuning phase to
	// measure and correct each coordinate's acceptance rate
	// independently.
	ComponentJump(rng Source, i int)

	// Tune rescales the proposal width for component i given its
	// recently observed acceptance ratio.
	Tune(i int, acceptRatio float64)

	// Scale returns the current per-component proposal scale.
	Scale() []float64
}

// Deterministic is a Node whose value is a pure function of its parents,
// recomputed on demand rather than sampled.
type Deterministic interface {
	Node
	Recompute()
}

// Source is the random-number interface every jump policy and every
// Jump/ComponentJump call depends on. github.com/CraigKelly/mcmcbugs/rand.Generator
// satisfies it; tests may substitute a deterministic stub.
type Source interface {
	Uniform() float64
	Normal() float64
}

// MaxJumpRetries bounds how many times a constrained jump policy will
// redraw a rejected proposal before giving up and leaving the component
// unchanged.
const MaxJumpRetries = 10000

// DefaultScale is the initial per-component proposal standard deviation
// before any tuning has taken place.
const DefaultScale = 1.0

// tuneScale rescales a proposal width from an observed acceptance ratio,
// nudging toward the target acceptance rate of 0.4.
func tuneScale(acceptRatio float64) float64 {
	return 1 + (acceptRatio-0.4)*0.2
}

// dimensionCheck rejects any hyperparameter whose resolved payload has more
// elements than initial: a hyperparameter that does not broadcast against
// the stochastic variable it parameterizes is almost certainly a
// configuration mistake rather than an intentional per-coordinate value.
func dimensionCheck(name string, initial value.Value, params ...Param) error {
	n := initial.NumElements()
	for _, p := range params {
		if m := p.Resolve().NumElements(); m > n {
			return errors.Errorf("node: %q: hyperparameter has %d elements, larger than the %d-element value it parameterizes", name, m, n)
		}
	}
	return nil
}
