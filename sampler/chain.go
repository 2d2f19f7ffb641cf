// Package sampler wraps a model.Model with the bookkeeping a caller
// actually wants around a running chain: burn-in and an ambient per-node
// acceptance-ratio trace (buffer.RingFloat). Posterior means come from the
// model.History that model.Model.Sample returns. There is intentionally no
// asynchronous multi-chain convergence-window machinery - a single model
// graph has no notion of "variable already collapsed" or cross-chain
// marginal merging.
package sampler

import (
	"github.com/CraigKelly/mcmcbugs/buffer"
	"github.com/CraigKelly/mcmcbugs/model"
	"github.com/CraigKelly/mcmcbugs/node"
	"github.com/pkg/errors"
)

// defaultTraceWindow is how many recent accept/reject outcomes each node's
// RingFloat trace retains.
const defaultTraceWindow = 200

// Chain drives a model.Model through burn-in and production sampling,
// recording an acceptance-ratio trace per node as it goes.
type Chain struct {
	Target           *model.Model
	Rng              node.Source
	AcceptTrace      map[string]*buffer.RingFloat
	TotalSampleCount int64
}

// NewChain builds a Chain around target and runs burnIn adaptively-tuned
// iterations before returning, so a caller never samples from an
// un-burned-in chain.
func NewChain(target *model.Model, rng node.Source, burnIn int, adaptEvery int) (*Chain, error) {
	if target == nil {
		return nil, errors.New("sampler: target model must not be nil")
	}

	c := &Chain{
		Target:      target,
		Rng:         rng,
		AcceptTrace: make(map[string]*buffer.RingFloat),
	}
	for _, s := range target.Stochastics() {
		if s.Observed() {
			continue
		}
		c.AcceptTrace[s.Name()] = buffer.NewRingFloat(defaultTraceWindow)
	}

	target.Update()

	for i := 0; i < burnIn; i++ {
		if adaptEvery > 0 && i%adaptEvery == 0 {
			target.Tune(rng)
		}
		if err := c.oneStep(); err != nil {
			return nil, errors.Wrap(err, "failure during chain burn-in")
		}
	}

	return c, nil
}

// Advance runs n further production iterations (no tuning), updating the
// acceptance trace as it goes.
func (c *Chain) Advance(n int) error {
	for i := 0; i < n; i++ {
		if err := c.oneStep(); err != nil {
			return errors.Wrap(err, "failure advancing chain")
		}
	}
	return nil
}

func (c *Chain) oneStep() error {
	decisions := c.Target.StepObserved(c.Rng)
	c.TotalSampleCount++

	for name, accepted := range decisions {
		trace, ok := c.AcceptTrace[name]
		if !ok {
			continue
		}
		if accepted {
			trace.Add(1)
		} else {
			trace.Add(0)
		}
	}

	return nil
}

// AcceptanceRatio returns the mean of node's recent accept/reject trace, or
// 0 if the node is unknown or has no recorded history.
func (c *Chain) AcceptanceRatio(name string) float64 {
	trace, ok := c.AcceptTrace[name]
	if !ok {
		return 0
	}
	return trace.Mean()
}
