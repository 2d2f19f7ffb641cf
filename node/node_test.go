package node

import (
	"math"
	"testing"

	"github.com/CraigKelly/mcmcbugs/value"
	"github.com/stretchr/testify/assert"
)

// stubSource is a deterministic Source for tests that don't need real
// randomness: Uniform and Normal both return the configured constant.
type stubSource struct {
	uniform float64
	normal  float64
}

func (s stubSource) Uniform() float64 { return s.uniform }
func (s stubSource) Normal() float64  { return s.normal }

func TestNormalPreserveJumpRevert(t *testing.T) {
	assert := assert.New(t)

	n, err := NewNormal("x", StaticParam(value.NewScalar(0)), StaticParam(value.NewScalar(1)), value.NewScalar(2), false)
	assert.NoError(err)
	before := n.Value().Float64()

	n.Preserve()
	n.Jump(stubSource{normal: 1})
	assert.NotEqual(before, n.Value().Float64())

	n.Revert()
	assert.Equal(before, n.Value().Float64())
}

func TestGammaJumpStaysPositive(t *testing.T) {
	assert := assert.New(t)

	n, err := NewGamma("g", StaticParam(value.NewScalar(2)), StaticParam(value.NewScalar(2)), value.NewScalar(0.1), false)
	assert.NoError(err)
	for i := 0; i < 200; i++ {
		n.Preserve()
		n.Jump(stubSource{normal: -10}) // large negative step would push below zero without rejection
		assert.True(n.Value().Float64() > 0)
	}
}

func TestUniformJumpStaysInBounds(t *testing.T) {
	assert := assert.New(t)

	lo := value.NewScalar(0)
	hi := value.NewScalar(1)
	n, err := NewUniform("u", StaticParam(lo), StaticParam(hi), value.NewScalar(0.5), false)
	assert.NoError(err)
	for i := 0; i < 200; i++ {
		n.Jump(stubSource{normal: 5})
		v := n.Value().Float64()
		assert.True(v >= 0 && v <= 1)
	}
}

func TestObservedNodeNeverJumps(t *testing.T) {
	assert := assert.New(t)

	n, err := NewNormal("obs", StaticParam(value.NewScalar(0)), StaticParam(value.NewScalar(1)), value.NewScalar(3.5), true)
	assert.NoError(err)
	before := n.Value().Float64()
	n.Jump(stubSource{normal: 100})
	assert.Equal(before, n.Value().Float64())
	assert.True(n.Observed())
}

func TestDynamicParamTracksSource(t *testing.T) {
	assert := assert.New(t)

	mu, err := NewNormal("mu", StaticParam(value.NewScalar(0)), StaticParam(value.NewScalar(1)), value.NewScalar(5), true)
	assert.NoError(err)
	x, err := NewNormal("x", DynamicParam(mu), StaticParam(value.NewScalar(1)), value.NewScalar(5), true)
	assert.NoError(err)

	l1 := x.LogLik()
	mu.raw = value.NewScalar(-5)
	l2 := x.LogLik()
	assert.NotEqual(l1, l2)
}

func TestDeterministicRecompute(t *testing.T) {
	assert := assert.New(t)

	a, err := NewNormal("a", StaticParam(value.NewScalar(0)), StaticParam(value.NewScalar(1)), value.NewScalar(3), true)
	assert.NoError(err)
	d := NewDeterministic("double", func() value.Value {
		return value.NewScalar(a.Value().Float64() * 2)
	})
	assert.Equal(6.0, d.Value().Float64())

	a.raw = value.NewScalar(4)
	d.Recompute()
	assert.Equal(8.0, d.Value().Float64())
}

func TestLinearDeterministic(t *testing.T) {
	assert := assert.New(t)

	x := value.NewMatrix(2, 2, []float64{1, 0, 0, 1})
	b, err := NewNormal("b", StaticParam(value.NewScalar(0)), StaticParam(value.NewScalar(1)), value.NewVector([]float64{2, 3}), true)
	assert.NoError(err)
	lin := Linear("y", x, DynamicParam(b))

	assert.Equal(2.0, lin.Value().At(0))
	assert.Equal(3.0, lin.Value().At(1))
}

func TestWishartRoundTripAndLogp(t *testing.T) {
	assert := assert.New(t)

	sigma := value.NewMatrix(2, 2, []float64{2, 0.3, 0.3, 1})
	tau := value.NewMatrix(2, 2, []float64{1, 0, 0, 1})

	w, err := NewWishart("w", StaticParam(tau), 5, sigma, false)
	assert.NoError(err)
	assert.NotNil(w)

	assert.True(w.Value().Equal(sigma, 1e-6))

	l := w.LogLik()
	assert.False(math.IsNaN(l))
	assert.False(math.IsInf(l, 0))

	w.Preserve()
	w.Jump(stubSource{normal: 0.1})
	assert.False(w.Value().Equal(sigma, 1e-9))
}

func TestNewNormalRejectsOversizedHyperparameter(t *testing.T) {
	assert := assert.New(t)

	mu := StaticParam(value.NewVector([]float64{0, 0, 0}))
	tau := StaticParam(value.NewScalar(1))
	n, err := NewNormal("x", mu, tau, value.NewScalar(0), false)
	assert.Error(err)
	assert.Nil(n)
}

func TestCategoricalRespectsSupport(t *testing.T) {
	assert := assert.New(t)

	p := value.NewVector([]float64{0.2, 0.3, 0.5})
	c, err := NewCategorical("c", StaticParam(p), value.NewScalar(1), false)
	assert.NoError(err)
	for i := 0; i < 200; i++ {
		c.Jump(stubSource{normal: 10})
		v := c.Value().Float64()
		assert.True(v >= 0 && v <= 2)
	}
}
