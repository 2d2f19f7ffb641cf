package kernels

import (
	"math"
	"testing"

	"github.com/CraigKelly/mcmcbugs/value"
	"github.com/stretchr/testify/assert"
)

func TestNormalLogpMatchesKnownValue(t *testing.T) {
	assert := assert.New(t)

	// standard normal density at 0: log(1/sqrt(2*pi)) = -0.5*log(2*pi)
	got := NormalLogp(value.NewScalar(0), value.NewScalar(0), value.NewScalar(1))
	want := -0.5 * math.Log(2*math.Pi)
	assert.InDelta(want, got, 1e-9)
}

func TestUniformLogpOutOfRangeIsNegInf(t *testing.T) {
	assert := assert.New(t)

	lo, hi := value.NewScalar(0), value.NewScalar(1)
	assert.True(math.IsInf(UniformLogp(value.NewScalar(2), lo, hi), -1))
	assert.InDelta(0, UniformLogp(value.NewScalar(0.5), lo, hi), 1e-9) // -log(1-0) = 0
}

func TestGammaLogpRejectsNegative(t *testing.T) {
	assert := assert.New(t)

	got := GammaLogp(value.NewScalar(-1), value.NewScalar(2), value.NewScalar(2))
	assert.True(math.IsInf(got, -1))
}

func TestBetaLogpSymmetricAtHalf(t *testing.T) {
	assert := assert.New(t)

	got := BetaLogp(value.NewScalar(0.5), value.NewScalar(2), value.NewScalar(2))
	assert.False(math.IsInf(got, 0))
	assert.False(math.IsNaN(got))
}

func TestBernoulliLogp(t *testing.T) {
	assert := assert.New(t)

	p := value.NewScalar(0.3)
	got := BernoulliLogp(value.NewScalar(1), p)
	assert.InDelta(math.Log(0.3), got, 1e-9)

	got0 := BernoulliLogp(value.NewScalar(0), p)
	assert.InDelta(math.Log(0.7), got0, 1e-9)

	assert.True(math.IsInf(BernoulliLogp(value.NewScalar(2), p), -1))
}

func TestBinomialLogp(t *testing.T) {
	assert := assert.New(t)

	n, p := value.NewScalar(10), value.NewScalar(0.3)
	got := BinomialLogp(value.NewScalar(3), n, p)
	want := 3*math.Log(0.3) + 7*math.Log(0.7) + FactLn(10) - FactLn(3) - FactLn(7)
	assert.InDelta(want, got, 1e-9)

	assert.True(math.IsInf(BinomialLogp(value.NewScalar(11), n, p), -1))
	assert.True(math.IsInf(BinomialLogp(value.NewScalar(-1), n, p), -1))
}

func TestPoissonLogpAtZero(t *testing.T) {
	assert := assert.New(t)

	got := PoissonLogp(value.NewScalar(0), value.NewScalar(2))
	assert.InDelta(-2.0, got, 1e-9) // 0*log(mu) - mu - factln(0) = -mu
}

func TestExponentialLogp(t *testing.T) {
	assert := assert.New(t)

	got := ExponentialLogp(value.NewScalar(1), value.NewScalar(2))
	assert.InDelta(math.Log(2)-2, got, 1e-9)
}

func TestCategoricalLogpSharedVector(t *testing.T) {
	assert := assert.New(t)

	p := value.NewVector([]float64{0.2, 0.3, 0.5})
	got := CategoricalLogp(value.NewScalar(2), p)
	assert.InDelta(math.Log(0.5), got, 1e-9)

	assert.True(math.IsInf(CategoricalLogp(value.NewScalar(3), p), -1))
}

func TestMVNormalLogpMatchesUnivariateWhenDiagonal(t *testing.T) {
	assert := assert.New(t)

	x := value.NewVector([]float64{1})
	mu := value.NewVector([]float64{0})
	sigma := value.NewMatrix(1, 1, []float64{1})

	got := MVNormalLogp(x, mu, sigma)
	want := NormalLogp(value.NewScalar(1), value.NewScalar(0), value.NewScalar(1))
	assert.InDelta(want, got, 1e-6)
}

func TestMVNormalLogpNonDiagonalMatchesHandComputedMahalanobis(t *testing.T) {
	assert := assert.New(t)

	x := value.NewVector([]float64{1, 0})
	mu := value.NewVector([]float64{0, 0})
	sigma := value.NewMatrix(2, 2, []float64{2, 1, 1, 2})

	// det(Sigma) = 3, Sigma^-1 = (1/3)*[[2,-1],[-1,2]], so the true
	// Mahalanobis distance for err=(1,0) is 2/3 - not 1/2, the value a
	// transposed-inverse-Cholesky bug would produce.
	dist, ok := Mahalanobis([]float64{1, 0}, []float64{0, 0}, sigma.GonumMatrix())
	assert.True(ok)
	assert.InDelta(2.0/3.0, dist, 1e-9)

	want := -0.5 * (2*math.Log(2*math.Pi) + math.Log(3) + dist)
	got := MVNormalLogp(x, mu, sigma)
	assert.InDelta(want, got, 1e-6)
}

func TestWishartLogpFiniteForValidInput(t *testing.T) {
	assert := assert.New(t)

	x := value.NewMatrix(2, 2, []float64{2, 0.3, 0.3, 1})
	tau := value.NewMatrix(2, 2, []float64{1, 0, 0, 1})

	got := WishartLogp(x, tau, 5)
	assert.False(math.IsNaN(got))
	assert.False(math.IsInf(got, 0))
}

func TestWishartLogpRejectsNonSquare(t *testing.T) {
	assert := assert.New(t)

	x := value.NewMatrix(2, 3, make([]float64, 6))
	tau := value.NewMatrix(2, 2, []float64{1, 0, 0, 1})

	got := WishartLogp(x, tau, 5)
	assert.True(math.IsInf(got, -1))
}

func TestFactLnMatchesDirectComputation(t *testing.T) {
	assert := assert.New(t)

	assert.InDelta(math.Log(120), FactLn(5), 1e-9) // 5! = 120
	assert.True(math.IsInf(FactLn(-1), -1))
}

func TestFactLnAboveThresholdUsesLgamma(t *testing.T) {
	assert := assert.New(t)

	m := NewMemoizer()
	got := m.FactLn(factlnDirectMax + 1)
	want := lgamma(float64(factlnDirectMax+1) + 1)
	assert.InDelta(want, got, 1e-6)
}
