package node

import (
	"math"

	"github.com/CraigKelly/mcmcbugs/kernels"
	"github.com/CraigKelly/mcmcbugs/value"
	"github.com/pkg/errors"
)

// NewNormal builds a stochastic node with a Normal(mu, tau) log-density
// (tau is precision, 1/variance) and an unconstrained Gaussian jump
// policy.
func NewNormal(name string, mu, tau Param, initial value.Value, observed bool) (*StochasticNode, error) {
	if err := dimensionCheck(name, initial, mu, tau); err != nil {
		return nil, err
	}
	return newStochastic(name, initial, FreeGaussian{}, func(x value.Value) float64 {
		return kernels.NormalLogp(x, mu.Resolve(), tau.Resolve())
	}, observed), nil
}

// NewUniform builds a stochastic node with a Uniform(lower, upper)
// log-density, rejecting any proposal outside the support per component.
func NewUniform(name string, lower, upper Param, initial value.Value, observed bool) (*StochasticNode, error) {
	if err := dimensionCheck(name, initial, lower, upper); err != nil {
		return nil, err
	}
	n := newStochastic(name, initial, nil, func(x value.Value) float64 {
		return kernels.UniformLogp(x, lower.Resolve(), upper.Resolve())
	}, observed)
	setBoundedPolicy(n, lower, upper, false, false)
	return n, nil
}

// NewGamma builds a stochastic node with a Gamma(alpha, beta) log-density
// over the positive reals.
func NewGamma(name string, alpha, beta Param, initial value.Value, observed bool) (*StochasticNode, error) {
	if err := dimensionCheck(name, initial, alpha, beta); err != nil {
		return nil, err
	}
	return newStochastic(name, initial, PositiveRejected{}, func(x value.Value) float64 {
		return kernels.GammaLogp(x, alpha.Resolve(), beta.Resolve())
	}, observed), nil
}

// NewBeta builds a stochastic node with a Beta(alpha, beta) log-density
// over the open interval (0,1).
func NewBeta(name string, alpha, beta Param, initial value.Value, observed bool) (*StochasticNode, error) {
	if err := dimensionCheck(name, initial, alpha, beta); err != nil {
		return nil, err
	}
	policy := IntervalRejected{Lower: 0, Upper: 1, OpenLower: true, OpenUpper: true}
	return newStochastic(name, initial, policy, func(x value.Value) float64 {
		return kernels.BetaLogp(x, alpha.Resolve(), beta.Resolve())
	}, observed), nil
}

// NewBernoulli builds a stochastic node with a Bernoulli(p) log-density
// over {0,1}.
func NewBernoulli(name string, p Param, initial value.Value, observed bool) (*StochasticNode, error) {
	if err := dimensionCheck(name, initial, p); err != nil {
		return nil, err
	}
	policy := DiscreteInterval{Lower: 0, Upper: 1}
	return newStochastic(name, initial, policy, func(x value.Value) float64 {
		return kernels.BernoulliLogp(x, p.Resolve())
	}, observed), nil
}

// NewBinomial builds a stochastic node with a Binomial(n, p) log-density
// over {0,...,n}. n is the (fixed, Static) number of trials.
func NewBinomial(name string, trials, p Param, initial value.Value, observed bool) (*StochasticNode, error) {
	if err := dimensionCheck(name, initial, trials, p); err != nil {
		return nil, err
	}
	count := initial.NumElements()
	sn := newStochastic(name, initial, nil, func(x value.Value) float64 {
		return kernels.BinomialLogp(x, trials.Resolve(), p.Resolve())
	}, observed)
	trialsVal := trials.Resolve()
	for i := 0; i < count; i++ {
		sn.policy[i] = DiscreteInterval{Lower: 0, Upper: trialsVal.At(i)}
	}
	return sn, nil
}

// NewPoisson builds a stochastic node with a Poisson(mu) log-density over
// the nonnegative integers - DiscreteInterval with no upper bound, the
// rounded-to-nearest-integer analogue of Gamma's PositiveRejected.
func NewPoisson(name string, mu Param, initial value.Value, observed bool) (*StochasticNode, error) {
	if err := dimensionCheck(name, initial, mu); err != nil {
		return nil, err
	}
	policy := DiscreteInterval{Lower: 0, Upper: math.Inf(1)}
	return newStochastic(name, initial, policy, func(x value.Value) float64 {
		return kernels.PoissonLogp(x, mu.Resolve())
	}, observed), nil
}

// NewExponential builds a stochastic node with an Exponential(lambda)
// log-density, unconstrained (see kernels.ExponentialLogp).
func NewExponential(name string, lambda Param, initial value.Value, observed bool) (*StochasticNode, error) {
	if err := dimensionCheck(name, initial, lambda); err != nil {
		return nil, err
	}
	return newStochastic(name, initial, FreeGaussian{}, func(x value.Value) float64 {
		return kernels.ExponentialLogp(x, lambda.Resolve())
	}, observed), nil
}

// NewCategorical builds a stochastic node with a Categorical(p) log-density
// over {0,...,k-1}, where p may be a shared probability vector or a
// per-observation probability matrix (one row per element of x). p is a
// category table, not a per-coordinate broadcast hyperparameter, so it is
// expected (and required) to carry more elements than x whenever there is
// more than one category - dimensionCheck does not apply here.
func NewCategorical(name string, p Param, initial value.Value, observed bool) (*StochasticNode, error) {
	k := categoricalSupportSize(p.Resolve())
	policy := DiscreteInterval{Lower: 0, Upper: float64(k - 1)}
	return newStochastic(name, initial, policy, func(x value.Value) float64 {
		return kernels.CategoricalLogp(x, p.Resolve())
	}, observed), nil
}

func categoricalSupportSize(p value.Value) int {
	if p.Kind() == value.Matrix {
		_, c := p.Dims()
		return c
	}
	return p.NumElements()
}

// NewMVNormal builds a stochastic node with a multivariate normal
// log-density in covariance form, jumping every coordinate of the mean
// vector with an unconstrained Gaussian step. Only mu is dimension-checked
// against initial: sigma is a k x k covariance matrix with a structurally
// different shape from the k-length value it parameterizes, so the
// larger-than-the-value check does not apply to it. sigma must instead be
// a Matrix that Cholesky-factors, or construction fails.
func NewMVNormal(name string, mu, sigma Param, initial value.Value, observed bool) (*StochasticNode, error) {
	if err := dimensionCheck(name, initial, mu); err != nil {
		return nil, err
	}
	if sv := sigma.Resolve(); sv.Kind() != value.Matrix {
		return nil, errors.Errorf("node: %q: covariance sigma must be a Matrix value", name)
	} else if _, ok := kernels.Cholesky(sv.GonumMatrix()); !ok {
		return nil, errors.Errorf("node: %q: covariance sigma is not positive definite", name)
	}
	return newStochastic(name, initial, FreeGaussian{}, func(x value.Value) float64 {
		return kernels.MVNormalLogp(x, mu.Resolve(), sigma.Resolve())
	}, observed), nil
}

func setBoundedPolicy(n *StochasticNode, lower, upper Param, openLower, openUpper bool) {
	count := n.raw.NumElements()
	lo := lower.Resolve()
	hi := upper.Resolve()
	for i := 0; i < count; i++ {
		n.policy[i] = IntervalRejected{Lower: lo.At(i), Upper: hi.At(i), OpenLower: openLower, OpenUpper: openUpper}
	}
}
