// Package kernels implements the numeric cores of the engine: the
// log-density formula for every supported distribution, the memoized
// factln, and the handful of linear-algebra operations (Cholesky,
// determinant, trace, inverse, Mahalanobis distance) the log-densities
// need. WishartLogp deliberately preserves a known-suspect term rather
// than substituting the textbook formula - see DESIGN.md for the
// Wishart note.
package kernels

import (
	"math"

	"github.com/CraigKelly/mcmcbugs/value"
	"gonum.org/v1/gonum/mat"
)

// NormalLogp returns the sum of 0.5*log(0.5*tau/pi) - 0.5*tau*(x-mu)^2 over
// every element of x, with mu and tau broadcasting as scalars if they are
// not the same shape as x. tau is precision (1/variance).
func NormalLogp(x, mu, tau value.Value) float64 {
	n := x.NumElements()
	sum := 0.0
	for i := 0; i < n; i++ {
		t := tau.At(i)
		d := x.At(i) - mu.At(i)
		sum += 0.5*logFn(0.5*t/math.Pi) - 0.5*t*d*d
	}
	return sum
}

// UniformLogp returns -Inf if any element of x falls outside [lower,
// upper], else -sum(log(upper-lower)).
func UniformLogp(x, lower, upper value.Value) float64 {
	n := x.NumElements()
	for i := 0; i < n; i++ {
		if x.At(i) < lower.At(i) || x.At(i) > upper.At(i) {
			return math.Inf(-1)
		}
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += logFn(upper.At(i) - lower.At(i))
	}
	return -sum
}

// GammaLogp returns -Inf if any element of x is negative, else
// sum((alpha-1)*log(x) - beta*x - lgamma(alpha) + alpha*log(beta)).
func GammaLogp(x, alpha, beta value.Value) float64 {
	n := x.NumElements()
	for i := 0; i < n; i++ {
		if x.At(i) < 0 {
			return math.Inf(-1)
		}
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		a, b, xi := alpha.At(i), beta.At(i), x.At(i)
		sum += (a-1)*logFn(xi) - b*xi - lgamma(a) + a*logFn(b)
	}
	return sum
}

// BetaLogp returns -Inf unless every element satisfies 0<x<1 and the
// shape parameters are positive, else
// sum(lgamma(a+b) - lgamma(a) - lgamma(b) + (a-1)*log(x) + (b-1)*log(1-x)).
func BetaLogp(x, alpha, beta value.Value) float64 {
	n := x.NumElements()
	for i := 0; i < n; i++ {
		a, b, xi := alpha.At(i), beta.At(i), x.At(i)
		if xi <= 0 || xi >= 1 || a <= 0 || b <= 0 {
			return math.Inf(-1)
		}
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		a, b, xi := alpha.At(i), beta.At(i), x.At(i)
		sum += lgamma(a+b) - lgamma(a) - lgamma(b) + (a-1)*logFn(xi) + (b-1)*logFn(1-xi)
	}
	return sum
}

// BernoulliLogp returns -Inf unless p is in (0,1) and x is in {0,1} for
// every element, else sum(x*log(p) + (1-x)*log(1-p)).
func BernoulliLogp(x, p value.Value) float64 {
	n := x.NumElements()
	for i := 0; i < n; i++ {
		pi, xi := p.At(i), x.At(i)
		if pi <= 0 || pi >= 1 || (xi != 0 && xi != 1) {
			return math.Inf(-1)
		}
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		pi, xi := p.At(i), x.At(i)
		sum += xi*logFn(pi) + (1-xi)*logFn(1-pi)
	}
	return sum
}

// BinomialLogp returns -Inf unless p is in (0,1) and 0<=x<=n for every
// element, else
// sum(x*log(p) + (n-x)*log(1-p) + factln(n) - factln(x) - factln(n-x)).
func BinomialLogp(x, n, p value.Value) float64 {
	cnt := x.NumElements()
	for i := 0; i < cnt; i++ {
		pi, xi, ni := p.At(i), x.At(i), n.At(i)
		if pi <= 0 || pi >= 1 || xi < 0 || xi > ni {
			return math.Inf(-1)
		}
	}
	sum := 0.0
	for i := 0; i < cnt; i++ {
		pi, xi, ni := p.At(i), x.At(i), n.At(i)
		sum += xi*logFn(pi) + (ni-xi)*logFn(1-pi) +
			FactLn(int(math.Round(ni))) - FactLn(int(math.Round(xi))) - FactLn(int(math.Round(ni-xi)))
	}
	return sum
}

// PoissonLogp returns -Inf unless mu>=0 and x>=0 for every element, else
// sum(x*log(mu) - mu - factln(x)).
func PoissonLogp(x, mu value.Value) float64 {
	n := x.NumElements()
	for i := 0; i < n; i++ {
		if mu.At(i) < 0 || x.At(i) < 0 {
			return math.Inf(-1)
		}
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		m, xi := mu.At(i), x.At(i)
		sum += xi*logFn(m) - m - FactLn(int(math.Round(xi)))
	}
	return sum
}

// ExponentialLogp returns sum(log(lambda) - lambda*x), unconditionally -
// no domain guard on lambda or x.
func ExponentialLogp(x, lambda value.Value) float64 {
	n := x.NumElements()
	sum := 0.0
	for i := 0; i < n; i++ {
		l, xi := lambda.At(i), x.At(i)
		sum += logFn(l) - l*xi
	}
	return sum
}

// CategoricalLogp returns -Inf unless every probability is in (0,1) and
// every index of the integer vector x is in range, else sum(log(p[x_i]))
// for a shared probability vector p, or sum(log(p[i, x_i])) for a
// per-observation probability table (p is a Matrix with one row per
// element of x).
func CategoricalLogp(x, p value.Value) float64 {
	pn := p.NumElements()
	for i := 0; i < pn; i++ {
		if p.At(i) <= 0 || p.At(i) >= 1 {
			return math.Inf(-1)
		}
	}

	n := x.NumElements()

	if p.Kind() == value.Matrix {
		_, k := p.Dims()
		sum := 0.0
		for i := 0; i < n; i++ {
			xi := int(math.Round(x.At(i)))
			if xi < 0 || xi >= k {
				return math.Inf(-1)
			}
			sum += logFn(p.AtRC(i, xi))
		}
		return sum
	}

	k := p.NumElements()
	sum := 0.0
	for i := 0; i < n; i++ {
		xi := int(math.Round(x.At(i)))
		if xi < 0 || xi >= k {
			return math.Inf(-1)
		}
		sum += logFn(p.At(xi))
	}
	return sum
}

// MVNormalLogp returns the multivariate normal log-density in covariance
// form, Cholesky-factorizing sigma internally. x may be a single
// observation (Vector, same length as mu) or a Matrix of observations (one
// row per observation, each row the same length as mu); the result sums
// the per-row log-density in the latter case. Returns -Inf if sigma is not
// positive definite.
func MVNormalLogp(x, mu, sigma value.Value) float64 {
	r, ok := Cholesky(sigma.GonumMatrix())
	if !ok {
		return math.Inf(-1)
	}

	muSlice := toSlice(mu)

	if x.Kind() == value.Matrix {
		rows, _ := x.Dims()
		sum := 0.0
		for i := 0; i < rows; i++ {
			sum += mvnRowLogp(x.RowView(i), muSlice, r)
		}
		return sum
	}

	return mvnRowLogp(toSlice(x), muSlice, r)
}

func mvnRowLogp(x, mu []float64, r *mat.Dense) float64 {
	k := len(x)
	logTwoPi := math.Log(2 * math.Pi)
	ldet := math.Log(CholeskyDeterminant(r))

	dist, ok := mahalanobisChol(x, mu, r)
	if !ok {
		return math.Inf(-1)
	}

	return -0.5 * (float64(k)*logTwoPi + ldet + dist)
}

// WishartLogp returns the Wishart log-density of X (scale matrix tau,
// degrees of freedom n), deliberately using lgamma((n+1)/2) summed k
// times rather than the textbook multivariate-gamma term
// sum_j(lgamma((n+1-j)/2)). See DESIGN.md for why this is intentional
// rather than a bug left in place.
func WishartLogp(x, tau value.Value, n float64) float64 {
	xr, xc := x.Dims()
	tr, tc := tau.Dims()
	if xr != xc || tr != tc || xc != tr || float64(xc) > n {
		return math.Inf(-1)
	}

	dx := Det(x.GonumMatrix())
	db := Det(tau.GonumMatrix())
	if dx <= 0 || db <= 0 {
		return math.Inf(-1)
	}

	k := xc
	ldx := math.Log(dx)
	ldb := math.Log(db)

	var bx mat.Dense
	bx.Mul(x.GonumMatrix(), tau.GonumMatrix())
	tbx := Trace(&bx)

	cumLgamma := 0.0
	for i := 0; i < xr; i++ {
		cumLgamma += lgamma((n + 1) / 2.0)
	}

	return float64(n-float64(k)-1)/2*ldx + (n/2.0)*ldb - 0.5*tbx - (n*float64(k)/2.0)*math.Log(2) - cumLgamma
}

func toSlice(v value.Value) []float64 {
	n := v.NumElements()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = v.At(i)
	}
	return out
}
