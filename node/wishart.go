package node

import (
	"math"

	"github.com/CraigKelly/mcmcbugs/kernels"
	"github.com/CraigKelly/mcmcbugs/value"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func errNotPositiveDefinite(name string) error {
	return errors.Errorf("node: %q: initial value is not positive definite", name)
}

func errRoundTrip(name string) error {
	return errors.Errorf("node: %q: Cholesky auxiliary parameterization failed to round-trip the initial value", name)
}

// NewWishart builds a stochastic node with a Wishart(tau, n) log-density
// over d x d symmetric positive-definite matrices, using a
// Cholesky-parameterized jump: the sampled coordinate is not the SPD
// matrix itself but an unconstrained
// auxiliary vector of d log-diagonal entries followed by the d*(d-1)/2
// off-diagonal entries of its Cholesky factor, so an ordinary free
// Gaussian jump on the auxiliary vector can never leave the constrained
// support. initial must be a square Matrix Value; it is Cholesky-factored
// once at construction to seed the auxiliary vector, and that
// factorization is round-tripped back into a matrix immediately to verify
// it recovers the original (within floating point tolerance) before the
// node is returned. A non-positive dof, or an initial value or tau that is
// not a positive-definite Matrix, is a construction error.
func NewWishart(name string, tau Param, dof float64, initial value.Value, observed bool) (*StochasticNode, error) {
	if dof <= 0 {
		return nil, errors.Errorf("node: %q: degrees of freedom %g must be positive", name, dof)
	}
	if tv := tau.Resolve(); tv.Kind() != value.Matrix {
		return nil, errors.Errorf("node: %q: scale matrix tau must be a Matrix value", name)
	} else if _, ok := kernels.Cholesky(tv.GonumMatrix()); !ok {
		return nil, errors.Errorf("node: %q: scale matrix tau is not positive definite", name)
	}
	if initial.Kind() != value.Matrix {
		return nil, errNotPositiveDefinite(name)
	}
	r, ok := kernels.Cholesky(initial.GonumMatrix())
	if !ok {
		return nil, errNotPositiveDefinite(name)
	}
	d, _ := initial.Dims()
	aux := choleskyToAux(r, d)

	rebuilt := auxToMatrix(aux, d)
	if !rebuilt.Equal(initial, 1e-6) {
		return nil, errRoundTrip(name)
	}

	sn := newStochastic(name, aux, FreeGaussian{}, func(x value.Value) float64 {
		return kernels.WishartLogp(x, tau.Resolve(), dof)
	}, observed)
	sn.transform = func(raw value.Value) value.Value {
		return auxToMatrix(raw, d)
	}
	return sn, nil
}

// choleskyToAux flattens a d x d lower-triangular Cholesky factor into the
// d*(d+1)/2-length auxiliary vector: the first d entries are
// log(diagonal), followed by the off-diagonal lower-triangle entries in
// row-major order.
func choleskyToAux(r *mat.Dense, d int) value.Value {
	out := value.NewZeroVector(d * (d + 1) / 2)
	for i := 0; i < d; i++ {
		out.SetAt(i, math.Log(r.At(i, i)))
	}
	idx := d
	for i := 1; i < d; i++ {
		for j := 0; j < i; j++ {
			out.SetAt(idx, r.At(i, j))
			idx++
		}
	}
	return out
}

// auxToMatrix reconstructs the SPD matrix X = L*L^T from the auxiliary
// vector produced by choleskyToAux.
func auxToMatrix(aux value.Value, d int) value.Value {
	l := value.NewZeroMatrix(d, d)
	lm := l.GonumMatrix()
	for i := 0; i < d; i++ {
		lm.Set(i, i, math.Exp(aux.At(i)))
	}
	idx := d
	for i := 1; i < d; i++ {
		for j := 0; j < i; j++ {
			lm.Set(i, j, aux.At(idx))
			idx++
		}
	}

	out := value.NewZeroMatrix(d, d)
	om := out.GonumMatrix()
	om.Mul(lm, lm.T())
	return out
}
