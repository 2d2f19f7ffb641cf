package kernels

import (
	"gonum.org/v1/gonum/mat"
)

// denseToSym copies a square *mat.Dense into a *mat.SymDense, reading only
// the lower triangle (the upper triangle of a covariance/precision matrix
// is assumed to mirror it, as required by the caller's invariants).
func denseToSym(m *mat.Dense) *mat.SymDense {
	n, _ := m.Dims()
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			v := m.At(i, j)
			data[i*n+j] = v
			data[j*n+i] = v
		}
	}
	return mat.NewSymDense(n, data)
}

// Cholesky factorizes sigma = R*R^T and returns the lower-triangular factor
// R. ok is false if sigma is not positive definite - the caller is
// responsible for translating that into a -Inf log-density, never an
// error or panic.
func Cholesky(sigma *mat.Dense) (R *mat.Dense, ok bool) {
	var chol mat.Cholesky
	if !chol.Factorize(denseToSym(sigma)) {
		return nil, false
	}
	var l mat.TriDense
	chol.LTo(&l)
	n, _ := l.Dims()
	out := mat.NewDense(n, n, nil)
	out.Copy(&l)
	return out, true
}

// CholeskyDeterminant returns det(R*R^T) = prod(diag(R))^2 for a
// lower-triangular Cholesky factor R.
func CholeskyDeterminant(R *mat.Dense) float64 {
	n, _ := R.Dims()
	prod := 1.0
	for i := 0; i < n; i++ {
		d := R.At(i, i)
		prod *= d * d
	}
	return prod
}

// Det returns the determinant of a square matrix.
func Det(m *mat.Dense) float64 {
	return mat.Det(m)
}

// Trace returns the sum of the diagonal elements of a square matrix.
func Trace(m *mat.Dense) float64 {
	n, _ := m.Dims()
	s := 0.0
	for i := 0; i < n; i++ {
		s += m.At(i, i)
	}
	return s
}

// Inverse returns the matrix inverse, or ok=false if m is singular.
func Inverse(m *mat.Dense) (inv *mat.Dense, ok bool) {
	var out mat.Dense
	if err := out.Inverse(m); err != nil {
		return nil, false
	}
	return &out, true
}

// mahalanobisChol returns (x-mu)^T * (R*R^T)^-1 * (x-mu) given the
// lower-triangular Cholesky factor R of the covariance (Sigma = R*R^T).
// Sigma^-1 = R^-T * R^-1, so (x-mu)^T Sigma^-1 (x-mu) = ||R^-1*(x-mu)||^2 -
// left-multiply by R^-1 itself, not its transpose. ok is false if R is
// singular.
func mahalanobisChol(x, mu []float64, R *mat.Dense) (dist float64, ok bool) {
	n := len(x)
	errVec := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		errVec.SetVec(i, x[i]-mu[i])
	}

	rInv, invOK := Inverse(R)
	if !invOK {
		return 0, false
	}

	var y mat.VecDense
	y.MulVec(rInv, errVec)
	return mat.Dot(&y, &y), true
}

// Mahalanobis returns (x-mu)^T * sigma^-1 * (x-mu) for column vectors x,
// mu and a covariance matrix sigma. ok is false if sigma is singular.
func Mahalanobis(x, mu []float64, sigma *mat.Dense) (dist float64, ok bool) {
	n := len(x)
	errVec := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		errVec.SetVec(i, x[i]-mu[i])
	}

	sigInv, invOK := Inverse(sigma)
	if !invOK {
		return 0, false
	}

	var y mat.VecDense
	y.MulVec(sigInv, errVec)
	return mat.Dot(errVec, &y), true
}
