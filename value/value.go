// Package value holds the node payload abstraction used throughout the
// engine: a scalar real, a real vector/matrix backed by gonum, or an
// integer vector/matrix backed by plain slices. A single Value type carries
// a Kind tag so nodes can stay heterogeneous in one Model without generics
// or per-kind node types.
package value

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Kind tags the payload carried by a Value.
type Kind int

// The five payload kinds a Node's value may hold.
const (
	Scalar Kind = iota
	Vector
	Matrix
	IntVector
	IntMatrix
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "Scalar"
	case Vector:
		return "Vector"
	case Matrix:
		return "Matrix"
	case IntVector:
		return "IntVector"
	case IntMatrix:
		return "IntMatrix"
	default:
		return "Unknown"
	}
}

// Value is the heterogeneous payload held by a Node. Only the fields
// relevant to Kind are populated; callers should not inspect fields
// directly and instead use the accessor methods below.
type Value struct {
	kind Kind

	scalar float64
	vec    *mat.VecDense
	mtx    *mat.Dense

	ivec []int
	imat []int // row-major, rows*cols long
	rows int
	cols int
}

// NewScalar wraps a single real number.
func NewScalar(x float64) Value {
	return Value{kind: Scalar, scalar: x}
}

// NewVector wraps a copy of data as a real vector.
func NewVector(data []float64) Value {
	cp := append([]float64(nil), data...)
	return Value{kind: Vector, vec: mat.NewVecDense(len(cp), cp)}
}

// NewZeroVector returns an n-length real vector of zeros.
func NewZeroVector(n int) Value {
	return Value{kind: Vector, vec: mat.NewVecDense(n, nil)}
}

// NewMatrix wraps a copy of row-major data as a real rows x cols matrix.
func NewMatrix(rows, cols int, data []float64) Value {
	cp := append([]float64(nil), data...)
	return Value{kind: Matrix, mtx: mat.NewDense(rows, cols, cp), rows: rows, cols: cols}
}

// NewZeroMatrix returns a rows x cols real matrix of zeros.
func NewZeroMatrix(rows, cols int) Value {
	return Value{kind: Matrix, mtx: mat.NewDense(rows, cols, nil), rows: rows, cols: cols}
}

// NewGonumVector wraps an existing *mat.VecDense without copying.
func NewGonumVector(v *mat.VecDense) Value {
	return Value{kind: Vector, vec: v}
}

// NewGonumMatrix wraps an existing *mat.Dense without copying.
func NewGonumMatrix(m *mat.Dense) Value {
	r, c := m.Dims()
	return Value{kind: Matrix, mtx: m, rows: r, cols: c}
}

// NewIntVector wraps a copy of data as an integer vector.
func NewIntVector(data []int) Value {
	cp := append([]int(nil), data...)
	return Value{kind: IntVector, ivec: cp}
}

// NewIntMatrix wraps a copy of row-major data as an integer rows x cols matrix.
func NewIntMatrix(rows, cols int, data []int) Value {
	cp := append([]int(nil), data...)
	return Value{kind: IntMatrix, imat: cp, rows: rows, cols: cols}
}

// Kind reports which payload this Value carries.
func (v Value) Kind() Kind { return v.kind }

// NumElements returns the total element count (rows*cols for matrices).
func (v Value) NumElements() int {
	switch v.kind {
	case Scalar:
		return 1
	case Vector:
		return v.vec.Len()
	case Matrix:
		r, c := v.mtx.Dims()
		return r * c
	case IntVector:
		return len(v.ivec)
	case IntMatrix:
		return len(v.imat)
	default:
		return 0
	}
}

// Dims returns (rows, cols) for matrix kinds, or (n, 1) for vector kinds,
// or (1, 1) for Scalar.
func (v Value) Dims() (int, int) {
	switch v.kind {
	case Scalar:
		return 1, 1
	case Vector:
		return v.vec.Len(), 1
	case Matrix:
		return v.mtx.Dims()
	case IntVector:
		return len(v.ivec), 1
	case IntMatrix:
		return v.rows, v.cols
	default:
		return 0, 0
	}
}

// At returns the i'th element in flattened (row-major for matrices) order
// as a float64, regardless of the underlying kind.
func (v Value) At(i int) float64 {
	switch v.kind {
	case Scalar:
		return v.scalar
	case Vector:
		return v.vec.AtVec(i)
	case Matrix:
		_, c := v.mtx.Dims()
		return v.mtx.At(i/c, i%c)
	case IntVector:
		return float64(v.ivec[i])
	case IntMatrix:
		return float64(v.imat[i])
	default:
		return math.NaN()
	}
}

// AtRC returns the element at (row, col) for a Matrix/IntMatrix Value.
func (v Value) AtRC(row, col int) float64 {
	switch v.kind {
	case Matrix:
		return v.mtx.At(row, col)
	case IntMatrix:
		return float64(v.imat[row*v.cols+col])
	default:
		return v.At(row)
	}
}

// SetAt sets the i'th flattened element. Integer kinds round to the
// nearest integer.
func (v *Value) SetAt(i int, x float64) {
	switch v.kind {
	case Scalar:
		v.scalar = x
	case Vector:
		v.vec.SetVec(i, x)
	case Matrix:
		_, c := v.mtx.Dims()
		v.mtx.Set(i/c, i%c, x)
	case IntVector:
		v.ivec[i] = int(math.Round(x))
	case IntMatrix:
		v.imat[i] = int(math.Round(x))
	}
}

// Fill sets every element to x.
func (v *Value) Fill(x float64) {
	n := v.NumElements()
	for i := 0; i < n; i++ {
		v.SetAt(i, x)
	}
}

// Clone returns a deep, independent copy.
func (v Value) Clone() Value {
	switch v.kind {
	case Scalar:
		return Value{kind: Scalar, scalar: v.scalar}
	case Vector:
		cp := mat.NewVecDense(v.vec.Len(), nil)
		cp.CopyVec(v.vec)
		return Value{kind: Vector, vec: cp}
	case Matrix:
		r, c := v.mtx.Dims()
		cp := mat.NewDense(r, c, nil)
		cp.Copy(v.mtx)
		return Value{kind: Matrix, mtx: cp, rows: r, cols: c}
	case IntVector:
		return Value{kind: IntVector, ivec: append([]int(nil), v.ivec...)}
	case IntMatrix:
		return Value{kind: IntMatrix, imat: append([]int(nil), v.imat...), rows: v.rows, cols: v.cols}
	default:
		return Value{}
	}
}

// SameShape reports whether v and other carry the same Kind and Dims.
func (v Value) SameShape(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	vr, vc := v.Dims()
	or, oc := other.Dims()
	return vr == or && vc == oc
}

// AddScaledElem adds step[i]*scale[i] to every element of v in place - a
// whole-value symmetric Gaussian random-walk update. scale may be a scalar
// Value broadcast to every coordinate.
func (v *Value) AddScaledElem(step []float64, scale Value) {
	n := v.NumElements()
	broadcastScalar := scale.kind == Scalar
	for i := 0; i < n; i++ {
		s := scale.scalar
		if !broadcastScalar {
			s = scale.At(i)
		}
		v.SetAt(i, v.At(i)+step[i]*s)
	}
}

// Sub returns v - other elementwise, broadcasting a Scalar other.
func (v Value) Sub(other Value) Value {
	return v.combine(other, func(a, b float64) float64 { return a - b })
}

// AddV returns v + other elementwise, broadcasting a Scalar other.
func (v Value) AddV(other Value) Value {
	return v.combine(other, func(a, b float64) float64 { return a + b })
}

// ScaleV returns v * k elementwise.
func (v Value) ScaleV(k float64) Value {
	out := v.Clone()
	n := out.NumElements()
	for i := 0; i < n; i++ {
		out.SetAt(i, out.At(i)*k)
	}
	return out
}

func (v Value) combine(other Value, f func(a, b float64) float64) Value {
	out := v.Clone()
	n := out.NumElements()
	broadcast := other.kind == Scalar && other.NumElements() == 1 && v.NumElements() != 1
	for i := 0; i < n; i++ {
		var b float64
		if broadcast {
			b = other.scalar
		} else {
			b = other.At(i)
		}
		out.SetAt(i, f(v.At(i), b))
	}
	return out
}

// Any reports whether pred holds for at least one element.
func (v Value) Any(pred func(float64) bool) bool {
	n := v.NumElements()
	for i := 0; i < n; i++ {
		if pred(v.At(i)) {
			return true
		}
	}
	return false
}

// Sum returns the sum of all elements.
func (v Value) Sum() float64 {
	n := v.NumElements()
	s := 0.0
	for i := 0; i < n; i++ {
		s += v.At(i)
	}
	return s
}

// IsFinite reports whether every element is finite.
func (v Value) IsFinite() bool {
	n := v.NumElements()
	for i := 0; i < n; i++ {
		x := v.At(i)
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return false
		}
	}
	return true
}

// Float64 returns the scalar value. Panics if Kind() != Scalar - callers
// must check Kind first, mirroring how gonum panics on shape mismatch.
func (v Value) Float64() float64 {
	if v.kind != Scalar {
		panic("value: Float64 called on non-scalar Value")
	}
	return v.scalar
}

// GonumVector returns the underlying *mat.VecDense. Only valid for Vector.
func (v Value) GonumVector() *mat.VecDense {
	return v.vec
}

// GonumMatrix returns the underlying *mat.Dense. Only valid for Matrix.
func (v Value) GonumMatrix() *mat.Dense {
	return v.mtx
}

// RowView returns row i of a Matrix Value as a plain float64 slice.
func (v Value) RowView(i int) []float64 {
	_, c := v.mtx.Dims()
	out := make([]float64, c)
	for j := 0; j < c; j++ {
		out[j] = v.mtx.At(i, j)
	}
	return out
}

// Mean returns the elementwise arithmetic mean of a non-empty slice of
// same-shaped Values, same shape as history[0].
func Mean(history []Value) (Value, error) {
	if len(history) == 0 {
		return Value{}, errors.New("value: cannot take Mean of empty history")
	}
	out := history[0].Clone()
	out.Fill(0)
	n := out.NumElements()
	for _, h := range history {
		if !h.SameShape(out) {
			hr, hc := h.Dims()
			or, oc := out.Dims()
			return Value{}, errors.Errorf("value: Mean shape mismatch (%d,%d) vs (%d,%d)", hr, hc, or, oc)
		}
		for i := 0; i < n; i++ {
			out.SetAt(i, out.At(i)+h.At(i))
		}
	}
	fn := float64(len(history))
	for i := 0; i < n; i++ {
		out.SetAt(i, out.At(i)/fn)
	}
	return out, nil
}

// Equal reports whether v and other are equal elementwise within eps.
func (v Value) Equal(other Value, eps float64) bool {
	if !v.SameShape(other) {
		return false
	}
	n := v.NumElements()
	for i := 0; i < n; i++ {
		if math.Abs(v.At(i)-other.At(i)) > eps {
			return false
		}
	}
	return true
}

// String renders the Value for debugging/printing.
func (v Value) String() string {
	switch v.kind {
	case Scalar:
		return fmt.Sprintf("%g", v.scalar)
	case Vector, IntVector:
		n := v.NumElements()
		s := "["
		for i := 0; i < n; i++ {
			if i > 0 {
				s += " "
			}
			s += fmt.Sprintf("%g", v.At(i))
		}
		return s + "]"
	case Matrix, IntMatrix:
		r, c := v.Dims()
		s := ""
		for i := 0; i < r; i++ {
			s += "["
			for j := 0; j < c; j++ {
				if j > 0 {
					s += " "
				}
				s += fmt.Sprintf("%g", v.AtRC(i, j))
			}
			s += "]\n"
		}
		return s
	default:
		return "<invalid value>"
	}
}
