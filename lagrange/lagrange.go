// Package lagrange computes Lagrange interpolation weights over the
// BLS12-381 scalar field and interpolates implicit polynomials at zero.
//
// For a set of distinct evaluation points x_1..x_k the weight of x_i at a
// point z is
//
//	w_i(z) = prod_{j != i} (z - x_j) / (x_i - x_j)
//
// Rather than computing the k products directly, the weights are derived
// from the accumulator A(X) = prod (X - x_j):
//
//	w_i(z) = A(z) / ((z - x_i) * A'(x_i))
//
// where A'(x_i) for every i comes from a single multipoint evaluation and the
// k denominators are inverted together with one field inversion.
//
// The package does not know about participants. Index 0 is an ordinary
// evaluation point here; callers that reserve it for the secret must reject
// it themselves.
package lagrange

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/f3rmion/pvss/group"
	"github.com/f3rmion/pvss/poly"
)

var (
	// ErrInsufficientShares is returned when fewer than t+1 points are
	// supplied for a polynomial of degree t.
	ErrInsufficientShares = errors.New("lagrange: insufficient shares")

	// ErrDuplicateIndex is returned when the same index appears twice.
	ErrDuplicateIndex = errors.New("lagrange: duplicate index")
)

// Point is an evaluation f(Index) = Value of an implicit polynomial.
type Point struct {
	Index int
	Value fr.Element
}

// Interpolator computes weights with a configurable polynomial multiplier.
type Interpolator struct {
	mul poly.Multiplier
}

// New returns an Interpolator that builds accumulators with m.
func New(m poly.Multiplier) *Interpolator {
	return &Interpolator{mul: m}
}

var defaultInterpolator = New(poly.DefaultMultiplier)

// Coefficients returns the weights of indices at the point at, using
// poly.DefaultMultiplier.
func Coefficients(indices []int, at *fr.Element) ([]fr.Element, error) {
	return defaultInterpolator.Coefficients(indices, at)
}

// BatchCoefficients returns the weights of indices at zero, keyed by index.
func BatchCoefficients(indices []int) (map[int]fr.Element, error) {
	return defaultInterpolator.BatchCoefficients(indices)
}

// InterpolateAtZero returns f(0) for a polynomial of degree t.
func InterpolateAtZero(points []Point, t int) (fr.Element, error) {
	return defaultInterpolator.InterpolateAtZero(points, t)
}

// Coefficients returns w_i(at) for every index, in the order given.
// If at coincides with one of the indices the weights are the indicator of
// that index.
func (ip *Interpolator) Coefficients(indices []int, at *fr.Element) ([]fr.Element, error) {
	xs, err := toScalars(indices)
	if err != nil {
		return nil, err
	}

	w := make([]fr.Element, len(xs))
	for k := range xs {
		if xs[k].Equal(at) {
			w[k].SetOne()
			return w, nil
		}
	}

	acc, err := ip.mul.BuildAccumulator(xs)
	if err != nil {
		return nil, fmt.Errorf("lagrange: accumulator: %w", err)
	}
	// A'(x_i) = prod_{j != i} (x_i - x_j)
	derivs, err := ip.mul.EvaluateMany(poly.Derivative(acc), xs)
	if err != nil {
		return nil, fmt.Errorf("lagrange: evaluating derivative: %w", err)
	}
	accAt, err := poly.Evaluate(acc, at)
	if err != nil {
		return nil, err
	}

	denoms := make([]fr.Element, len(xs))
	for i := range xs {
		denoms[i].Sub(at, &xs[i])
		denoms[i].Mul(&denoms[i], &derivs[i])
	}
	inv := fr.BatchInvert(denoms)
	for i := range w {
		w[i].Mul(&accAt, &inv[i])
	}
	return w, nil
}

// BatchCoefficients returns the weights at zero keyed by index, for callers
// that combine group-valued shares by multi-exponentiation.
func (ip *Interpolator) BatchCoefficients(indices []int) (map[int]fr.Element, error) {
	var zero fr.Element
	w, err := ip.Coefficients(indices, &zero)
	if err != nil {
		return nil, err
	}
	out := make(map[int]fr.Element, len(indices))
	for i, idx := range indices {
		out[idx] = w[i]
	}
	return out, nil
}

// InterpolateAtZero returns f(0) from at least t+1 points of a degree-t
// polynomial. Extra points are used as given; they must lie on the same
// polynomial for the result to be meaningful.
func (ip *Interpolator) InterpolateAtZero(points []Point, t int) (fr.Element, error) {
	var s fr.Element
	if t < 0 {
		return s, fmt.Errorf("lagrange: negative threshold %d", t)
	}
	if len(points) < t+1 {
		return s, fmt.Errorf("%w: have %d, need %d", ErrInsufficientShares, len(points), t+1)
	}

	indices := make([]int, len(points))
	for i := range points {
		indices[i] = points[i].Index
	}
	var zero fr.Element
	w, err := ip.Coefficients(indices, &zero)
	if err != nil {
		return s, err
	}

	var term fr.Element
	for i := range points {
		term.Mul(&w[i], &points[i].Value)
		s.Add(&s, &term)
	}
	return s, nil
}

func toScalars(indices []int) ([]fr.Element, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: no indices", ErrInsufficientShares)
	}
	seen := make(map[int]struct{}, len(indices))
	xs := make([]fr.Element, len(indices))
	for i, idx := range indices {
		if _, ok := seen[idx]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateIndex, idx)
		}
		seen[idx] = struct{}{}
		xs[i] = group.ScalarFromInt(idx)
	}
	return xs, nil
}
