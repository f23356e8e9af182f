package poly

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// hornerCutoff is the number of points below which EvaluateMany runs Horner
// per point instead of building a remainder tree.
const hornerCutoff = 16

// EvaluateMany returns p evaluated at every point, in order.
//
// For many points p is reduced modulo the subproduct tree over points, from
// the root down to the linear leaves; the remainder at leaf i is p(points[i]).
func (m Multiplier) EvaluateMany(p Polynomial, points []fr.Element) ([]fr.Element, error) {
	if len(p) == 0 {
		return nil, ErrEmptyPolynomial
	}
	out := make([]fr.Element, len(points))
	if len(points) < hornerCutoff {
		for i := range points {
			out[i] = horner(p, &points[i])
		}
		return out, nil
	}

	tree, err := m.subproductTree(points)
	if err != nil {
		return nil, err
	}

	top := len(tree) - 1
	_, r, err := m.DivideFast(p, tree[top][0])
	if err != nil {
		return nil, err
	}
	rems := []Polynomial{r}
	for l := top - 1; l >= 0; l-- {
		next := make([]Polynomial, len(tree[l]))
		for j := range next {
			_, r, err := m.DivideFast(rems[j/2], tree[l][j])
			if err != nil {
				return nil, err
			}
			next[j] = r
		}
		rems = next
	}
	for i := range out {
		out[i] = rems[i][0]
	}
	return out, nil
}
