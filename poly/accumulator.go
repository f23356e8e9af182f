package poly

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// BuildAccumulator returns prod(X - r) over roots using DefaultMultiplier.
func BuildAccumulator(roots []fr.Element) (Polynomial, error) {
	return DefaultMultiplier.BuildAccumulator(roots)
}

// BuildAccumulator returns the monic polynomial prod(X - r) over roots.
// An empty root set yields the constant polynomial 1. The product is formed
// over a balanced binary tree of the linear factors.
func (m Multiplier) BuildAccumulator(roots []fr.Element) (Polynomial, error) {
	if len(roots) == 0 {
		var one fr.Element
		one.SetOne()
		return Polynomial{one}, nil
	}
	tree, err := m.subproductTree(roots)
	if err != nil {
		return nil, err
	}
	return tree[len(tree)-1][0], nil
}

// subproductTree returns the levels of the product tree over roots.
// tree[0] holds the linear factors X - roots[i]; node j of level l+1 is the
// product of nodes 2j and 2j+1 of level l, or a copy of node 2j when it has
// no sibling. The last level holds the single accumulator.
func (m Multiplier) subproductTree(roots []fr.Element) ([][]Polynomial, error) {
	leaves := make([]Polynomial, len(roots))
	for i := range roots {
		leaf := make(Polynomial, 2)
		leaf[0].Neg(&roots[i])
		leaf[1].SetOne()
		leaves[i] = leaf
	}

	tree := [][]Polynomial{leaves}
	for level := leaves; len(level) > 1; {
		next := make([]Polynomial, (len(level)+1)/2)
		for j := range next {
			if 2*j+1 == len(level) {
				next[j] = level[2*j]
				continue
			}
			prod, err := m.Multiply(level[2*j], level[2*j+1])
			if err != nil {
				return nil, err
			}
			next[j] = prod
		}
		tree = append(tree, next)
		level = next
	}
	return tree, nil
}
