package bls12381

import (
	"errors"
	"fmt"

	bls "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/f3rmion/pvss/group"
)

// Curve implements [group.Pairing] for BLS12-381.
//
// Curve is safe for concurrent use; it carries no mutable state.
type Curve struct {
	g1 *G1
	g2 *G2
}

// Option configures a Curve.
type Option func(*Curve)

// WithMultiExpTasks bounds the number of goroutines used by a single
// multi-exponentiation. Zero lets gnark-crypto pick based on the CPU count.
func WithMultiExpTasks(n int) Option {
	return func(c *Curve) {
		c.g1.tasks = n
		c.g2.tasks = n
	}
}

// New returns the BLS12-381 pairing.
func New(opts ...Option) *Curve {
	c := &Curve{g1: &G1{}, g2: &G2{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns "BLS12-381".
func (c *Curve) Name() string {
	return "BLS12-381"
}

// G1 returns the G1 source group.
func (c *Curve) G1() group.Group {
	return c.g1
}

// G2 returns the G2 source group.
func (c *Curve) G2() group.Group {
	return c.g2
}

// PairingCheck reports whether prod e(p[i], q[i]) == 1 in GT.
// All pairs share a single Miller loop and one final exponentiation.
func (c *Curve) PairingCheck(p, q []group.Point) (bool, error) {
	if len(p) != len(q) {
		return false, errors.New("pairing: G1 and G2 inputs differ in length")
	}
	if len(p) == 0 {
		return true, nil
	}
	ps := make([]bls.G1Affine, len(p))
	qs := make([]bls.G2Affine, len(q))
	for i := range p {
		p1, ok := p[i].(*G1Point)
		if !ok {
			return false, fmt.Errorf("pairing: input %d is not a G1 point", i)
		}
		q2, ok := q[i].(*G2Point)
		if !ok {
			return false, fmt.Errorf("pairing: input %d is not a G2 point", i)
		}
		ps[i] = p1.Affine()
		qs[i] = q2.Affine()
	}
	return bls.PairingCheck(ps, qs)
}
