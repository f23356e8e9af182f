package bls12381

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	bls "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/f3rmion/pvss/group"
)

// G2Point represents a point of the BLS12-381 G2 subgroup.
// It implements [group.Point] by wrapping gnark-crypto's G2Jac.
type G2Point struct {
	inner bls.G2Jac
}

func newG2Point() *G2Point {
	var p G2Point
	var inf bls.G2Affine
	p.inner.FromAffine(&inf)
	return &p
}

// Add sets p to a + b and returns p.
func (p *G2Point) Add(a, b group.Point) group.Point {
	aPoint := a.(*G2Point)
	bPoint := b.(*G2Point)
	var sum bls.G2Jac
	sum.Set(&aPoint.inner)
	sum.AddAssign(&bPoint.inner)
	p.inner.Set(&sum)
	return p
}

// Sub sets p to a - b and returns p.
func (p *G2Point) Sub(a, b group.Point) group.Point {
	aPoint := a.(*G2Point)
	bPoint := b.(*G2Point)
	var negB bls.G2Jac
	negB.Neg(&bPoint.inner)
	negB.AddAssign(&aPoint.inner)
	p.inner.Set(&negB)
	return p
}

// Negate sets p to -a and returns p.
func (p *G2Point) Negate(a group.Point) group.Point {
	aPoint := a.(*G2Point)
	p.inner.Neg(&aPoint.inner)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *G2Point) ScalarMult(s *group.Scalar, q group.Point) group.Point {
	qPoint := q.(*G2Point)
	var k big.Int
	s.BigInt(&k)
	p.inner.ScalarMultiplication(&qPoint.inner, &k)
	return p
}

// Set copies the value of a into p and returns p.
func (p *G2Point) Set(a group.Point) group.Point {
	aPoint := a.(*G2Point)
	p.inner.Set(&aPoint.inner)
	return p
}

// Affine returns p in affine coordinates.
func (p *G2Point) Affine() bls.G2Affine {
	var aff bls.G2Affine
	aff.FromJacobian(&p.inner)
	return aff
}

// Bytes returns the 96-byte compressed point encoding.
func (p *G2Point) Bytes() []byte {
	aff := p.Affine()
	bytes := aff.Bytes()
	return bytes[:]
}

// SetBytes sets p from a compressed point encoding and returns p.
// Returns an error if the data does not represent a point of the
// prime-order subgroup.
func (p *G2Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) != bls.SizeOfG2AffineCompressed {
		return nil, fmt.Errorf("%w: G2 point has length %d, want %d",
			group.ErrDeserialization, len(data), bls.SizeOfG2AffineCompressed)
	}
	var aff bls.G2Affine
	if _, err := aff.SetBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", group.ErrDeserialization, err)
	}
	if !aff.IsInSubGroup() {
		return nil, fmt.Errorf("%w: G2 point not in subgroup", group.ErrDeserialization)
	}
	p.inner.FromAffine(&aff)
	return p, nil
}

// Equal reports whether p and b represent the same point.
func (p *G2Point) Equal(b group.Point) bool {
	bPoint, ok := b.(*G2Point)
	if !ok {
		return false
	}
	return p.inner.Equal(&bPoint.inner)
}

// IsIdentity reports whether p is the point at infinity.
func (p *G2Point) IsIdentity() bool {
	return p.inner.Z.IsZero()
}

// G2 implements [group.Group] for the BLS12-381 G2 subgroup.
type G2 struct {
	tasks int
}

// Name returns "BLS12-381/G2".
func (g *G2) Name() string {
	return "BLS12-381/G2"
}

// NewPoint returns a new point initialized to the identity element.
func (g *G2) NewPoint() group.Point {
	return newG2Point()
}

// Generator returns the standard G2 generator.
func (g *G2) Generator() group.Point {
	_, gen, _, _ := bls.Generators()
	return &G2Point{inner: gen}
}

// HashToPoint hashes msg to G2 using the RFC 9380 SSWU map.
func (g *G2) HashToPoint(msg, dst []byte) (group.Point, error) {
	aff, err := bls.HashToG2(msg, dst)
	if err != nil {
		return nil, err
	}
	p := newG2Point()
	p.inner.FromAffine(&aff)
	return p, nil
}

// PointSize returns the size of a compressed G2 point.
func (g *G2) PointSize() int {
	return bls.SizeOfG2AffineCompressed
}

// Contains reports whether p is a non-nil G2 point.
func (g *G2) Contains(p group.Point) bool {
	q, ok := p.(*G2Point)
	return ok && q != nil
}

// MultiExp returns sum(scalars[i] * points[i]) using Pippenger's algorithm.
func (g *G2) MultiExp(points []group.Point, scalars []group.Scalar) (group.Point, error) {
	if len(points) != len(scalars) {
		return nil, errors.New("multiexp: points and scalars differ in length")
	}
	out := newG2Point()
	if len(points) == 0 {
		return out, nil
	}
	affs := make([]bls.G2Affine, len(points))
	for i, pt := range points {
		q, ok := pt.(*G2Point)
		if !ok || q == nil {
			return nil, fmt.Errorf("multiexp: input %d is not a G2 point", i)
		}
		affs[i] = q.Affine()
	}
	if _, err := out.inner.MultiExp(affs, scalars, ecc.MultiExpConfig{NbTasks: g.tasks}); err != nil {
		return nil, err
	}
	return out, nil
}
