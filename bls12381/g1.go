package bls12381

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	bls "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/f3rmion/pvss/group"
)

// G1Point represents a point of the BLS12-381 G1 subgroup.
// It implements [group.Point] by wrapping gnark-crypto's G1Jac.
type G1Point struct {
	inner bls.G1Jac
}

func newG1Point() *G1Point {
	var p G1Point
	var inf bls.G1Affine
	p.inner.FromAffine(&inf)
	return &p
}

// Add sets p to a + b and returns p.
func (p *G1Point) Add(a, b group.Point) group.Point {
	aPoint := a.(*G1Point)
	bPoint := b.(*G1Point)
	var sum bls.G1Jac
	sum.Set(&aPoint.inner)
	sum.AddAssign(&bPoint.inner)
	p.inner.Set(&sum)
	return p
}

// Sub sets p to a - b and returns p.
func (p *G1Point) Sub(a, b group.Point) group.Point {
	aPoint := a.(*G1Point)
	bPoint := b.(*G1Point)
	var negB bls.G1Jac
	negB.Neg(&bPoint.inner)
	negB.AddAssign(&aPoint.inner)
	p.inner.Set(&negB)
	return p
}

// Negate sets p to -a and returns p.
func (p *G1Point) Negate(a group.Point) group.Point {
	aPoint := a.(*G1Point)
	p.inner.Neg(&aPoint.inner)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *G1Point) ScalarMult(s *group.Scalar, q group.Point) group.Point {
	qPoint := q.(*G1Point)
	var k big.Int
	s.BigInt(&k)
	p.inner.ScalarMultiplication(&qPoint.inner, &k)
	return p
}

// Set copies the value of a into p and returns p.
func (p *G1Point) Set(a group.Point) group.Point {
	aPoint := a.(*G1Point)
	p.inner.Set(&aPoint.inner)
	return p
}

// Affine returns p in affine coordinates.
func (p *G1Point) Affine() bls.G1Affine {
	var aff bls.G1Affine
	aff.FromJacobian(&p.inner)
	return aff
}

// Bytes returns the 48-byte compressed point encoding.
func (p *G1Point) Bytes() []byte {
	aff := p.Affine()
	bytes := aff.Bytes()
	return bytes[:]
}

// SetBytes sets p from a compressed point encoding and returns p.
// Returns an error if the data does not represent a point of the
// prime-order subgroup.
func (p *G1Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) != bls.SizeOfG1AffineCompressed {
		return nil, fmt.Errorf("%w: G1 point has length %d, want %d",
			group.ErrDeserialization, len(data), bls.SizeOfG1AffineCompressed)
	}
	var aff bls.G1Affine
	if _, err := aff.SetBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", group.ErrDeserialization, err)
	}
	if !aff.IsInSubGroup() {
		return nil, fmt.Errorf("%w: G1 point not in subgroup", group.ErrDeserialization)
	}
	p.inner.FromAffine(&aff)
	return p, nil
}

// Equal reports whether p and b represent the same point.
func (p *G1Point) Equal(b group.Point) bool {
	bPoint, ok := b.(*G1Point)
	if !ok {
		return false
	}
	return p.inner.Equal(&bPoint.inner)
}

// IsIdentity reports whether p is the point at infinity.
func (p *G1Point) IsIdentity() bool {
	return p.inner.Z.IsZero()
}

// G1 implements [group.Group] for the BLS12-381 G1 subgroup.
type G1 struct {
	tasks int
}

// Name returns "BLS12-381/G1".
func (g *G1) Name() string {
	return "BLS12-381/G1"
}

// NewPoint returns a new point initialized to the identity element.
func (g *G1) NewPoint() group.Point {
	return newG1Point()
}

// Generator returns the standard G1 generator.
func (g *G1) Generator() group.Point {
	gen, _, _, _ := bls.Generators()
	return &G1Point{inner: gen}
}

// HashToPoint hashes msg to G1 using the RFC 9380 SSWU map.
func (g *G1) HashToPoint(msg, dst []byte) (group.Point, error) {
	aff, err := bls.HashToG1(msg, dst)
	if err != nil {
		return nil, err
	}
	p := newG1Point()
	p.inner.FromAffine(&aff)
	return p, nil
}

// PointSize returns the size of a compressed G1 point.
func (g *G1) PointSize() int {
	return bls.SizeOfG1AffineCompressed
}

// Contains reports whether p is a non-nil G1 point.
func (g *G1) Contains(p group.Point) bool {
	q, ok := p.(*G1Point)
	return ok && q != nil
}

// MultiExp returns sum(scalars[i] * points[i]) using Pippenger's algorithm.
func (g *G1) MultiExp(points []group.Point, scalars []group.Scalar) (group.Point, error) {
	if len(points) != len(scalars) {
		return nil, errors.New("multiexp: points and scalars differ in length")
	}
	out := newG1Point()
	if len(points) == 0 {
		return out, nil
	}
	affs := make([]bls.G1Affine, len(points))
	for i, pt := range points {
		q, ok := pt.(*G1Point)
		if !ok || q == nil {
			return nil, fmt.Errorf("multiexp: input %d is not a G1 point", i)
		}
		affs[i] = q.Affine()
	}
	if _, err := out.inner.MultiExp(affs, scalars, ecc.MultiExpConfig{NbTasks: g.tasks}); err != nil {
		return nil, err
	}
	return out, nil
}
