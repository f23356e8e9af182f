package group

import (
	"errors"
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// ErrDeserialization is wrapped by every error returned when untrusted
// bytes cannot be decoded into a valid group element or scalar.
var ErrDeserialization = errors.New("deserialization failure")

// Scalar is an element of the prime-order scalar field shared by both source
// groups.
type Scalar = fr.Element

// Point represents an element of a prime-order source group, typically a
// point on an elliptic curve. Points support addition, subtraction,
// negation, and scalar multiplication.
//
// All arithmetic methods use a mutable receiver pattern: they modify the
// receiver, store the result in it, and return it.
//
// The identity element (point at infinity) is the additive identity:
// P + Identity = P for all points P.
type Point interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Point) Point
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Point) Point
	// Negate sets the receiver to -a and returns it.
	Negate(a Point) Point
	// ScalarMult sets the receiver to s*p and returns it.
	ScalarMult(s *Scalar, p Point) Point
	// Set sets the receiver to a and returns it.
	Set(a Point) Point
	// Bytes returns the canonical compressed encoding of the point.
	Bytes() []byte
	// SetBytes sets the receiver from a compressed encoding and returns it.
	// Returns an error wrapping ErrDeserialization if the data has the wrong
	// length, is not on the curve, or is outside the prime-order subgroup.
	SetBytes(data []byte) (Point, error)
	// Equal reports whether the receiver equals b.
	Equal(b Point) bool
	// IsIdentity reports whether the receiver is the identity element.
	IsIdentity() bool
}

// Group defines one source group of a pairing. It provides factory methods
// for creating points, access to the group's generator, hashing to the
// group, and multi-scalar multiplication.
//
// Example usage:
//
//	curve := bls12381.New()
//	g := curve.G1()
//	s, _ := group.RandomScalar(rand.Reader)
//	point := g.NewPoint().ScalarMult(&s, g.Generator())
type Group interface {
	// Name identifies the group, for example "BLS12-381/G1".
	Name() string
	// NewPoint returns a new identity point.
	NewPoint() Point
	// Generator returns the group's standard base point.
	Generator() Point
	// HashToPoint hashes msg to a point of unknown discrete logarithm
	// using the domain separation tag dst.
	HashToPoint(msg, dst []byte) (Point, error)
	// PointSize returns the length in bytes of a compressed point.
	PointSize() int
	// Contains reports whether p is a non-nil point of this group.
	Contains(p Point) bool
	// MultiExp returns sum(scalars[i] * points[i]).
	// Returns an error if the slices differ in length.
	MultiExp(points []Point, scalars []Scalar) (Point, error)
}

// Pairing ties together the two source groups of an asymmetric bilinear
// pairing e: G1 x G2 -> GT.
type Pairing interface {
	// Name identifies the curve, for example "BLS12-381".
	Name() string
	// G1 returns the first source group.
	G1() Group
	// G2 returns the second source group.
	G2() Group
	// PairingCheck reports whether prod e(p[i], q[i]) is the identity of GT.
	// Every p[i] must be a G1 point and every q[i] a G2 point.
	PairingCheck(p, q []Point) (bool, error)
}

// RandomScalar returns a uniformly random scalar read from r.
//
// Sixty-four bytes are drawn and reduced modulo the field order so that
// the bias of the reduction is negligible.
func RandomScalar(r io.Reader) (Scalar, error) {
	var buf [64]byte
	var s Scalar
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return s, err
	}
	s.SetBytes(buf[:])
	return s, nil
}

// ScalarFromInt returns the scalar with value v.
func ScalarFromInt(v int) Scalar {
	var s Scalar
	s.SetInt64(int64(v))
	return s
}

// ScalarBytes returns the canonical 32-byte big-endian encoding of s.
func ScalarBytes(s *Scalar) []byte {
	b := s.Bytes()
	return b[:]
}

// ScalarFromBytes decodes a canonical 32-byte big-endian scalar.
// Values that are not reduced modulo the field order are rejected.
func ScalarFromBytes(data []byte) (Scalar, error) {
	var s Scalar
	if len(data) != fr.Bytes {
		return s, fmt.Errorf("%w: scalar has length %d, want %d", ErrDeserialization, len(data), fr.Bytes)
	}
	if err := s.SetBytesCanonical(data); err != nil {
		return s, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	return s, nil
}
