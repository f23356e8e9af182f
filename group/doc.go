// Package group defines abstract interfaces for the pairing-friendly groups
// used by the PVSS engine.
//
// This package provides the interfaces that separate the protocol logic from
// any particular curve library:
//
//   - [Point]: Elements of a source group (points on an elliptic curve)
//   - [Group]: Factory and utility methods for creating points in one group
//   - [Pairing]: The two source groups G1 and G2 together with the bilinear map
//
// Scalars are elements of the curve's prime-order scalar field and are
// represented directly by gnark-crypto's fr.Element, which already offers
// a value-typed, allocation-free API that the polynomial engine builds on.
//
// # Design Philosophy
//
// The point interface uses a mutable receiver pattern for efficiency.
// Operations like Add and ScalarMult set the receiver to the result and
// return it, allowing method chaining while minimizing allocations:
//
//	// Compute a + s*b
//	result := g.NewPoint().ScalarMult(&s, b)
//	result = g.NewPoint().Add(a, result)
//
// Implementations are free to use an internal representation that is fast
// for arithmetic (projective or Jacobian coordinates) and convert to the
// canonical affine form only in Bytes, SetBytes and when handing points to a
// pairing or multi-exponentiation.
//
// # Trust Boundary
//
// SetBytes is the only way untrusted data enters a [Point]. Implementations
// must reject encodings that are not on the curve or not in the prime-order
// subgroup, and must report such failures with an error wrapping
// [ErrDeserialization].
//
// # Implementing a Group
//
// To implement these interfaces for a new pairing-friendly curve:
//
//  1. Create one Point type per source group implementing [Point]
//  2. Create one Group type per source group implementing [Group]
//  3. Create a type implementing [Pairing] that ties the two together
//
// See the bls12381 package for a complete implementation using gnark-crypto.
package group
