// Package bls12381 provides a BLS12-381 implementation of the [group.Pairing],
// [group.Group] and [group.Point] interfaces for use with the PVSS engine.
//
// BLS12-381 is a pairing-friendly Barreto-Lynn-Scott curve with embedding
// degree 12. It offers two prime-order source groups of the same order r,
// G1 over Fp and G2 over Fp2, and an efficient optimal Ate pairing into a
// subgroup GT of Fp12.
//
// This package wraps the BLS12-381 implementation from gnark-crypto,
// providing a clean interface that satisfies [group.Pairing].
//
// # Representation
//
// Points are held in Jacobian coordinates, which make additions and scalar
// multiplications inversion-free. Conversion to affine coordinates happens
// only when a point is encoded, decoded, paired, or fed to a
// multi-exponentiation.
//
//	G1 compressed encoding: 48 bytes
//	G2 compressed encoding: 96 bytes
//
// The scalar field order is
//
//	52435875175126190479447740508185965837690552500527637822603658699938581184513
//
// and has 2-adicity 32, so FFT evaluation domains of up to 2^32 points exist.
//
// # Usage
//
//	curve := bls12381.New()
//	scheme, err := pvss.New(curve, threshold, total)
//
// # Security
//
// SetBytes rejects any encoding that is not a valid compressed point in the
// prime-order subgroup. Points built through arithmetic on valid points stay
// in the subgroup and are never re-checked.
package bls12381
