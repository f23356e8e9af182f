// Package dealersig signs PVSS dealer contributions with BLS signatures
// under setup-time dealer keys.
//
// Keys and signatures use the "minimal public key" layout: public keys are
// compressed G1 points (48 bytes) and signatures compressed G2 points
// (96 bytes), hashed to G2 with a fixed domain separation tag. The
// implementation is a thin wrapper over blst.
package dealersig

import (
	"errors"
	"fmt"

	blst "github.com/supranational/blst/bindings/go"
)

// DST is the domain separation tag for dealer signatures.
const DST = "PVSS_DEALER_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_"

const (
	// PublicKeySize is the length of a compressed public key.
	PublicKeySize = 48
	// SignatureSize is the length of a compressed signature.
	SignatureSize = 96
	// MinIKMSize is the minimum length of key material accepted by GenerateKey.
	MinIKMSize = 32
)

var (
	// ErrInvalidKey is returned for malformed or invalid key material.
	ErrInvalidKey = errors.New("dealersig: invalid key")
	// ErrInvalidSignature is returned for malformed signatures and failed
	// verifications.
	ErrInvalidSignature = errors.New("dealersig: invalid signature")
)

// PublicKey is a dealer's verification key.
type PublicKey struct {
	p blst.P1Affine
}

// Signer holds a dealer's secret signing key.
type Signer struct {
	sk *blst.SecretKey
	pk *PublicKey
}

// GenerateKey derives a signing key from at least MinIKMSize bytes of
// secret key material.
func GenerateKey(ikm []byte) (*Signer, error) {
	if len(ikm) < MinIKMSize {
		return nil, fmt.Errorf("%w: need %d bytes of key material, got %d", ErrInvalidKey, MinIKMSize, len(ikm))
	}
	sk := blst.KeyGen(ikm)
	if sk == nil {
		return nil, ErrInvalidKey
	}
	pk := &PublicKey{}
	pk.p.From(sk)
	return &Signer{sk: sk, pk: pk}, nil
}

// PublicKey returns the verification key for s.
func (s *Signer) PublicKey() *PublicKey {
	return s.pk
}

// Sign returns the compressed signature of msg.
func (s *Signer) Sign(msg []byte) []byte {
	var sig blst.P2Affine
	sig.Sign(s.sk, msg, []byte(DST))
	return sig.Compress()
}

// Zeroize wipes the secret key. The Signer must not be used afterwards.
func (s *Signer) Zeroize() {
	s.sk.Zeroize()
}

// Bytes returns the compressed public key.
func (pk *PublicKey) Bytes() []byte {
	return pk.p.Compress()
}

// Equal reports whether pk and other are the same key.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return other != nil && pk.p.Equals(&other.p)
}

// ParsePublicKey decodes a compressed public key, rejecting the identity
// and points outside the prime-order subgroup.
func ParsePublicKey(b []byte) (*PublicKey, error) {
	if len(b) != PublicKeySize {
		return nil, fmt.Errorf("%w: length %d, want %d", ErrInvalidKey, len(b), PublicKeySize)
	}
	p := new(blst.P1Affine).Uncompress(b)
	if p == nil || !p.KeyValidate() {
		return nil, ErrInvalidKey
	}
	return &PublicKey{p: *p}, nil
}

// Verify checks sig over msg under pk.
func Verify(pk *PublicKey, sig, msg []byte) error {
	if pk == nil {
		return ErrInvalidKey
	}
	if len(sig) != SignatureSize {
		return fmt.Errorf("%w: length %d, want %d", ErrInvalidSignature, len(sig), SignatureSize)
	}
	s := new(blst.P2Affine).Uncompress(sig)
	if s == nil {
		return ErrInvalidSignature
	}
	if !s.Verify(true, &pk.p, true, msg, []byte(DST)) {
		return ErrInvalidSignature
	}
	return nil
}
