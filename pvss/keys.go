package pvss

import (
	"errors"
	"fmt"
	"io"

	"github.com/f3rmion/pvss/group"
)

// DecryptKey is a participant's secret decryption key dk.
type DecryptKey struct {
	dk group.Scalar
}

// EncryptKey is a participant's public encryption key ek = h^{1/dk} in the
// share group.
type EncryptKey struct {
	Point group.Point
}

// GenerateKeyPair samples a decryption key and its encryption key.
func (s *Scheme) GenerateKeyPair(rng io.Reader) (*DecryptKey, *EncryptKey, error) {
	dk, err := group.RandomScalar(rng)
	if err != nil {
		return nil, nil, fmt.Errorf("sampling decryption key: %w", err)
	}
	if dk.IsZero() {
		return nil, nil, errors.New("pvss: sampled zero decryption key")
	}
	var inv group.Scalar
	inv.Inverse(&dk)
	ek := s.shareGroup.NewPoint().ScalarMult(&inv, s.params.H)
	return &DecryptKey{dk: dk}, &EncryptKey{Point: ek}, nil
}

// Bytes returns the canonical 32-byte encoding of dk.
func (k *DecryptKey) Bytes() []byte {
	return group.ScalarBytes(&k.dk)
}

// Zeroize overwrites the key.
func (k *DecryptKey) Zeroize() {
	k.dk.SetZero()
}

// String does not reveal the key.
func (k *DecryptKey) String() string {
	return "pvss.DecryptKey{REDACTED}"
}

// GoString does not reveal the key.
func (k *DecryptKey) GoString() string {
	return k.String()
}

// Bytes returns the compressed encoding of ek.
func (k *EncryptKey) Bytes() []byte {
	return k.Point.Bytes()
}

// Equal reports whether k and other are the same key.
func (k *EncryptKey) Equal(other *EncryptKey) bool {
	return other != nil && k.Point.Equal(other.Point)
}

// EncryptKeyFor returns the encryption key matching dk.
func (s *Scheme) EncryptKeyFor(dk *DecryptKey) *EncryptKey {
	var inv group.Scalar
	inv.Inverse(&dk.dk)
	return &EncryptKey{Point: s.shareGroup.NewPoint().ScalarMult(&inv, s.params.H)}
}

// DecodeDecryptKey parses a canonical decryption key.
func (s *Scheme) DecodeDecryptKey(b []byte) (*DecryptKey, error) {
	dk, err := group.ScalarFromBytes(b)
	if err != nil {
		return nil, err
	}
	if dk.IsZero() {
		return nil, fmt.Errorf("%w: zero decryption key", ErrDeserialization)
	}
	return &DecryptKey{dk: dk}, nil
}

// DecodeEncryptKey parses a compressed encryption key in the share group,
// rejecting the identity.
func (s *Scheme) DecodeEncryptKey(b []byte) (*EncryptKey, error) {
	p, err := s.shareGroup.NewPoint().SetBytes(b)
	if err != nil {
		return nil, err
	}
	if p.IsIdentity() {
		return nil, fmt.Errorf("%w: identity encryption key", ErrDeserialization)
	}
	return &EncryptKey{Point: p}, nil
}

func (s *Scheme) checkKeys(eks []*EncryptKey) error {
	if len(eks) != s.total {
		return malformed("got %d encryption keys, want %d", len(eks), s.total)
	}
	for i, ek := range eks {
		if ek == nil || ek.Point == nil {
			return malformed("missing encryption key for participant %d", i+1)
		}
		if !s.shareGroup.Contains(ek.Point) {
			return malformed("encryption key for participant %d is not a %s point", i+1, s.shareGroup.Name())
		}
		if ek.Point.IsIdentity() {
			return malformed("identity encryption key for participant %d", i+1)
		}
	}
	return nil
}
