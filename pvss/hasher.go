package pvss

import (
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/f3rmion/pvss/group"
)

// Hasher derives the Fiat-Shamir challenges used by verification and by
// proofs of knowledge. Implementations must be deterministic and must
// separate the two uses.
type Hasher interface {
	// Randomizers derives count scalars for the batched pairing check from
	// the encoded verification statement.
	Randomizers(statement []byte, count int) []group.Scalar

	// Challenge computes the Schnorr challenge for a proof of knowledge.
	// Inputs: encoded context (dealer, t, n), the statement g^{c_0} and
	// the prover's nonce commitment.
	Challenge(context, statement, nonce []byte) group.Scalar
}

// SHA3Hasher implements Hasher with SHA3-512 and a domain separation prefix.
// This is the default hasher.
type SHA3Hasher struct {
	// Prefix is the domain separation prefix.
	Prefix string
}

// NewSHA3Hasher returns a SHA3Hasher with the default prefix.
func NewSHA3Hasher() *SHA3Hasher {
	return &SHA3Hasher{Prefix: "PVSS-BLS12381-SHA3-512-v1"}
}

// Randomizers implements Hasher.Randomizers.
func (h *SHA3Hasher) Randomizers(statement []byte, count int) []group.Scalar {
	return randomizers(sha3.New512, h.Prefix, statement, count)
}

// Challenge implements Hasher.Challenge.
func (h *SHA3Hasher) Challenge(context, statement, nonce []byte) group.Scalar {
	return hashToScalar(sha3.New512, h.Prefix, "pok", context, statement, nonce)
}

// Blake2bHasher implements Hasher with Blake2b-512 and a domain separation
// prefix.
type Blake2bHasher struct {
	// Prefix is the domain separation prefix.
	Prefix string
}

// NewBlake2bHasher returns a Blake2bHasher with the default prefix.
func NewBlake2bHasher() *Blake2bHasher {
	return &Blake2bHasher{Prefix: "PVSS-BLS12381-BLAKE2B-512-v1"}
}

func newBlake2b() hash.Hash {
	h, _ := blake2b.New512(nil)
	return h
}

// Randomizers implements Hasher.Randomizers.
func (h *Blake2bHasher) Randomizers(statement []byte, count int) []group.Scalar {
	return randomizers(newBlake2b, h.Prefix, statement, count)
}

// Challenge implements Hasher.Challenge.
func (h *Blake2bHasher) Challenge(context, statement, nonce []byte) group.Scalar {
	return hashToScalar(newBlake2b, h.Prefix, "pok", context, statement, nonce)
}

// hashToScalar hashes prefix || tag || len-prefixed data and reduces the
// 64-byte digest modulo the field order.
func hashToScalar(newHash func() hash.Hash, prefix, tag string, data ...[]byte) group.Scalar {
	hasher := newHash()
	hasher.Write([]byte(prefix))
	hasher.Write([]byte(tag))
	var n [8]byte
	for _, d := range data {
		binary.BigEndian.PutUint64(n[:], uint64(len(d)))
		hasher.Write(n[:])
		hasher.Write(d)
	}
	var s group.Scalar
	s.SetBytes(hasher.Sum(nil))
	return s
}

// randomizers hashes the statement once into a seed and expands it into
// count scalars r_i = H(prefix, "rand", seed, i).
func randomizers(newHash func() hash.Hash, prefix string, statement []byte, count int) []group.Scalar {
	hasher := newHash()
	hasher.Write([]byte(prefix))
	hasher.Write([]byte("seed"))
	hasher.Write(statement)
	seed := hasher.Sum(nil)

	out := make([]group.Scalar, count)
	var idx [8]byte
	for i := range out {
		binary.BigEndian.PutUint64(idx[:], uint64(i))
		out[i] = hashToScalar(newHash, prefix, "rand", seed, idx[:])
	}
	return out
}
