package dealersig

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func newSigner(t *testing.T) *Signer {
	t.Helper()
	ikm := make([]byte, MinIKMSize)
	_, err := rand.Read(ikm)
	require.NoError(t, err)
	s, err := GenerateKey(ikm)
	require.NoError(t, err)
	return s
}

func TestSignVerify(t *testing.T) {
	s := newSigner(t)
	msg := []byte("dealer 7 contribution")
	sig := s.Sign(msg)
	require.Len(t, sig, SignatureSize)
	require.NoError(t, Verify(s.PublicKey(), sig, msg))

	t.Run("WrongMessage", func(t *testing.T) {
		require.ErrorIs(t, Verify(s.PublicKey(), sig, []byte("dealer 8 contribution")), ErrInvalidSignature)
	})

	t.Run("WrongKey", func(t *testing.T) {
		other := newSigner(t)
		require.ErrorIs(t, Verify(other.PublicKey(), sig, msg), ErrInvalidSignature)
	})

	t.Run("Truncated", func(t *testing.T) {
		require.ErrorIs(t, Verify(s.PublicKey(), sig[:SignatureSize-1], msg), ErrInvalidSignature)
	})

	t.Run("Garbage", func(t *testing.T) {
		bad := bytes.Repeat([]byte{0xff}, SignatureSize)
		require.ErrorIs(t, Verify(s.PublicKey(), bad, msg), ErrInvalidSignature)
	})

	t.Run("NilKey", func(t *testing.T) {
		require.ErrorIs(t, Verify(nil, sig, msg), ErrInvalidKey)
	})
}

func TestDeterministicKey(t *testing.T) {
	ikm := bytes.Repeat([]byte{0x42}, MinIKMSize)
	a, err := GenerateKey(ikm)
	require.NoError(t, err)
	b, err := GenerateKey(ikm)
	require.NoError(t, err)
	require.True(t, a.PublicKey().Equal(b.PublicKey()))
	require.Equal(t, a.Sign([]byte("m")), b.Sign([]byte("m")))

	_, err = GenerateKey(ikm[:MinIKMSize-1])
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestPublicKeyEncoding(t *testing.T) {
	s := newSigner(t)
	enc := s.PublicKey().Bytes()
	require.Len(t, enc, PublicKeySize)

	pk, err := ParsePublicKey(enc)
	require.NoError(t, err)
	require.True(t, pk.Equal(s.PublicKey()))

	_, err = ParsePublicKey(enc[1:])
	require.ErrorIs(t, err, ErrInvalidKey)

	// Compressed identity: infinity and compression flags set.
	identity := make([]byte, PublicKeySize)
	identity[0] = 0xc0
	_, err = ParsePublicKey(identity)
	require.ErrorIs(t, err, ErrInvalidKey)
}
