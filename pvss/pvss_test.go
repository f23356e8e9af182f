package pvss

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/f3rmion/pvss/bls12381"
	"github.com/f3rmion/pvss/dealersig"
	"github.com/f3rmion/pvss/group"
)

var curve = bls12381.New()

type fixture struct {
	scheme *Scheme
	dks    []*DecryptKey
	eks    []*EncryptKey
}

func newFixture(t *testing.T, threshold, total int, opts ...Option) *fixture {
	t.Helper()
	s, err := New(curve, threshold, total, opts...)
	require.NoError(t, err)
	f := &fixture{scheme: s}
	for range total {
		dk, ek, err := s.GenerateKeyPair(rand.Reader)
		require.NoError(t, err)
		f.dks = append(f.dks, dk)
		f.eks = append(f.eks, ek)
	}
	return f
}

func (f *fixture) deal(t *testing.T, opts DealOptions) (*Dealing, *Transcript) {
	t.Helper()
	d, tr, err := f.scheme.Deal(context.Background(), rand.Reader, f.eks, opts)
	require.NoError(t, err)
	return d, tr
}

func (f *fixture) decryptAll(t *testing.T, tr *Transcript) []Share {
	t.Helper()
	out := make([]Share, len(f.dks))
	for i, dk := range f.dks {
		sh, err := f.scheme.DecryptShare(tr, i+1, dk)
		require.NoError(t, err)
		out[i] = *sh
	}
	return out
}

func pick[T any](all []T, indices ...int) []T {
	out := make([]T, len(indices))
	for k, i := range indices {
		out[k] = all[i-1]
	}
	return out
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		total     int
		opts      []Option
	}{
		{"NegativeThreshold", -1, 3, nil},
		{"ThresholdEqualsTotal", 3, 3, nil},
		{"ThresholdAboveTotal", 4, 3, nil},
		{"UnknownVariant", 1, 3, []Option{WithVariant(7)}},
		{"UnknownAuthentication", 1, 3, []Option{WithAuthentication(9)}},
		{"SignatureWithoutKeys", 1, 3, []Option{WithAuthentication(AuthDealerSignature)}},
		{"NegativeFFTThreshold", 1, 3, []Option{WithFFTThreshold(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(curve, tt.threshold, tt.total, tt.opts...)
			require.ErrorIs(t, err, ErrMalformedInput)
		})
	}

	_, err := New(nil, 1, 2)
	require.ErrorIs(t, err, ErrMalformedInput)

	s, err := New(curve, 1, 2, WithWorkers(0))
	require.NoError(t, err)
	require.Equal(t, 1, s.workers)
}

func TestDealVerify(t *testing.T) {
	for _, v := range []Variant{CommitmentInG1, CommitmentInG2} {
		t.Run(v.String(), func(t *testing.T) {
			f := newFixture(t, 2, 5, WithVariant(v))
			d, tr := f.deal(t, DealOptions{Dealer: 1})
			require.NoError(t, f.scheme.Verify(context.Background(), tr, f.eks))

			require.Len(t, tr.Commitment, 3)
			require.Len(t, tr.Shares, 5)
			require.Equal(t, []uint32{1}, tr.Dealers())

			shares := f.decryptAll(t, tr)
			got, err := f.scheme.Reconstruct(shares)
			require.NoError(t, err)
			require.True(t, got.Equal(d.DealtSecretKey()))
		})
	}
}

func TestDealInputSecret(t *testing.T) {
	f := newFixture(t, 1, 3)
	secret := group.ScalarFromInt(424242)
	d, tr := f.deal(t, DealOptions{Secret: &secret})
	got := d.Secret()
	require.True(t, got.Equal(&secret))

	pp := f.scheme.PublicParameters()
	want := curve.G1().NewPoint().ScalarMult(&secret, pp.G)
	require.True(t, tr.Commitment[0].Equal(want))
}

// The t=2, n=5 scenario: any three shares reconstruct, two are rejected.
func TestThresholdScenario(t *testing.T) {
	f := newFixture(t, 2, 5)
	d, tr := f.deal(t, DealOptions{})
	require.NoError(t, f.scheme.Verify(context.Background(), tr, f.eks))
	shares := f.decryptAll(t, tr)

	got, err := f.scheme.Reconstruct(pick(shares, 1, 3, 5))
	require.NoError(t, err)
	require.True(t, got.Equal(d.DealtSecretKey()))

	scalars, err := d.Shares()
	require.NoError(t, err)
	secret, err := f.scheme.ReconstructScalar(pick(scalars, 1, 3, 5))
	require.NoError(t, err)
	want := d.Secret()
	require.True(t, secret.Equal(&want))

	_, err = f.scheme.Reconstruct(pick(shares, 1, 3))
	require.ErrorIs(t, err, ErrInsufficientShares)
	_, err = f.scheme.ReconstructScalar(pick(scalars, 1, 3))
	require.ErrorIs(t, err, ErrInsufficientShares)
}

func TestZeroThreshold(t *testing.T) {
	f := newFixture(t, 0, 3)
	d, tr := f.deal(t, DealOptions{})
	require.NoError(t, f.scheme.Verify(context.Background(), tr, f.eks))
	require.Len(t, tr.Commitment, 1)

	shares := f.decryptAll(t, tr)
	for i := range shares {
		got, err := f.scheme.Reconstruct(pick(shares, i+1))
		require.NoError(t, err)
		require.True(t, got.Equal(d.DealtSecretKey()))
	}
	_, err := f.scheme.Reconstruct(nil)
	require.ErrorIs(t, err, ErrInsufficientShares)
}

// Points from the other source group must be rejected as malformed input
// rather than reaching the curve arithmetic.
func TestForeignGroupPoints(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1, 3)
	other := newFixture(t, 1, 3, WithVariant(CommitmentInG2))
	_, tr := f.deal(t, DealOptions{Dealer: 1})
	_, tr2 := f.deal(t, DealOptions{Dealer: 2})
	foreign := other.eks[1].Point
	foreignCommit := other.scheme.CommitmentGroup().Generator()
	require.False(t, f.scheme.ShareGroup().Contains(foreign))
	require.False(t, f.scheme.CommitmentGroup().Contains(foreignCommit))

	t.Run("Deal", func(t *testing.T) {
		eks := append([]*EncryptKey(nil), f.eks...)
		eks[1] = other.eks[1]
		_, _, err := f.scheme.Deal(ctx, rand.Reader, eks, DealOptions{})
		require.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("VerifyKeys", func(t *testing.T) {
		eks := append([]*EncryptKey(nil), f.eks...)
		eks[2] = other.eks[2]
		require.ErrorIs(t, f.scheme.Verify(ctx, tr, eks), ErrMalformedInput)
	})

	tamper := map[string]func(*Transcript){
		"Share":       func(bad *Transcript) { bad.Shares[1] = foreign },
		"PublicKey":   func(bad *Transcript) { bad.PublicKey = foreign },
		"Commitment":  func(bad *Transcript) { bad.Commitment[1] = foreignCommit },
		"Commitment0": func(bad *Transcript) { bad.Contributions[0].Commitment0 = foreignCommit },
	}
	for name, mutate := range tamper {
		t.Run("Verify"+name, func(t *testing.T) {
			bad := f.scheme.clone(tr)
			mutate(bad)
			err := f.scheme.Verify(ctx, bad, f.eks)
			require.ErrorIs(t, err, ErrMalformedInput)
			require.NotErrorIs(t, err, ErrInvalidTranscript)

			_, err = f.scheme.Aggregate(bad, tr2)
			require.ErrorIs(t, err, ErrMalformedInput)
			_, err = f.scheme.DecryptShare(bad, 1, f.dks[0])
			require.ErrorIs(t, err, ErrMalformedInput)
		})
	}

	t.Run("Reconstruct", func(t *testing.T) {
		shares := f.decryptAll(t, tr)
		_, err := f.scheme.Reconstruct(shares)
		require.NoError(t, err)
		shares[0].Value = foreign
		_, err = f.scheme.Reconstruct(shares)
		require.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("MultiExp", func(t *testing.T) {
		var one group.Scalar
		one.SetOne()
		_, err := multiExp(f.scheme.ShareGroup(), []group.Point{foreign}, []group.Scalar{one})
		require.ErrorIs(t, err, ErrMalformedInput)
		_, err = f.scheme.pairingCheck([]group.Point{foreign}, []group.Point{foreign})
		require.ErrorIs(t, err, ErrMalformedInput)
	})
}

func TestReconstructEverySubset(t *testing.T) {
	const threshold, total = 2, 5
	f := newFixture(t, threshold, total)
	d, tr := f.deal(t, DealOptions{})
	shares := f.decryptAll(t, tr)
	scalars, err := d.Shares()
	require.NoError(t, err)
	want := d.Secret()
	wantKey := d.DealtSecretKey()

	for a := 1; a <= total; a++ {
		for b := a + 1; b <= total; b++ {
			for c := b + 1; c <= total; c++ {
				got, err := f.scheme.ReconstructScalar(pick(scalars, a, b, c))
				require.NoError(t, err)
				require.True(t, got.Equal(&want), "subset %d,%d,%d", a, b, c)

				key, err := f.scheme.Reconstruct(pick(shares, a, b, c))
				require.NoError(t, err)
				require.True(t, key.Equal(wantKey), "subset %d,%d,%d", a, b, c)
			}
			_, err := f.scheme.ReconstructScalar(pick(scalars, a, b))
			require.ErrorIs(t, err, ErrInsufficientShares)
		}
	}

	t.Run("AllShares", func(t *testing.T) {
		got, err := f.scheme.ReconstructScalar(scalars)
		require.NoError(t, err)
		require.True(t, got.Equal(&want))
	})

	t.Run("Duplicate", func(t *testing.T) {
		_, err := f.scheme.Reconstruct(pick(shares, 1, 2, 2))
		require.ErrorIs(t, err, ErrDuplicateIndex)
	})

	t.Run("IndexOutOfRange", func(t *testing.T) {
		bad := pick(scalars, 1, 2, 3)
		bad[0].Index = 0
		_, err := f.scheme.ReconstructScalar(bad)
		require.ErrorIs(t, err, ErrMalformedInput)
		bad[0].Index = total + 1
		_, err = f.scheme.ReconstructScalar(bad)
		require.ErrorIs(t, err, ErrMalformedInput)
	})
}

func TestVerifyDetectsTampering(t *testing.T) {
	f := newFixture(t, 2, 5)
	ctx := context.Background()
	g := f.scheme.CommitmentGroup()
	h := f.scheme.ShareGroup()

	requireFailed := func(t *testing.T, err error, want []int) {
		t.Helper()
		require.ErrorIs(t, err, ErrInvalidTranscript)
		var verr *VerificationError
		require.True(t, errors.As(err, &verr))
		require.Equal(t, want, verr.Failed)
	}

	t.Run("Share", func(t *testing.T) {
		_, tr := f.deal(t, DealOptions{})
		tr.Shares[2].Add(tr.Shares[2], h.Generator())
		requireFailed(t, f.scheme.Verify(ctx, tr, f.eks), []int{3})
	})

	t.Run("SwappedShares", func(t *testing.T) {
		_, tr := f.deal(t, DealOptions{})
		tr.Shares[0], tr.Shares[4] = tr.Shares[4], tr.Shares[0]
		requireFailed(t, f.scheme.Verify(ctx, tr, f.eks), []int{1, 5})
	})

	t.Run("PublicKey", func(t *testing.T) {
		_, tr := f.deal(t, DealOptions{})
		tr.PublicKey.Add(tr.PublicKey, h.Generator())
		requireFailed(t, f.scheme.Verify(ctx, tr, f.eks), []int{0})
	})

	t.Run("HigherCommitment", func(t *testing.T) {
		_, tr := f.deal(t, DealOptions{})
		tr.Commitment[2].Add(tr.Commitment[2], g.Generator())
		requireFailed(t, f.scheme.Verify(ctx, tr, f.eks), []int{1, 2, 3, 4, 5})
	})

	t.Run("WrongKeys", func(t *testing.T) {
		_, tr := f.deal(t, DealOptions{})
		other := newFixture(t, 2, 5)
		err := f.scheme.Verify(ctx, tr, other.eks)
		require.ErrorIs(t, err, ErrInvalidTranscript)
	})

	t.Run("ContributionSum", func(t *testing.T) {
		_, tr := f.deal(t, DealOptions{})
		tr.Contributions[0].Commitment0 = g.NewPoint().Set(g.Generator())
		err := f.scheme.Verify(ctx, tr, f.eks)
		require.ErrorIs(t, err, ErrInvalidTranscript)
		var verr *VerificationError
		require.True(t, errors.As(err, &verr))
		require.ErrorIs(t, verr.Contribution, errCommitmentSum)
	})

	t.Run("Shape", func(t *testing.T) {
		_, tr := f.deal(t, DealOptions{})
		short := *tr
		short.Shares = tr.Shares[:4]
		require.ErrorIs(t, f.scheme.Verify(ctx, &short, f.eks), ErrMalformedInput)

		short = *tr
		short.Commitment = tr.Commitment[:2]
		require.ErrorIs(t, f.scheme.Verify(ctx, &short, f.eks), ErrMalformedInput)

		require.ErrorIs(t, f.scheme.Verify(ctx, tr, f.eks[:4]), ErrMalformedInput)
		require.ErrorIs(t, f.scheme.Verify(ctx, nil, f.eks), ErrMalformedInput)
	})
}

// Flipping a bit inside any commitment or share entry either fails decoding
// or fails verification.
func TestVerifyRejectsBitFlips(t *testing.T) {
	f := newFixture(t, 2, 4)
	_, tr := f.deal(t, DealOptions{})
	enc, err := tr.MarshalBinary()
	require.NoError(t, err)

	cs := f.scheme.CommitmentGroup().PointSize()
	ss := f.scheme.ShareGroup().PointSize()
	var offsets []int
	base := headerSize + ss
	for j := range tr.Commitment {
		offsets = append(offsets, base+j*cs+cs-1, base+j*cs+cs/2)
	}
	base += len(tr.Commitment) * cs
	for i := range tr.Shares {
		offsets = append(offsets, base+i*ss+ss-1, base+i*ss+ss/2)
	}

	for _, off := range offsets {
		for _, bit := range []byte{0x01, 0x10} {
			t.Run(fmt.Sprintf("byte%d/bit%x", off, bit), func(t *testing.T) {
				flipped := append([]byte(nil), enc...)
				flipped[off] ^= bit
				dec, err := f.scheme.DecodeTranscript(flipped)
				if err != nil {
					require.ErrorIs(t, err, ErrDeserialization)
					return
				}
				require.ErrorIs(t, f.scheme.Verify(context.Background(), dec, f.eks), ErrInvalidTranscript)
			})
		}
	}
}

func TestAggregate(t *testing.T) {
	ctx := context.Background()
	for _, auth := range []Authentication{AuthNone, AuthProofOfKnowledge} {
		t.Run(auth.String(), func(t *testing.T) {
			f := newFixture(t, 2, 5, WithAuthentication(auth))
			d1, tr1 := f.deal(t, DealOptions{Dealer: 1})
			d2, tr2 := f.deal(t, DealOptions{Dealer: 2})
			d3, tr3 := f.deal(t, DealOptions{Dealer: 3})
			require.NoError(t, f.scheme.BatchVerify(ctx, []*Transcript{tr1, tr2, tr3}, f.eks))

			agg, err := f.scheme.Aggregate(tr1, tr2, tr3)
			require.NoError(t, err)
			require.NoError(t, f.scheme.Verify(ctx, agg, f.eks))
			require.Equal(t, []uint32{1, 2, 3}, agg.Dealers())

			want := f.scheme.ShareGroup().NewPoint().Set(d1.DealtSecretKey())
			want.Add(want, d2.DealtSecretKey())
			want.Add(want, d3.DealtSecretKey())
			got, err := f.scheme.Reconstruct(pick(f.decryptAll(t, agg), 2, 4, 5))
			require.NoError(t, err)
			require.True(t, got.Equal(want))

			var sum group.Scalar
			for _, d := range []*Dealing{d1, d2, d3} {
				s := d.Secret()
				sum.Add(&sum, &s)
			}
			s1, _ := d1.Shares()
			s2, _ := d2.Shares()
			s3, _ := d3.Shares()
			combined := make([]ScalarShare, len(s1))
			for i := range combined {
				combined[i].Index = s1[i].Index
				combined[i].Value.Add(&s1[i].Value, &s2[i].Value)
				combined[i].Value.Add(&combined[i].Value, &s3[i].Value)
			}
			secret, err := f.scheme.ReconstructScalar(pick(combined, 1, 2, 3))
			require.NoError(t, err)
			require.True(t, secret.Equal(&sum))

			// Inputs are left untouched.
			require.NoError(t, f.scheme.Verify(ctx, tr1, f.eks))
		})
	}

	t.Run("Nested", func(t *testing.T) {
		f := newFixture(t, 1, 3)
		_, tr1 := f.deal(t, DealOptions{Dealer: 1})
		_, tr2 := f.deal(t, DealOptions{Dealer: 2})
		_, tr3 := f.deal(t, DealOptions{Dealer: 3})
		a, err := f.scheme.Aggregate(tr1, tr2)
		require.NoError(t, err)
		b, err := f.scheme.Aggregate(a, tr3)
		require.NoError(t, err)
		flat, err := f.scheme.Aggregate(tr1, tr2, tr3)
		require.NoError(t, err)
		require.True(t, b.Equal(flat))
	})

	t.Run("DuplicateDealer", func(t *testing.T) {
		f := newFixture(t, 1, 3)
		_, tr1 := f.deal(t, DealOptions{Dealer: 7})
		_, tr2 := f.deal(t, DealOptions{Dealer: 7})
		_, err := f.scheme.Aggregate(tr1, tr2)
		require.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("ShapeMismatch", func(t *testing.T) {
		f := newFixture(t, 1, 3)
		other := newFixture(t, 1, 4)
		_, tr1 := f.deal(t, DealOptions{Dealer: 1})
		_, tr2 := other.deal(t, DealOptions{Dealer: 2})
		_, err := f.scheme.Aggregate(tr1, tr2)
		require.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("Empty", func(t *testing.T) {
		f := newFixture(t, 1, 2)
		_, err := f.scheme.Aggregate()
		require.ErrorIs(t, err, ErrMalformedInput)
	})
}

func TestProofOfKnowledge(t *testing.T) {
	f := newFixture(t, 1, 3, WithAuthentication(AuthProofOfKnowledge))
	ctx := context.Background()

	t.Run("Missing", func(t *testing.T) {
		_, tr := f.deal(t, DealOptions{Dealer: 1})
		tr.Contributions[0].Proof = nil
		err := f.scheme.Verify(ctx, tr, f.eks)
		require.ErrorIs(t, err, ErrInvalidTranscript)
		require.ErrorIs(t, err, errMissingAuth)
	})

	t.Run("WrongDealer", func(t *testing.T) {
		_, tr := f.deal(t, DealOptions{Dealer: 1})
		tr.Contributions[0].Dealer = 2
		err := f.scheme.Verify(ctx, tr, f.eks)
		require.ErrorIs(t, err, errBadProof)
	})

	t.Run("TamperedResponse", func(t *testing.T) {
		_, tr := f.deal(t, DealOptions{Dealer: 1})
		var one group.Scalar
		one.SetOne()
		tr.Contributions[0].Proof.Z.Add(&tr.Contributions[0].Proof.Z, &one)
		require.ErrorIs(t, f.scheme.Verify(ctx, tr, f.eks), errBadProof)
	})

	t.Run("UnauthenticatedSchemeRejectsNothing", func(t *testing.T) {
		plain, err := New(curve, 1, 3)
		require.NoError(t, err)
		_, tr := f.deal(t, DealOptions{Dealer: 1})
		require.NoError(t, plain.Verify(ctx, tr, f.eks))
	})
}

func TestDealerSignature(t *testing.T) {
	signers := make(map[uint32]*dealersig.Signer)
	keys := make(map[uint32]*dealersig.PublicKey)
	for id := uint32(1); id <= 2; id++ {
		ikm := make([]byte, dealersig.MinIKMSize)
		_, err := rand.Read(ikm)
		require.NoError(t, err)
		s, err := dealersig.GenerateKey(ikm)
		require.NoError(t, err)
		signers[id], keys[id] = s, s.PublicKey()
	}
	f := newFixture(t, 1, 3, WithAuthentication(AuthDealerSignature), WithDealerKeys(keys))
	ctx := context.Background()

	_, tr1 := f.deal(t, DealOptions{Dealer: 1, Signer: signers[1]})
	_, tr2 := f.deal(t, DealOptions{Dealer: 2, Signer: signers[2]})
	require.NoError(t, f.scheme.Verify(ctx, tr1, f.eks))
	agg, err := f.scheme.Aggregate(tr1, tr2)
	require.NoError(t, err)
	require.NoError(t, f.scheme.Verify(ctx, agg, f.eks))

	t.Run("NoSigner", func(t *testing.T) {
		_, _, err := f.scheme.Deal(ctx, rand.Reader, f.eks, DealOptions{Dealer: 1})
		require.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("UnregisteredDealer", func(t *testing.T) {
		_, tr := f.deal(t, DealOptions{Dealer: 3, Signer: signers[1]})
		err := f.scheme.Verify(ctx, tr, f.eks)
		require.ErrorIs(t, err, errUnknownDealer)
	})

	t.Run("WrongSigner", func(t *testing.T) {
		_, tr := f.deal(t, DealOptions{Dealer: 1, Signer: signers[2]})
		err := f.scheme.Verify(ctx, tr, f.eks)
		require.ErrorIs(t, err, ErrInvalidTranscript)
		require.ErrorIs(t, err, dealersig.ErrInvalidSignature)
	})
}

func TestDecryptShare(t *testing.T) {
	f := newFixture(t, 2, 4)
	_, tr := f.deal(t, DealOptions{})

	sh, err := f.scheme.DecryptShare(tr, 2, f.dks[1])
	require.NoError(t, err)
	require.Equal(t, 2, sh.Index)

	_, err = f.scheme.DecryptShare(tr, 2, f.dks[0])
	require.ErrorIs(t, err, ErrDecryptionMismatch)

	_, err = f.scheme.DecryptShare(tr, 0, f.dks[0])
	require.ErrorIs(t, err, ErrMalformedInput)
	_, err = f.scheme.DecryptShare(tr, 5, f.dks[0])
	require.ErrorIs(t, err, ErrMalformedInput)

	// A_i commits to the same f(i) as the decrypted share.
	a, err := f.scheme.PublicKeyShare(tr, 2)
	require.NoError(t, err)
	pp := f.scheme.PublicParameters()
	negG := f.scheme.CommitmentGroup().NewPoint().Negate(pp.G)
	ok, err := curve.PairingCheck([]group.Point{a, negG}, []group.Point{pp.H, sh.Value})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestBatchVerify(t *testing.T) {
	f := newFixture(t, 1, 3, WithWorkers(2))
	ctx := context.Background()
	var trs []*Transcript
	for i := range 4 {
		_, tr := f.deal(t, DealOptions{Dealer: uint32(i)})
		trs = append(trs, tr)
	}
	require.NoError(t, f.scheme.BatchVerify(ctx, trs, f.eks))

	bad := f.scheme.clone(trs[2])
	bad.Shares[0].Add(bad.Shares[0], f.scheme.ShareGroup().Generator())
	trs[2] = bad
	err := f.scheme.BatchVerify(ctx, trs, f.eks)
	require.ErrorIs(t, err, ErrInvalidTranscript)
	require.Contains(t, err.Error(), "transcript 2")

	require.ErrorIs(t, f.scheme.BatchVerify(ctx, nil, f.eks), ErrMalformedInput)
}

func TestCancellation(t *testing.T) {
	f := newFixture(t, 1, 3)
	_, tr := f.deal(t, DealOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, f.scheme.Verify(ctx, tr, f.eks), context.Canceled)
	_, _, err := f.scheme.Deal(ctx, rand.Reader, f.eks, DealOptions{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDealing(t *testing.T) {
	f := newFixture(t, 1, 3)
	d, _ := f.deal(t, DealOptions{})
	secret := d.Secret()
	secretHex := fmt.Sprintf("%x", group.ScalarBytes(&secret))

	for _, s := range []string{fmt.Sprint(d), fmt.Sprintf("%v", d), fmt.Sprintf("%#v", d), d.String()} {
		require.Contains(t, s, "REDACTED")
		require.NotContains(t, s, secretHex)
	}

	d.Destroy()
	_, err := d.Shares()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMalformedInput)
	after := d.Secret()
	require.True(t, after.IsZero())
	require.True(t, d.DealtSecretKey().IsIdentity())
}

func TestKeys(t *testing.T) {
	f := newFixture(t, 1, 2)
	s := f.scheme

	ek, err := s.DecodeEncryptKey(f.eks[0].Bytes())
	require.NoError(t, err)
	require.True(t, ek.Equal(f.eks[0]))

	dk, err := s.DecodeDecryptKey(f.dks[0].Bytes())
	require.NoError(t, err)
	require.True(t, s.EncryptKeyFor(dk).Equal(f.eks[0]))

	_, err = s.DecodeEncryptKey(s.ShareGroup().NewPoint().Bytes())
	require.ErrorIs(t, err, ErrDeserialization)
	_, err = s.DecodeDecryptKey(make([]byte, 32))
	require.ErrorIs(t, err, ErrDeserialization)

	require.NotContains(t, fmt.Sprintf("%v %#v", f.dks[0], f.dks[0]), fmt.Sprintf("%x", f.dks[0].Bytes()))

	_, _, err = s.Deal(context.Background(), rand.Reader, []*EncryptKey{f.eks[0], nil}, DealOptions{})
	require.ErrorIs(t, err, ErrMalformedInput)
}

func TestHashers(t *testing.T) {
	stmt := []byte("statement")
	for _, h := range []Hasher{NewSHA3Hasher(), NewBlake2bHasher()} {
		a := h.Randomizers(stmt, 3)
		b := h.Randomizers(stmt, 3)
		require.Equal(t, a, b)
		require.False(t, a[0].Equal(&a[1]))
		c := h.Randomizers([]byte("statement2"), 3)
		require.False(t, a[0].Equal(&c[0]))
	}
	x := NewSHA3Hasher().Challenge([]byte("ctx"), []byte("s"), []byte("n"))
	y := NewBlake2bHasher().Challenge([]byte("ctx"), []byte("s"), []byte("n"))
	require.False(t, x.Equal(&y))

	f := newFixture(t, 1, 3, WithHasher(NewBlake2bHasher()), WithAuthentication(AuthProofOfKnowledge))
	_, tr := f.deal(t, DealOptions{})
	require.NoError(t, f.scheme.Verify(context.Background(), tr, f.eks))

	// A proof made under one hasher does not verify under another.
	other, err := New(curve, 1, 3, WithAuthentication(AuthProofOfKnowledge))
	require.NoError(t, err)
	require.ErrorIs(t, other.Verify(context.Background(), tr, f.eks), errBadProof)
}
