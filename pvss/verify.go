package pvss

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/f3rmion/pvss/group"
)

// Verify checks that tr is a well-formed sharing to the holders of eks.
//
// After the structural and contribution checks, the consistency of every
// encrypted share with the commitment, and of the dealt public key with
// the committed secret, is checked in one randomized multi-pairing:
//
//	e(-g, sum r_i Y_i + r_{n+1} PK) * prod e(r_i A_i, ek_i) * e(r_{n+1} C_0, u) = 1
//
// where A_i = sum_j C_j i^j and the r_i are Fiat-Shamir challenges over the
// public parameters, the keys and the transcript. When the batched check
// fails, every participant is checked individually and the returned
// *VerificationError lists the failing indices.
//
// A nil error means the transcript is valid. Invalid transcripts yield an
// error wrapping ErrInvalidTranscript; malformed input yields
// ErrMalformedInput.
func (s *Scheme) Verify(ctx context.Context, tr *Transcript, eks []*EncryptKey) (err error) {
	start := time.Now()
	defer func() { s.metrics.observeVerify(start, err) }()

	if err := s.checkShape(tr); err != nil {
		return err
	}
	if err := s.checkKeys(eks); err != nil {
		return err
	}
	if err := s.checkContributions(tr); err != nil {
		s.logger.Warn("rejected transcript contribution", zap.Error(err))
		return &VerificationError{Contribution: err}
	}

	stmt, err := s.statement(tr, eks)
	if err != nil {
		return err
	}
	n := s.total
	r := s.hasher.Randomizers(stmt, n+1)

	// Commitment-group and share-group sides of the multi-pairing.
	cs := make([]group.Point, n+2)
	hs := make([]group.Point, n+2)
	err = forEach(ctx, s.workers, n, func(_ context.Context, i int) error {
		// r_i * A_i = sum_j C_j * (r_i * i^j)
		scalars := s.powers(i+1, &r[i])
		p, err := multiExp(s.commitGroup, tr.Commitment, scalars)
		if err != nil {
			return err
		}
		cs[i+1], hs[i+1] = p, eks[i].Point
		return nil
	})
	if err != nil {
		return err
	}

	sumY, err := multiExp(s.shareGroup, tr.Shares, r[:n])
	if err != nil {
		return err
	}
	sumY.Add(sumY, s.shareGroup.NewPoint().ScalarMult(&r[n], tr.PublicKey))
	cs[0] = s.commitGroup.NewPoint().Negate(s.params.G)
	hs[0] = sumY
	cs[n+1] = s.commitGroup.NewPoint().ScalarMult(&r[n], tr.Commitment[0])
	hs[n+1] = s.params.U

	ok, err := s.pairingCheck(cs, hs)
	if err != nil {
		return err
	}
	if ok {
		s.logger.Debug("verified transcript", zap.Uint32s("dealers", tr.Dealers()))
		return nil
	}

	failed, err := s.diagnose(ctx, tr, eks)
	if err != nil {
		return err
	}
	s.logger.Warn("rejected transcript", zap.Ints("failed", failed))
	return &VerificationError{Failed: failed}
}

// BatchVerify verifies independent transcripts in parallel against the same
// keys. It fails if any member fails and stops scheduling further checks
// after the first failure.
func (s *Scheme) BatchVerify(ctx context.Context, trs []*Transcript, eks []*EncryptKey) error {
	if len(trs) == 0 {
		return malformed("no transcripts")
	}
	return forEach(ctx, s.workers, len(trs), func(ctx context.Context, i int) error {
		if err := s.Verify(ctx, trs[i], eks); err != nil {
			return fmt.Errorf("transcript %d: %w", i, err)
		}
		return nil
	})
}

// diagnose runs the per-participant checks e(g, Y_i) == e(A_i, ek_i) and
// the dealt public key check e(g, PK) == e(C_0, u). It returns the failing
// participant indices, with 0 standing for the public key.
func (s *Scheme) diagnose(ctx context.Context, tr *Transcript, eks []*EncryptKey) ([]int, error) {
	negG := s.commitGroup.NewPoint().Negate(s.params.G)
	bad := make([]bool, s.total+1)

	ok, err := s.pairingCheck([]group.Point{tr.Commitment[0], negG}, []group.Point{s.params.U, tr.PublicKey})
	if err != nil {
		return nil, err
	}
	bad[0] = !ok

	err = forEach(ctx, s.workers, s.total, func(_ context.Context, i int) error {
		a, err := s.evalCommitment(tr, i+1)
		if err != nil {
			return err
		}
		ok, err := s.pairingCheck([]group.Point{a, negG}, []group.Point{eks[i].Point, tr.Shares[i]})
		if err != nil {
			return err
		}
		bad[i+1] = !ok
		return nil
	})
	if err != nil {
		return nil, err
	}

	var failed []int
	for i, b := range bad {
		if b {
			failed = append(failed, i)
		}
	}
	return failed, nil
}

// PublicKeyShare returns A_i = g^{f(i)}, participant i's share of the
// commitment to the secret.
func (s *Scheme) PublicKeyShare(tr *Transcript, i int) (group.Point, error) {
	if err := s.checkShape(tr); err != nil {
		return nil, err
	}
	if err := s.checkIndex(i); err != nil {
		return nil, err
	}
	return s.evalCommitment(tr, i)
}

// evalCommitment returns sum_j C_j * i^j.
func (s *Scheme) evalCommitment(tr *Transcript, i int) (group.Point, error) {
	var one group.Scalar
	one.SetOne()
	return multiExp(s.commitGroup, tr.Commitment, s.powers(i, &one))
}

// powers returns scale * x^j for j = 0..t.
func (s *Scheme) powers(x int, scale *group.Scalar) []group.Scalar {
	out := make([]group.Scalar, s.threshold+1)
	xs := group.ScalarFromInt(x)
	out[0] = *scale
	for j := 1; j < len(out); j++ {
		out[j].Mul(&out[j-1], &xs)
	}
	return out
}

// statement encodes everything the verification randomizers must depend on.
func (s *Scheme) statement(tr *Transcript, eks []*EncryptKey) ([]byte, error) {
	enc, err := tr.MarshalBinary()
	if err != nil {
		return nil, err
	}
	out := []byte("pvss-verify-v1")
	out = append(out, s.params.Bytes()...)
	out = binary.BigEndian.AppendUint32(out, uint32(s.threshold))
	out = binary.BigEndian.AppendUint32(out, uint32(s.total))
	for _, ek := range eks {
		out = append(out, ek.Bytes()...)
	}
	return append(out, enc...), nil
}

// checkShape validates lengths and presence of every point.
func (s *Scheme) checkShape(tr *Transcript) error {
	if tr == nil {
		return malformed("nil transcript")
	}
	if len(tr.Commitment) != s.threshold+1 {
		return malformed("commitment has %d points, want %d", len(tr.Commitment), s.threshold+1)
	}
	if len(tr.Shares) != s.total {
		return malformed("transcript has %d shares, want %d", len(tr.Shares), s.total)
	}
	if tr.PublicKey == nil {
		return malformed("missing dealt public key")
	}
	if !s.shareGroup.Contains(tr.PublicKey) {
		return malformed("dealt public key is not a %s point", s.shareGroup.Name())
	}
	for j, p := range tr.Commitment {
		if p == nil {
			return malformed("missing commitment %d", j)
		}
		if !s.commitGroup.Contains(p) {
			return malformed("commitment %d is not a %s point", j, s.commitGroup.Name())
		}
	}
	for i, p := range tr.Shares {
		if p == nil {
			return malformed("missing share %d", i+1)
		}
		if !s.shareGroup.Contains(p) {
			return malformed("share %d is not a %s point", i+1, s.shareGroup.Name())
		}
	}
	// Missing contribution points are an authentication failure, reported
	// by checkContributions.
	for _, c := range tr.Contributions {
		if c.Commitment0 != nil && !s.commitGroup.Contains(c.Commitment0) {
			return malformed("contribution of dealer %d is not a %s point", c.Dealer, s.commitGroup.Name())
		}
		if c.Proof != nil && c.Proof.R != nil && !s.commitGroup.Contains(c.Proof.R) {
			return malformed("proof of dealer %d is not a %s point", c.Dealer, s.commitGroup.Name())
		}
	}
	return nil
}

func isInvalid(err error) bool {
	return errors.Is(err, ErrInvalidTranscript)
}
