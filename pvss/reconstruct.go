package pvss

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/f3rmion/pvss/group"
	"github.com/f3rmion/pvss/lagrange"
)

// DecryptShare recovers participant i's share h^{f(i)} = Y_i^{dk} and
// checks it against the commitment: e(A_i, h) must equal e(g, share).
// A share that fails the check yields ErrDecryptionMismatch.
func (s *Scheme) DecryptShare(tr *Transcript, i int, dk *DecryptKey) (*Share, error) {
	if err := s.checkShape(tr); err != nil {
		return nil, err
	}
	if err := s.checkIndex(i); err != nil {
		return nil, err
	}
	if dk == nil {
		return nil, malformed("nil decryption key")
	}

	value := s.shareGroup.NewPoint().ScalarMult(&dk.dk, tr.Shares[i-1])
	a, err := s.evalCommitment(tr, i)
	if err != nil {
		return nil, err
	}
	negG := s.commitGroup.NewPoint().Negate(s.params.G)
	ok, err := s.pairingCheck([]group.Point{a, negG}, []group.Point{s.params.H, value})
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Warn("decrypted share does not match commitment", zap.Int("index", i))
		return nil, fmt.Errorf("%w: participant %d", ErrDecryptionMismatch, i)
	}
	return &Share{Index: i, Value: value}, nil
}

// Reconstruct interpolates the dealt secret key h^{s} from at least t+1
// decrypted shares with distinct indices in 1..n.
func (s *Scheme) Reconstruct(shares []Share) (group.Point, error) {
	indices, err := s.shareIndices(len(shares), func(k int) int { return shares[k].Index })
	if err != nil {
		return nil, err
	}
	w, err := s.weights(indices)
	if err != nil {
		return nil, err
	}
	points := make([]group.Point, len(shares))
	for k := range shares {
		if shares[k].Value == nil {
			return nil, malformed("share %d has no value", shares[k].Index)
		}
		if !s.shareGroup.Contains(shares[k].Value) {
			return nil, malformed("share %d is not a %s point", shares[k].Index, s.shareGroup.Name())
		}
		points[k] = shares[k].Value
	}
	return multiExp(s.shareGroup, points, w)
}

// ReconstructScalar interpolates the secret s = f(0) from at least t+1
// scalar shares with distinct indices in 1..n.
func (s *Scheme) ReconstructScalar(shares []ScalarShare) (group.Scalar, error) {
	if _, err := s.shareIndices(len(shares), func(k int) int { return shares[k].Index }); err != nil {
		return group.Scalar{}, err
	}
	points := make([]lagrange.Point, len(shares))
	for k, sh := range shares {
		points[k] = lagrange.Point{Index: sh.Index, Value: sh.Value}
	}
	return s.interp.InterpolateAtZero(points, s.threshold)
}

// shareIndices collects and validates the indices of count shares.
func (s *Scheme) shareIndices(count int, index func(int) int) ([]int, error) {
	if count < s.threshold+1 {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientShares, count, s.threshold+1)
	}
	out := make([]int, count)
	seen := make(map[int]struct{}, count)
	for k := range out {
		i := index(k)
		if err := s.checkIndex(i); err != nil {
			return nil, err
		}
		if _, ok := seen[i]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateIndex, i)
		}
		seen[i] = struct{}{}
		out[k] = i
	}
	return out, nil
}

func (s *Scheme) weights(indices []int) ([]group.Scalar, error) {
	var zero group.Scalar
	return s.interp.Coefficients(indices, &zero)
}
