package pvss

import (
	"errors"
	"fmt"
	"io"

	"github.com/f3rmion/pvss/dealersig"
	"github.com/f3rmion/pvss/group"
)

var (
	errBadProof        = errors.New("proof of knowledge does not verify")
	errMissingAuth     = errors.New("contribution is not authenticated")
	errUnknownDealer   = errors.New("no registered key for dealer")
	errCommitmentSum   = errors.New("contributions do not sum to the commitment")
	errDuplicateDealer = errors.New("duplicate dealer")
	errNoContributions = errors.New("transcript has no contributions")
)

// prove returns a Schnorr proof of knowledge of secret such that
// c0 = secret * G, bound to the dealer and the (t, n) configuration.
func (s *Scheme) prove(rng io.Reader, dealer uint32, secret *group.Scalar, c0 group.Point) (*Proof, error) {
	k, err := group.RandomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("sampling proof nonce: %w", err)
	}
	r := s.commitGroup.NewPoint().ScalarMult(&k, s.params.G)
	c := s.hasher.Challenge(s.contributionContext(dealer), c0.Bytes(), r.Bytes())

	// z = k + c * secret
	var z group.Scalar
	z.Mul(&c, secret)
	z.Add(&z, &k)
	k.SetZero()
	return &Proof{R: r, Z: z}, nil
}

// verifyProof checks z * G == R + c * C0.
func (s *Scheme) verifyProof(dealer uint32, c0 group.Point, p *Proof) error {
	if p == nil || p.R == nil {
		return errMissingAuth
	}
	c := s.hasher.Challenge(s.contributionContext(dealer), c0.Bytes(), p.R.Bytes())
	lhs := s.commitGroup.NewPoint().ScalarMult(&p.Z, s.params.G)
	rhs := s.commitGroup.NewPoint().ScalarMult(&c, c0)
	rhs.Add(rhs, p.R)
	if !lhs.Equal(rhs) {
		return errBadProof
	}
	return nil
}

// checkContributions verifies the contribution records of tr: at least one,
// distinct dealers, Commitment0 values summing to Commitment[0], and each
// authenticated as the scheme requires.
func (s *Scheme) checkContributions(tr *Transcript) error {
	if len(tr.Contributions) == 0 {
		return errNoContributions
	}
	seen := make(map[uint32]struct{}, len(tr.Contributions))
	sum := s.commitGroup.NewPoint()
	for _, c := range tr.Contributions {
		if _, ok := seen[c.Dealer]; ok {
			return fmt.Errorf("%w: %d", errDuplicateDealer, c.Dealer)
		}
		seen[c.Dealer] = struct{}{}
		if c.Commitment0 == nil {
			return fmt.Errorf("dealer %d: %w", c.Dealer, errMissingAuth)
		}
		sum.Add(sum, c.Commitment0)

		switch s.auth {
		case AuthProofOfKnowledge:
			if err := s.verifyProof(c.Dealer, c.Commitment0, c.Proof); err != nil {
				return fmt.Errorf("dealer %d: %w", c.Dealer, err)
			}
		case AuthDealerSignature:
			pk, ok := s.dealerKeys[c.Dealer]
			if !ok {
				return fmt.Errorf("%w %d", errUnknownDealer, c.Dealer)
			}
			if c.Signature == nil {
				return fmt.Errorf("dealer %d: %w", c.Dealer, errMissingAuth)
			}
			if err := dealersig.Verify(pk, c.Signature, s.contributionMessage(c.Dealer, c.Commitment0)); err != nil {
				return fmt.Errorf("dealer %d: %w", c.Dealer, err)
			}
		}
	}
	if !sum.Equal(tr.Commitment[0]) {
		return errCommitmentSum
	}
	return nil
}
