package pvss

import (
	"bytes"

	"github.com/f3rmion/pvss/group"
)

// Transcript is the public output of dealing, or of aggregating several
// dealings. Anyone holding the participants' encryption keys can check it
// with Verify without learning the secret.
type Transcript struct {
	// PublicKey is the dealt public key u^{s}, in the share group.
	PublicKey group.Point
	// Commitment holds g^{c_j} for the t+1 polynomial coefficients, in the
	// commitment group.
	Commitment []group.Point
	// Shares holds ek_i^{f(i)} for participants 1..n, in the share group.
	// Shares[i-1] belongs to participant i.
	Shares []group.Point
	// Contributions records each dealer that contributed to the
	// transcript. A fresh dealing has exactly one.
	Contributions []Contribution
}

// Contribution identifies one dealer's part of a transcript.
type Contribution struct {
	// Dealer is the dealer's identifier; unique within a transcript.
	Dealer uint32
	// Commitment0 is the dealer's own g^{c_0}. The sum over all
	// contributions equals the transcript's Commitment[0].
	Commitment0 group.Point
	// Proof is a proof of knowledge of c_0, set under AuthProofOfKnowledge.
	Proof *Proof
	// Signature is the dealer's signature over the contribution, set
	// under AuthDealerSignature.
	Signature []byte
}

// Proof is a Schnorr proof of knowledge of the discrete logarithm of a
// contribution's Commitment0 with respect to g.
type Proof struct {
	R group.Point
	Z group.Scalar
}

// Share is a participant's decrypted share h^{f(i)} of the dealt secret
// key h^{s}.
type Share struct {
	Index int
	Value group.Point
}

// ScalarShare is the dealer-side scalar share f(i).
type ScalarShare struct {
	Index int
	Value group.Scalar
}

// Dealers returns the dealer identifiers in contribution order.
func (tr *Transcript) Dealers() []uint32 {
	out := make([]uint32, len(tr.Contributions))
	for i, c := range tr.Contributions {
		out[i] = c.Dealer
	}
	return out
}

// Equal reports whether tr and other encode to the same bytes.
func (tr *Transcript) Equal(other *Transcript) bool {
	if tr == nil || other == nil {
		return tr == other
	}
	a, errA := tr.MarshalBinary()
	b, errB := other.MarshalBinary()
	return errA == nil && errB == nil && bytes.Equal(a, b)
}

// clone returns a deep copy of tr. Points are copied into fresh points
// of the scheme's groups.
func (s *Scheme) clone(tr *Transcript) *Transcript {
	cp := func(g group.Group, p group.Point) group.Point {
		if p == nil {
			return nil
		}
		return g.NewPoint().Set(p)
	}
	out := &Transcript{
		PublicKey:     cp(s.shareGroup, tr.PublicKey),
		Commitment:    make([]group.Point, len(tr.Commitment)),
		Shares:        make([]group.Point, len(tr.Shares)),
		Contributions: make([]Contribution, len(tr.Contributions)),
	}
	for i, p := range tr.Commitment {
		out.Commitment[i] = cp(s.commitGroup, p)
	}
	for i, p := range tr.Shares {
		out.Shares[i] = cp(s.shareGroup, p)
	}
	for i, c := range tr.Contributions {
		out.Contributions[i] = s.cloneContribution(c)
	}
	return out
}

func (s *Scheme) cloneContribution(c Contribution) Contribution {
	out := Contribution{
		Dealer:      c.Dealer,
		Commitment0: s.commitGroup.NewPoint().Set(c.Commitment0),
	}
	if c.Signature != nil {
		out.Signature = append([]byte(nil), c.Signature...)
	}
	if c.Proof != nil {
		out.Proof = &Proof{R: s.commitGroup.NewPoint().Set(c.Proof.R), Z: c.Proof.Z}
	}
	return out
}
