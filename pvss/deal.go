package pvss

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/f3rmion/pvss/dealersig"
	"github.com/f3rmion/pvss/group"
	"github.com/f3rmion/pvss/poly"
)

// DealOptions carries per-dealing inputs.
type DealOptions struct {
	// Dealer identifies the dealer within an aggregate.
	Dealer uint32
	// Secret, if set, is shared instead of a random scalar.
	Secret *group.Scalar
	// Signer signs the contribution. Required under AuthDealerSignature.
	Signer *dealersig.Signer
}

// Dealing is the dealer's secret state: the degree-t polynomial f with
// f(0) = s. It must not be serialized or logged; call Destroy once the
// transcript has been published.
type Dealing struct {
	f         poly.Polynomial
	scheme    *Scheme
	destroyed bool
}

// Deal shares a secret among the holders of eks, in participant order
// eks[0] for participant 1 to eks[n-1] for participant n.
//
// It samples f with t+1 random coefficients (coefficient 0 replaced by
// opts.Secret when set), commits to them in the commitment group, encrypts
// f(i) to ek_i as ek_i^{f(i)}, and publishes the dealt public key u^{f(0)}
// together with the dealer's authenticated contribution.
func (s *Scheme) Deal(ctx context.Context, rng io.Reader, eks []*EncryptKey, opts DealOptions) (*Dealing, *Transcript, error) {
	if err := s.checkKeys(eks); err != nil {
		return nil, nil, err
	}
	if s.auth == AuthDealerSignature && opts.Signer == nil {
		return nil, nil, malformed("dealer signature required but no signer given")
	}

	f, err := poly.Random(rng, s.threshold)
	if err != nil {
		return nil, nil, fmt.Errorf("sampling polynomial: %w", err)
	}
	if opts.Secret != nil {
		f[0] = *opts.Secret
	}
	d := &Dealing{f: f, scheme: s}

	tr := &Transcript{
		Commitment: make([]group.Point, len(f)),
		Shares:     make([]group.Point, s.total),
	}
	// C_j = c_j * G
	for j := range f {
		tr.Commitment[j] = s.commitGroup.NewPoint().ScalarMult(&f[j], s.params.G)
	}

	evals, err := s.mul.EvaluateMany(f, s.indexScalars())
	if err != nil {
		d.Destroy()
		return nil, nil, fmt.Errorf("evaluating shares: %w", err)
	}
	// Y_i = f(i) * ek_i
	err = forEach(ctx, s.workers, s.total, func(_ context.Context, i int) error {
		tr.Shares[i] = s.shareGroup.NewPoint().ScalarMult(&evals[i], eks[i].Point)
		return nil
	})
	for i := range evals {
		evals[i].SetZero()
	}
	if err != nil {
		d.Destroy()
		return nil, nil, err
	}
	tr.PublicKey = s.shareGroup.NewPoint().ScalarMult(&f[0], s.params.U)

	contrib := Contribution{
		Dealer:      opts.Dealer,
		Commitment0: s.commitGroup.NewPoint().Set(tr.Commitment[0]),
	}
	switch s.auth {
	case AuthProofOfKnowledge:
		proof, err := s.prove(rng, opts.Dealer, &f[0], contrib.Commitment0)
		if err != nil {
			d.Destroy()
			return nil, nil, err
		}
		contrib.Proof = proof
	case AuthDealerSignature:
		contrib.Signature = opts.Signer.Sign(s.contributionMessage(opts.Dealer, contrib.Commitment0))
	}
	tr.Contributions = []Contribution{contrib}

	s.metrics.observeDeal()
	s.logger.Debug("dealt transcript", zap.Uint32("dealer", opts.Dealer))
	return d, tr, nil
}

// Secret returns f(0). After Destroy it returns zero.
func (d *Dealing) Secret() group.Scalar {
	return d.f[0]
}

// Shares returns the scalar shares f(1), ..., f(n). After Destroy it
// fails, since zero shares would look like a valid sharing of zero.
func (d *Dealing) Shares() ([]ScalarShare, error) {
	if d.destroyed {
		return nil, malformed("dealing destroyed")
	}
	evals, err := d.scheme.mul.EvaluateMany(d.f, d.scheme.indexScalars())
	if err != nil {
		return nil, err
	}
	out := make([]ScalarShare, len(evals))
	for i := range evals {
		out[i] = ScalarShare{Index: i + 1, Value: evals[i]}
	}
	return out, nil
}

// DealtSecretKey returns h^{f(0)}, the value reconstructed by
// Scheme.Reconstruct from decrypted shares. After Destroy it returns the
// identity.
func (d *Dealing) DealtSecretKey() group.Point {
	return d.scheme.shareGroup.NewPoint().ScalarMult(&d.f[0], d.scheme.params.H)
}

// Destroy zeroes the polynomial. The Dealing is unusable afterwards.
func (d *Dealing) Destroy() {
	d.f.Zeroize()
	d.destroyed = true
}

// String does not reveal the polynomial.
func (d *Dealing) String() string {
	return fmt.Sprintf("pvss.Dealing{degree: %d, REDACTED}", d.f.Degree())
}

// GoString does not reveal the polynomial.
func (d *Dealing) GoString() string {
	return d.String()
}

// indexScalars returns the participant indices 1..n as scalars.
func (s *Scheme) indexScalars() []group.Scalar {
	xs := make([]group.Scalar, s.total)
	for i := range xs {
		xs[i].SetUint64(uint64(i + 1))
	}
	return xs
}

// contributionContext encodes dealer || t || n.
func (s *Scheme) contributionContext(dealer uint32) []byte {
	var b [12]byte
	binary.BigEndian.PutUint32(b[0:4], dealer)
	binary.BigEndian.PutUint32(b[4:8], uint32(s.threshold))
	binary.BigEndian.PutUint32(b[8:12], uint32(s.total))
	return b[:]
}

// contributionMessage is the byte string a dealer signs:
// tag || dealer || t || n || Commitment0.
func (s *Scheme) contributionMessage(dealer uint32, c0 group.Point) []byte {
	msg := []byte("pvss-contribution-v1")
	msg = append(msg, s.contributionContext(dealer)...)
	return append(msg, c0.Bytes()...)
}
