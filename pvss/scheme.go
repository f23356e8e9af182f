package pvss

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/f3rmion/pvss/dealersig"
	"github.com/f3rmion/pvss/group"
	"github.com/f3rmion/pvss/lagrange"
	"github.com/f3rmion/pvss/poly"
)

// Variant selects which source group carries the polynomial commitment.
// The encrypted shares, encryption keys and dealt public key live in the
// other group.
type Variant uint8

const (
	// CommitmentInG1 commits in G1 and encrypts shares in G2.
	CommitmentInG1 Variant = iota
	// CommitmentInG2 commits in G2 and encrypts shares in G1.
	CommitmentInG2
)

func (v Variant) String() string {
	switch v {
	case CommitmentInG1:
		return "commitment-in-g1"
	case CommitmentInG2:
		return "commitment-in-g2"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

// ParseVariant parses the String form of a Variant.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "commitment-in-g1", "g1":
		return CommitmentInG1, nil
	case "commitment-in-g2", "g2":
		return CommitmentInG2, nil
	}
	return 0, malformed("unknown variant %q", s)
}

// Authentication selects how each dealer's contribution to a transcript is
// authenticated. Without authentication the last dealer to contribute to an
// aggregate can choose its secret after seeing the others.
type Authentication uint8

const (
	// AuthNone accepts unauthenticated contributions.
	AuthNone Authentication = iota
	// AuthProofOfKnowledge requires a Schnorr proof of knowledge of each
	// dealer's secret, bound to the dealer identifier.
	AuthProofOfKnowledge
	// AuthDealerSignature requires a BLS signature by each dealer under a
	// key registered with WithDealerKeys.
	AuthDealerSignature
)

func (a Authentication) String() string {
	switch a {
	case AuthNone:
		return "none"
	case AuthProofOfKnowledge:
		return "pok"
	case AuthDealerSignature:
		return "signature"
	default:
		return fmt.Sprintf("auth(%d)", uint8(a))
	}
}

// ParseAuthentication parses the String form of an Authentication.
func ParseAuthentication(s string) (Authentication, error) {
	switch s {
	case "none":
		return AuthNone, nil
	case "pok":
		return AuthProofOfKnowledge, nil
	case "signature":
		return AuthDealerSignature, nil
	}
	return 0, malformed("unknown authentication %q", s)
}

// Scheme holds the fixed configuration of a t-out-of-n PVSS instance:
// the curve, the group variant, public parameters and tuning knobs.
// A Scheme is immutable after New and safe for concurrent use.
type Scheme struct {
	curve     group.Pairing
	threshold int // t - polynomial degree; t+1 shares reconstruct
	total     int // n - participants
	variant   Variant

	commitGroup group.Group
	shareGroup  group.Group
	params      *PublicParameters

	mul     poly.Multiplier
	interp  *lagrange.Interpolator
	workers int

	logger  *zap.Logger
	hasher  Hasher
	auth    Authentication
	metrics *Metrics

	dealerKeys map[uint32]*dealersig.PublicKey
	seed       []byte
}

// Option configures a Scheme.
type Option func(*Scheme)

// WithVariant selects the group carrying the commitment. Default CommitmentInG1.
func WithVariant(v Variant) Option {
	return func(s *Scheme) { s.variant = v }
}

// WithFFTThreshold sets the combined degree at which polynomial products
// switch to FFT multiplication. Results do not depend on it.
func WithFFTThreshold(threshold int) Option {
	return func(s *Scheme) { s.mul.Threshold = threshold }
}

// WithWorkers bounds the goroutines used for per-participant work.
// Default runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(s *Scheme) { s.workers = n }
}

// WithLogger sets the logger. Default zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(s *Scheme) { s.logger = l }
}

// WithHasher sets the Fiat-Shamir hasher. Default NewSHA3Hasher().
func WithHasher(h Hasher) Option {
	return func(s *Scheme) { s.hasher = h }
}

// WithAuthentication selects contribution authentication. Default AuthNone.
func WithAuthentication(a Authentication) Option {
	return func(s *Scheme) { s.auth = a }
}

// WithMetrics records dealing and verification outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(s *Scheme) { s.metrics = m }
}

// WithPublicParameters replaces the default public parameters.
func WithPublicParameters(pp *PublicParameters) Option {
	return func(s *Scheme) { s.params = pp }
}

// WithSeed derives the public parameters from seed instead of DefaultSeed.
// It is ignored when WithPublicParameters is also given.
func WithSeed(seed []byte) Option {
	return func(s *Scheme) { s.seed = seed }
}

// WithDealerKeys registers the setup-time verification keys of dealers,
// keyed by dealer identifier. Required for AuthDealerSignature.
func WithDealerKeys(keys map[uint32]*dealersig.PublicKey) Option {
	return func(s *Scheme) {
		s.dealerKeys = make(map[uint32]*dealersig.PublicKey, len(keys))
		for id, pk := range keys {
			s.dealerKeys[id] = pk
		}
	}
}

// New creates a Scheme for degree-t sharing among n participants.
// threshold is the polynomial degree t: any t+1 shares reconstruct and t
// shares reveal nothing. It must satisfy 0 <= t < n; with t = 0 every
// share is the secret itself.
func New(curve group.Pairing, threshold, total int, opts ...Option) (*Scheme, error) {
	if curve == nil {
		return nil, malformed("nil curve")
	}
	if threshold < 0 {
		return nil, malformed("negative threshold %d", threshold)
	}
	if total <= threshold {
		return nil, malformed("participants (%d) must exceed threshold (%d)", total, threshold)
	}

	s := &Scheme{
		curve:     curve,
		threshold: threshold,
		total:     total,
		mul:       poly.DefaultMultiplier,
		workers:   runtime.GOMAXPROCS(0),
		logger:    zap.NewNop(),
		hasher:    NewSHA3Hasher(),
		seed:      []byte(DefaultSeed),
	}
	for _, opt := range opts {
		opt(s)
	}

	switch s.variant {
	case CommitmentInG1:
		s.commitGroup, s.shareGroup = curve.G1(), curve.G2()
	case CommitmentInG2:
		s.commitGroup, s.shareGroup = curve.G2(), curve.G1()
	default:
		return nil, malformed("unknown variant %d", s.variant)
	}
	if s.auth > AuthDealerSignature {
		return nil, malformed("unknown authentication %d", s.auth)
	}
	if s.auth == AuthDealerSignature && len(s.dealerKeys) == 0 {
		return nil, malformed("dealer signatures require registered dealer keys")
	}
	if s.workers < 1 {
		s.workers = 1
	}
	if s.mul.Threshold < 0 {
		return nil, malformed("negative FFT threshold %d", s.mul.Threshold)
	}
	s.interp = lagrange.New(s.mul)

	if s.params == nil {
		pp, err := NewPublicParameters(curve, s.variant, s.seed)
		if err != nil {
			return nil, fmt.Errorf("deriving public parameters: %w", err)
		}
		s.params = pp
	} else if err := s.params.check(s.commitGroup, s.shareGroup); err != nil {
		return nil, err
	}

	s.logger = s.logger.With(
		zap.Int("t", threshold),
		zap.Int("n", total),
		zap.Stringer("variant", s.variant),
		zap.Stringer("auth", s.auth),
	)
	return s, nil
}

// Threshold returns the polynomial degree t.
func (s *Scheme) Threshold() int { return s.threshold }

// Total returns the number of participants n.
func (s *Scheme) Total() int { return s.total }

// Variant returns the configured group variant.
func (s *Scheme) Variant() Variant { return s.variant }

// Authentication returns the configured contribution authentication.
func (s *Scheme) Authentication() Authentication { return s.auth }

// PublicParameters returns the scheme's public parameters.
func (s *Scheme) PublicParameters() *PublicParameters { return s.params }

// CommitmentGroup returns the group carrying the commitment.
func (s *Scheme) CommitmentGroup() group.Group { return s.commitGroup }

// ShareGroup returns the group carrying encrypted shares and keys.
func (s *Scheme) ShareGroup() group.Group { return s.shareGroup }

// pairingCheck reports whether prod e(c[i], h[i]) == 1 where every c[i] is
// in the commitment group and every h[i] in the share group.
func (s *Scheme) pairingCheck(c, h []group.Point) (bool, error) {
	var (
		ok  bool
		err error
	)
	if s.variant == CommitmentInG1 {
		ok, err = s.curve.PairingCheck(c, h)
	} else {
		ok, err = s.curve.PairingCheck(h, c)
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return ok, nil
}

// multiExp is g.MultiExp with failures reported as malformed input.
func multiExp(g group.Group, points []group.Point, scalars []group.Scalar) (group.Point, error) {
	p, err := g.MultiExp(points, scalars)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return p, nil
}

func (s *Scheme) checkIndex(i int) error {
	if i < 1 || i > s.total {
		return malformed("participant index %d outside 1..%d", i, s.total)
	}
	return nil
}
