package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/f3rmion/pvss/dealersig"
	"github.com/f3rmion/pvss/group"
	"github.com/f3rmion/pvss/pvss"
)

var (
	// ErrAlreadyDealt is returned by a second call to Participant.Deal.
	ErrAlreadyDealt = errors.New("session: transcript already dealt")
	// ErrAlreadyFinalized is returned by a second call to Participant.Finalize.
	ErrAlreadyFinalized = errors.New("session: DKG already finalized")
)

// Participant manages a single participant's state throughout a DKG
// ceremony. Create instances using [NewParticipant].
type Participant struct {
	mu     sync.Mutex
	scheme *pvss.Scheme
	id     int
	rng    io.Reader
	dk     *pvss.DecryptKey
	ek     *pvss.EncryptKey
	signer *dealersig.Signer
	dealt  bool
	result *DKGResult
}

// DKGResult contains the output of a successful DKG ceremony.
type DKGResult struct {
	// Transcript is the aggregate of every qualified dealer's transcript.
	// It is the same for all participants.
	Transcript *pvss.Transcript

	// Share is this participant's decrypted share h^{sk_i} of the
	// distributed secret key. Store this securely.
	Share *pvss.Share

	// PublicKeyShare is g^{sk_i}, the public counterpart of Share.
	PublicKeyShare group.Point

	// PublicKey is the distributed public key u^{sk}.
	PublicKey group.Point
}

// Dealers returns the ids of the dealers whose secrets make up the key.
func (r *DKGResult) Dealers() []uint32 {
	return r.Transcript.Dealers()
}

// NewParticipant creates a participant with a fresh encryption keypair.
//
// Parameters:
//   - s: the scheme shared by all participants
//   - id: this participant's share index (1 to n), also used as its dealer id
//   - rng: randomness for the keypair and the dealing
//
// The returned Participant can be used for one DKG ceremony.
func NewParticipant(s *pvss.Scheme, id int, rng io.Reader) (*Participant, error) {
	return NewParticipantWithSigner(s, id, rng, nil)
}

// NewParticipantWithSigner creates a participant that signs its dealing.
// Use this with schemes created with [pvss.AuthDealerSignature].
func NewParticipantWithSigner(s *pvss.Scheme, id int, rng io.Reader, signer *dealersig.Signer) (*Participant, error) {
	if err := checkID(s, id); err != nil {
		return nil, err
	}
	dk, ek, err := s.GenerateKeyPair(rng)
	if err != nil {
		return nil, fmt.Errorf("failed to generate keypair: %w", err)
	}
	return &Participant{
		scheme: s,
		id:     id,
		rng:    rng,
		dk:     dk,
		ek:     ek,
		signer: signer,
	}, nil
}

// RestoreParticipant rebuilds a participant from a previously stored
// decryption key. The restored participant has not dealt yet.
func RestoreParticipant(s *pvss.Scheme, id int, rng io.Reader, dk *pvss.DecryptKey, signer *dealersig.Signer) (*Participant, error) {
	if err := checkID(s, id); err != nil {
		return nil, err
	}
	if dk == nil {
		return nil, fmt.Errorf("%w: nil decryption key", pvss.ErrMalformedInput)
	}
	return &Participant{
		scheme: s,
		id:     id,
		rng:    rng,
		dk:     dk,
		ek:     s.EncryptKeyFor(dk),
		signer: signer,
	}, nil
}

func checkID(s *pvss.Scheme, id int) error {
	if s == nil {
		return fmt.Errorf("%w: nil scheme", pvss.ErrMalformedInput)
	}
	if id < 1 || id > s.Total() {
		return fmt.Errorf("%w: participant ID must be between 1 and %d, got %d", pvss.ErrMalformedInput, s.Total(), id)
	}
	return nil
}

// ID returns this participant's identifier.
func (p *Participant) ID() int {
	return p.id
}

// EncryptKey returns the key other dealers encrypt this participant's
// share to. Publish it before the ceremony starts.
func (p *Participant) EncryptKey() *pvss.EncryptKey {
	return p.ek
}

// DecryptKey returns the participant's decryption key, for persisting.
func (p *Participant) DecryptKey() *pvss.DecryptKey {
	return p.dk
}

// Result returns the DKG output, or nil before Finalize succeeded.
func (p *Participant) Result() *DKGResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}

// Deal produces this participant's transcript for the given encryption
// keys, indexed by participant (eks[i-1] belongs to participant i).
//
// Deal can be called once. The secret polynomial is destroyed before
// Deal returns, so a lost transcript cannot be re-dealt with the same
// secret.
func (p *Participant) Deal(ctx context.Context, eks []*pvss.EncryptKey) (*pvss.Transcript, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dealt {
		return nil, ErrAlreadyDealt
	}
	if len(eks) != p.scheme.Total() {
		return nil, fmt.Errorf("%w: got %d encryption keys, want %d", pvss.ErrMalformedInput, len(eks), p.scheme.Total())
	}
	if eks[p.id-1] == nil || !eks[p.id-1].Equal(p.ek) {
		return nil, fmt.Errorf("%w: key %d is not this participant's", pvss.ErrMalformedInput, p.id)
	}

	dealing, tr, err := p.scheme.Deal(ctx, p.rng, eks, pvss.DealOptions{
		Dealer: uint32(p.id),
		Signer: p.signer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to deal: %w", err)
	}
	dealing.Destroy()
	p.dealt = true
	return tr, nil
}

// Finalize verifies the received transcripts, aggregates them and
// decrypts this participant's share of the result.
//
// All participants must finalize over the same set of transcripts to
// agree on the key. Any invalid transcript fails the whole call; the
// caller decides whether to exclude its dealer and retry.
func (p *Participant) Finalize(ctx context.Context, transcripts []*pvss.Transcript, eks []*pvss.EncryptKey) (*DKGResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.result != nil {
		return nil, ErrAlreadyFinalized
	}
	if len(transcripts) == 0 {
		return nil, fmt.Errorf("%w: no transcripts to finalize", pvss.ErrMalformedInput)
	}

	if err := p.scheme.BatchVerify(ctx, transcripts, eks); err != nil {
		return nil, fmt.Errorf("invalid transcript: %w", err)
	}
	agg, err := p.scheme.Aggregate(transcripts...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate: %w", err)
	}
	share, err := p.scheme.DecryptShare(agg, p.id, p.dk)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt share: %w", err)
	}
	pks, err := p.scheme.PublicKeyShare(agg, p.id)
	if err != nil {
		return nil, err
	}

	p.result = &DKGResult{
		Transcript:     agg,
		Share:          share,
		PublicKeyShare: pks,
		PublicKey:      agg.PublicKey,
	}
	return p.result, nil
}
