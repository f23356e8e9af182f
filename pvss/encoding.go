package pvss

import (
	"encoding/binary"
	"fmt"

	"github.com/f3rmion/pvss/group"
)

// Transcript wire format, version 1. Integers are big-endian.
//
//	magic "PVSS" | version u8 | auth u8 | t u32 | n u32 | k u32
//	PublicKey                      share-group point
//	Commitment[0..t]               commitment-group points
//	Shares[0..n-1]                 share-group points
//	k contributions:
//	  dealer u32 | Commitment0     commitment-group point
//	  auth = pok:       R (commitment-group point) | Z (32-byte scalar)
//	  auth = signature: 96-byte BLS signature
//
// Points are compressed. Every contribution carries the same kind of
// authentication.
const (
	transcriptMagic   = "PVSS"
	transcriptVersion = 1
	headerSize        = len(transcriptMagic) + 1 + 1 + 4 + 4 + 4
	scalarSize        = 32
	signatureSize     = 96
)

// MarshalBinary encodes tr in the canonical transcript format.
func (tr *Transcript) MarshalBinary() ([]byte, error) {
	if tr.PublicKey == nil || len(tr.Commitment) == 0 || len(tr.Shares) == 0 {
		return nil, malformed("incomplete transcript")
	}
	auth, err := contributionAuth(tr.Contributions)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, headerSize)
	out = append(out, transcriptMagic...)
	out = append(out, transcriptVersion, byte(auth))
	out = binary.BigEndian.AppendUint32(out, uint32(len(tr.Commitment)-1))
	out = binary.BigEndian.AppendUint32(out, uint32(len(tr.Shares)))
	out = binary.BigEndian.AppendUint32(out, uint32(len(tr.Contributions)))

	appendPoints := func(ps ...group.Point) error {
		for _, p := range ps {
			if p == nil {
				return malformed("nil point in transcript")
			}
			out = append(out, p.Bytes()...)
		}
		return nil
	}
	if err := appendPoints(tr.PublicKey); err != nil {
		return nil, err
	}
	if err := appendPoints(tr.Commitment...); err != nil {
		return nil, err
	}
	if err := appendPoints(tr.Shares...); err != nil {
		return nil, err
	}
	for _, c := range tr.Contributions {
		out = binary.BigEndian.AppendUint32(out, c.Dealer)
		if err := appendPoints(c.Commitment0); err != nil {
			return nil, err
		}
		switch auth {
		case AuthProofOfKnowledge:
			if err := appendPoints(c.Proof.R); err != nil {
				return nil, err
			}
			out = append(out, group.ScalarBytes(&c.Proof.Z)...)
		case AuthDealerSignature:
			if len(c.Signature) != signatureSize {
				return nil, malformed("signature of dealer %d has length %d", c.Dealer, len(c.Signature))
			}
			out = append(out, c.Signature...)
		}
	}
	return out, nil
}

// contributionAuth returns the authentication kind shared by every
// contribution.
func contributionAuth(cs []Contribution) (Authentication, error) {
	kind := func(c Contribution) Authentication {
		switch {
		case c.Proof != nil:
			return AuthProofOfKnowledge
		case c.Signature != nil:
			return AuthDealerSignature
		}
		return AuthNone
	}
	if len(cs) == 0 {
		return AuthNone, nil
	}
	auth := kind(cs[0])
	for _, c := range cs[1:] {
		if kind(c) != auth {
			return 0, malformed("contributions mix authentication kinds")
		}
	}
	return auth, nil
}

// DecodeTranscript parses a transcript encoded by MarshalBinary. The
// header and total length are validated against the scheme before any
// point is parsed; every point is subgroup-checked.
func (s *Scheme) DecodeTranscript(b []byte) (*Transcript, error) {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: transcript: %s", ErrDeserialization, fmt.Sprintf(format, args...))
	}
	if len(b) < headerSize {
		return nil, fail("length %d shorter than header", len(b))
	}
	if string(b[:4]) != transcriptMagic {
		return nil, fail("bad magic")
	}
	if b[4] != transcriptVersion {
		return nil, fail("unsupported version %d", b[4])
	}
	auth := Authentication(b[5])
	t := binary.BigEndian.Uint32(b[6:10])
	n := binary.BigEndian.Uint32(b[10:14])
	k := binary.BigEndian.Uint32(b[14:18])
	if int64(t) != int64(s.threshold) || int64(n) != int64(s.total) {
		return nil, fail("configuration %d-of-%d, want %d-of-%d", t, n, s.threshold, s.total)
	}

	cs, ss := s.commitGroup.PointSize(), s.shareGroup.PointSize()
	per := 4 + cs
	switch auth {
	case AuthNone:
	case AuthProofOfKnowledge:
		per += cs + scalarSize
	case AuthDealerSignature:
		per += signatureSize
	default:
		return nil, fail("unknown authentication %d", auth)
	}
	fixed := headerSize + ss + (s.threshold+1)*cs + s.total*ss
	if k == 0 || uint64(k) > uint64(len(b)) {
		return nil, fail("bad contribution count %d", k)
	}
	if want := uint64(fixed) + uint64(k)*uint64(per); uint64(len(b)) != want {
		return nil, fail("length %d, want %d", len(b), want)
	}

	r := &reader{buf: b[headerSize:]}
	tr := &Transcript{
		PublicKey:     r.point(s.shareGroup),
		Commitment:    make([]group.Point, s.threshold+1),
		Shares:        make([]group.Point, s.total),
		Contributions: make([]Contribution, k),
	}
	for j := range tr.Commitment {
		tr.Commitment[j] = r.point(s.commitGroup)
	}
	for i := range tr.Shares {
		tr.Shares[i] = r.point(s.shareGroup)
	}
	for i := range tr.Contributions {
		c := &tr.Contributions[i]
		c.Dealer = r.uint32()
		c.Commitment0 = r.point(s.commitGroup)
		switch auth {
		case AuthProofOfKnowledge:
			c.Proof = &Proof{R: r.point(s.commitGroup), Z: r.scalar()}
		case AuthDealerSignature:
			c.Signature = append([]byte(nil), r.next(signatureSize)...)
		}
	}
	if r.err != nil {
		return nil, fmt.Errorf("transcript: %w", r.err)
	}
	return tr, nil
}

// reader consumes fixed-size fields, remembering the first error.
// Lengths are validated up front, so next never runs short.
type reader struct {
	buf []byte
	err error
}

func (r *reader) next(n int) []byte {
	out := r.buf[:n]
	r.buf = r.buf[n:]
	return out
}

func (r *reader) uint32() uint32 {
	return binary.BigEndian.Uint32(r.next(4))
}

func (r *reader) point(g group.Group) group.Point {
	data := r.next(g.PointSize())
	if r.err != nil {
		return nil
	}
	p, err := g.NewPoint().SetBytes(data)
	if err != nil {
		r.err = err
		return nil
	}
	return p
}

func (r *reader) scalar() group.Scalar {
	data := r.next(scalarSize)
	if r.err != nil {
		return group.Scalar{}
	}
	sc, err := group.ScalarFromBytes(data)
	if err != nil {
		r.err = err
	}
	return sc
}

// DecodeShare parses a decrypted share value for participant index.
func (s *Scheme) DecodeShare(index int, b []byte) (*Share, error) {
	if err := s.checkIndex(index); err != nil {
		return nil, err
	}
	p, err := s.shareGroup.NewPoint().SetBytes(b)
	if err != nil {
		return nil, err
	}
	return &Share{Index: index, Value: p}, nil
}
