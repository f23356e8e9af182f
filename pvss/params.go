package pvss

import (
	"fmt"

	"github.com/f3rmion/pvss/group"
)

// DefaultSeed is the public nothing-up-my-sleeve seed for the default
// public parameters.
const DefaultSeed = "PVSS_BLS12381_PUBLIC_PARAMETERS_SEED"

// paramsDST separates hashing the public parameters from any other use of
// hash-to-curve.
const paramsDST = "PVSS-BLS12381-PUBLIC-PARAMETERS-V01"

// PublicParameters are the three bases used by the scheme. Nobody knows
// the discrete logarithm of any of them with respect to the others.
type PublicParameters struct {
	// G is the commitment base, in the commitment group.
	G group.Point
	// H is the encryption-key base, in the share group. Decrypted shares
	// are h^{f(i)}.
	H group.Point
	// U is the dealt-public-key base, in the share group.
	U group.Point
}

// NewPublicParameters hashes seed to the three bases for the given variant.
func NewPublicParameters(curve group.Pairing, v Variant, seed []byte) (*PublicParameters, error) {
	cg, sg := curve.G1(), curve.G2()
	if v == CommitmentInG2 {
		cg, sg = sg, cg
	}
	hash := func(g group.Group, label string) (group.Point, error) {
		msg := make([]byte, 0, len(seed)+len(label))
		msg = append(append(msg, seed...), label...)
		return g.HashToPoint(msg, []byte(paramsDST))
	}

	var (
		pp  PublicParameters
		err error
	)
	if pp.G, err = hash(cg, "g"); err != nil {
		return nil, err
	}
	if pp.H, err = hash(sg, "h"); err != nil {
		return nil, err
	}
	if pp.U, err = hash(sg, "u"); err != nil {
		return nil, err
	}
	return &pp, nil
}

// Bytes returns g || h || u in compressed form.
func (pp *PublicParameters) Bytes() []byte {
	out := append([]byte{}, pp.G.Bytes()...)
	out = append(out, pp.H.Bytes()...)
	return append(out, pp.U.Bytes()...)
}

// DecodePublicParameters parses the output of PublicParameters.Bytes for
// the scheme's variant.
func (s *Scheme) DecodePublicParameters(b []byte) (*PublicParameters, error) {
	cs, ss := s.commitGroup.PointSize(), s.shareGroup.PointSize()
	if len(b) != cs+2*ss {
		return nil, fmt.Errorf("%w: public parameters have length %d, want %d", ErrDeserialization, len(b), cs+2*ss)
	}
	var (
		pp  PublicParameters
		err error
	)
	if pp.G, err = s.commitGroup.NewPoint().SetBytes(b[:cs]); err != nil {
		return nil, err
	}
	if pp.H, err = s.shareGroup.NewPoint().SetBytes(b[cs : cs+ss]); err != nil {
		return nil, err
	}
	if pp.U, err = s.shareGroup.NewPoint().SetBytes(b[cs+ss:]); err != nil {
		return nil, err
	}
	if err := pp.check(s.commitGroup, s.shareGroup); err != nil {
		return nil, err
	}
	return &pp, nil
}

func (pp *PublicParameters) check(cg, sg group.Group) error {
	if pp.G == nil || pp.H == nil || pp.U == nil {
		return malformed("public parameters missing a base")
	}
	if pp.G.IsIdentity() || pp.H.IsIdentity() || pp.U.IsIdentity() {
		return malformed("public parameter base is the identity")
	}
	if len(pp.G.Bytes()) != cg.PointSize() || len(pp.H.Bytes()) != sg.PointSize() {
		return malformed("public parameters do not match the group variant")
	}
	return nil
}
