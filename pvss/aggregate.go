package pvss

import (
	"go.uber.org/zap"
)

// Aggregate combines transcripts dealt under this scheme to the same keys
// into one transcript sharing the sum of their secrets. Commitments,
// encrypted shares and dealt public keys are added pointwise;
// contributions are concatenated in input order.
//
// Aggregate does not verify its inputs. Callers must verify each transcript
// first; the result can itself be passed to Verify.
func (s *Scheme) Aggregate(trs ...*Transcript) (*Transcript, error) {
	if len(trs) == 0 {
		return nil, malformed("nothing to aggregate")
	}
	seen := make(map[uint32]int)
	for k, tr := range trs {
		if err := s.checkShape(tr); err != nil {
			return nil, err
		}
		if len(tr.Contributions) == 0 {
			return nil, malformed("transcript %d has no contributions", k)
		}
		for _, c := range tr.Contributions {
			if c.Commitment0 == nil || (c.Proof != nil && c.Proof.R == nil) {
				return nil, malformed("incomplete contribution from dealer %d", c.Dealer)
			}
			if prev, ok := seen[c.Dealer]; ok {
				return nil, malformed("dealer %d appears in transcripts %d and %d", c.Dealer, prev, k)
			}
			seen[c.Dealer] = k
		}
	}
	if _, err := contributionAuth(collectContributions(trs)); err != nil {
		return nil, err
	}

	out := s.clone(trs[0])
	for _, tr := range trs[1:] {
		out.PublicKey.Add(out.PublicKey, tr.PublicKey)
		for j := range out.Commitment {
			out.Commitment[j].Add(out.Commitment[j], tr.Commitment[j])
		}
		for i := range out.Shares {
			out.Shares[i].Add(out.Shares[i], tr.Shares[i])
		}
		for _, c := range tr.Contributions {
			out.Contributions = append(out.Contributions, s.cloneContribution(c))
		}
	}

	s.metrics.observeAggregate(len(trs))
	s.logger.Debug("aggregated transcripts", zap.Int("inputs", len(trs)), zap.Uint32s("dealers", out.Dealers()))
	return out, nil
}

func collectContributions(trs []*Transcript) []Contribution {
	var out []Contribution
	for _, tr := range trs {
		out = append(out, tr.Contributions...)
	}
	return out
}
