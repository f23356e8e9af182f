package pvss

import (
	"fmt"

	"github.com/f3rmion/pvss/group"
)

// WeightedConfig splits players into virtual participants: a player of
// weight w owns w consecutive share indices. A set of players can
// reconstruct when their combined weight reaches the threshold weight.
//
// For weights [2, 4, 3] the nine virtual participants are 1..9; player 0
// owns 1..2, player 1 owns 3..6 and player 2 owns 7..9.
type WeightedConfig struct {
	threshold int   // minimum weight able to reconstruct
	weights   []int // per player
	start     []int // first virtual index (1-based) of each player
	total     int
}

// NewWeightedConfig creates a configuration in which any set of players
// with combined weight at least threshold can reconstruct.
func NewWeightedConfig(threshold int, weights []int) (*WeightedConfig, error) {
	if len(weights) == 0 {
		return nil, malformed("no players")
	}
	wc := &WeightedConfig{
		threshold: threshold,
		weights:   append([]int(nil), weights...),
		start:     make([]int, len(weights)),
	}
	next := 1
	for p, w := range weights {
		if w < 1 {
			return nil, malformed("player %d has weight %d", p, w)
		}
		wc.start[p] = next
		next += w
	}
	wc.total = next - 1
	if threshold < 1 || threshold > wc.total {
		return nil, malformed("threshold weight %d outside 1..%d", threshold, wc.total)
	}
	return wc, nil
}

// Players returns the number of players.
func (wc *WeightedConfig) Players() int { return len(wc.weights) }

// TotalWeight returns the number of virtual participants.
func (wc *WeightedConfig) TotalWeight() int { return wc.total }

// ThresholdWeight returns the minimum weight able to reconstruct.
func (wc *WeightedConfig) ThresholdWeight() int { return wc.threshold }

// Weight returns the weight of player p.
func (wc *WeightedConfig) Weight(p int) int { return wc.weights[p] }

// Degree returns the polynomial degree for a Scheme serving this
// configuration: ThresholdWeight()-1.
func (wc *WeightedConfig) Degree() int { return wc.threshold - 1 }

// NewScheme returns a Scheme over the virtual participants of wc.
func (wc *WeightedConfig) NewScheme(curve group.Pairing, opts ...Option) (*Scheme, error) {
	return New(curve, wc.Degree(), wc.total, opts...)
}

// Indices returns the virtual share indices owned by player p.
func (wc *WeightedConfig) Indices(p int) []int {
	out := make([]int, wc.weights[p])
	for k := range out {
		out[k] = wc.start[p] + k
	}
	return out
}

// Player returns the player owning virtual index i.
func (wc *WeightedConfig) Player(i int) (int, error) {
	if i < 1 || i > wc.total {
		return 0, malformed("virtual index %d outside 1..%d", i, wc.total)
	}
	for p := len(wc.start) - 1; p >= 0; p-- {
		if i >= wc.start[p] {
			return p, nil
		}
	}
	return 0, malformed("virtual index %d unowned", i)
}

// CanReconstruct reports whether the given distinct players together hold
// at least the threshold weight.
func (wc *WeightedConfig) CanReconstruct(players []int) bool {
	sum := 0
	seen := make(map[int]struct{}, len(players))
	for _, p := range players {
		if p < 0 || p >= len(wc.weights) {
			return false
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		sum += wc.weights[p]
	}
	return sum >= wc.threshold
}

// ExpandKeys returns one encryption key per virtual participant, repeating
// each player's key for every index it owns.
func (wc *WeightedConfig) ExpandKeys(eks []*EncryptKey) ([]*EncryptKey, error) {
	if len(eks) != len(wc.weights) {
		return nil, malformed("got %d player keys, want %d", len(eks), len(wc.weights))
	}
	out := make([]*EncryptKey, 0, wc.total)
	for p, ek := range eks {
		for range wc.weights[p] {
			out = append(out, ek)
		}
	}
	return out, nil
}

// String returns "w-out-of-W/n-players/weighted".
func (wc *WeightedConfig) String() string {
	return fmt.Sprintf("%d-out-of-%d/%d-players/weighted", wc.threshold, wc.total, len(wc.weights))
}

// DecryptPlayerShares decrypts every share of player p under wc.
func (s *Scheme) DecryptPlayerShares(wc *WeightedConfig, tr *Transcript, p int, dk *DecryptKey) ([]Share, error) {
	if wc.total != s.total || wc.Degree() != s.threshold {
		return nil, malformed("weighted configuration %v does not match %d-of-%d scheme", wc, s.threshold, s.total)
	}
	if p < 0 || p >= wc.Players() {
		return nil, malformed("player %d outside 0..%d", p, wc.Players()-1)
	}
	indices := wc.Indices(p)
	out := make([]Share, len(indices))
	for k, i := range indices {
		sh, err := s.DecryptShare(tr, i, dk)
		if err != nil {
			return nil, err
		}
		out[k] = *sh
	}
	return out, nil
}
