package pvss

import (
	"context"
	mathrand "math/rand/v2"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	f := newFixture(t, 1, 3, WithMetrics(m))
	ctx := context.Background()
	_, tr1 := f.deal(t, DealOptions{Dealer: 1})
	_, tr2 := f.deal(t, DealOptions{Dealer: 2})
	require.NoError(t, f.scheme.Verify(ctx, tr1, f.eks))

	bad := f.scheme.clone(tr2)
	bad.Shares[1].Add(bad.Shares[1], f.scheme.ShareGroup().Generator())
	require.Error(t, f.scheme.Verify(ctx, bad, f.eks))
	require.Error(t, f.scheme.Verify(ctx, nil, f.eks))

	_, err = f.scheme.Aggregate(tr1, tr2)
	require.NoError(t, err)

	require.Equal(t, 2.0, testutil.ToFloat64(m.dealt))
	require.Equal(t, 1.0, testutil.ToFloat64(m.verified.WithLabelValues("valid")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.verified.WithLabelValues("invalid")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.verified.WithLabelValues("error")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.aggregated))

	// Registering twice on the same registry fails.
	_, err = NewMetrics(reg)
	require.Error(t, err)
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	f := newFixture(t, 1, 3, WithLogger(zap.New(core)))
	ctx := context.Background()

	d, tr := f.deal(t, DealOptions{Dealer: 4})
	require.NoError(t, f.scheme.Verify(ctx, tr, f.eks))
	require.Equal(t, 1, logs.FilterMessage("dealt transcript").Len())
	require.Equal(t, 1, logs.FilterMessage("verified transcript").Len())

	tr.Shares[0].Add(tr.Shares[0], f.scheme.ShareGroup().Generator())
	require.Error(t, f.scheme.Verify(ctx, tr, f.eks))
	rejected := logs.FilterMessage("rejected transcript").All()
	require.Len(t, rejected, 1)
	require.Equal(t, zap.WarnLevel, rejected[0].Level)
	require.Equal(t, int64(1), rejected[0].ContextMap()["t"])

	// No entry carries the secret.
	secret := d.Secret()
	for _, e := range logs.All() {
		for _, v := range e.ContextMap() {
			require.NotEqual(t, secret.String(), v)
		}
	}
}

// The FFT threshold and worker count are performance knobs only: the same
// randomness yields byte-identical transcripts.
func TestTuningDoesNotChangeTranscript(t *testing.T) {
	const threshold, total = 20, 40
	base := newFixture(t, threshold, total)
	ctx := context.Background()

	var seed [32]byte
	copy(seed[:], "deterministic dealing randomness")

	var want []byte
	for _, opts := range [][]Option{
		nil,
		{WithFFTThreshold(0)},
		{WithFFTThreshold(1 << 20), WithWorkers(1)},
		{WithFFTThreshold(8), WithWorkers(7)},
	} {
		s, err := New(curve, threshold, total, opts...)
		require.NoError(t, err)
		_, tr, err := s.Deal(ctx, mathrand.NewChaCha8(seed), base.eks, DealOptions{Dealer: 1})
		require.NoError(t, err)
		require.NoError(t, s.Verify(ctx, tr, base.eks))

		enc, err := tr.MarshalBinary()
		require.NoError(t, err)
		if want == nil {
			want = enc
			continue
		}
		require.Equal(t, want, enc)
	}
}
