package pvss

import (
	"context"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWeightedConfig(t *testing.T) {
	wc, err := NewWeightedConfig(5, []int{2, 4, 3})
	require.NoError(t, err)
	require.Equal(t, 3, wc.Players())
	require.Equal(t, 9, wc.TotalWeight())
	require.Equal(t, 5, wc.ThresholdWeight())
	require.Equal(t, 4, wc.Degree())
	require.Equal(t, "5-out-of-9/3-players/weighted", wc.String())

	require.Equal(t, []int{1, 2}, wc.Indices(0))
	require.Equal(t, []int{3, 4, 5, 6}, wc.Indices(1))
	require.Equal(t, []int{7, 8, 9}, wc.Indices(2))

	for i, want := range map[int]int{1: 0, 2: 0, 3: 1, 6: 1, 7: 2, 9: 2} {
		p, err := wc.Player(i)
		require.NoError(t, err)
		require.Equal(t, want, p, "index %d", i)
	}
	for _, i := range []int{0, 10, -1} {
		_, err := wc.Player(i)
		require.ErrorIs(t, err, ErrMalformedInput)
	}

	require.True(t, wc.CanReconstruct([]int{0, 2}))
	require.True(t, wc.CanReconstruct([]int{1, 0}))
	require.False(t, wc.CanReconstruct([]int{1}))
	require.False(t, wc.CanReconstruct([]int{1, 1}))
	require.False(t, wc.CanReconstruct([]int{0, 3}))

	for _, tc := range []struct {
		threshold int
		weights   []int
	}{
		{5, nil},
		{0, []int{2, 2}},
		{5, []int{2, 2}},
		{3, []int{2, 0, 2}},
	} {
		_, err := NewWeightedConfig(tc.threshold, tc.weights)
		require.ErrorIs(t, err, ErrMalformedInput, "%d %v", tc.threshold, tc.weights)
	}
}

func TestWeightedDealing(t *testing.T) {
	wc, err := NewWeightedConfig(5, []int{2, 4, 3})
	require.NoError(t, err)
	s, err := wc.NewScheme(curve)
	require.NoError(t, err)
	require.Equal(t, 4, s.Threshold())
	require.Equal(t, 9, s.Total())

	dks := make([]*DecryptKey, wc.Players())
	players := make([]*EncryptKey, wc.Players())
	for p := range players {
		dks[p], players[p], err = s.GenerateKeyPair(rand.Reader)
		require.NoError(t, err)
	}
	_, err = wc.ExpandKeys(players[:2])
	require.ErrorIs(t, err, ErrMalformedInput)
	eks, err := wc.ExpandKeys(players)
	require.NoError(t, err)
	require.Len(t, eks, 9)
	require.True(t, eks[5].Equal(players[1]))
	require.True(t, eks[6].Equal(players[2]))

	d, tr, err := s.Deal(context.Background(), rand.Reader, eks, DealOptions{})
	require.NoError(t, err)
	require.NoError(t, s.Verify(context.Background(), tr, eks))

	sharesOf := func(p int) []Share {
		sh, err := s.DecryptPlayerShares(wc, tr, p, dks[p])
		require.NoError(t, err)
		require.Len(t, sh, wc.Weight(p))
		return sh
	}

	got, err := s.Reconstruct(append(sharesOf(0), sharesOf(2)...))
	require.NoError(t, err)
	require.True(t, got.Equal(d.DealtSecretKey()))

	_, err = s.Reconstruct(sharesOf(1))
	require.ErrorIs(t, err, ErrInsufficientShares)

	t.Run("WrongKey", func(t *testing.T) {
		_, err := s.DecryptPlayerShares(wc, tr, 0, dks[1])
		require.ErrorIs(t, err, ErrDecryptionMismatch)
	})
	t.Run("UnknownPlayer", func(t *testing.T) {
		_, err := s.DecryptPlayerShares(wc, tr, 3, dks[0])
		require.ErrorIs(t, err, ErrMalformedInput)
	})
	t.Run("MismatchedScheme", func(t *testing.T) {
		other, err := New(curve, 2, 9)
		require.NoError(t, err)
		_, err = other.DecryptPlayerShares(wc, tr, 0, dks[0])
		require.ErrorIs(t, err, ErrMalformedInput)
	})
}
