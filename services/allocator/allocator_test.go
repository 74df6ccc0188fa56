package allocator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextItemIDGapFilling(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		existing []string
		want     string
	}{
		{name: "empty category", prefix: "mn", existing: nil, want: "mn_001"},
		{name: "appends after contiguous ids", prefix: "mn", existing: []string{"mn_001", "mn_002"}, want: "mn_003"},
		{name: "reuses gap left by deletion", prefix: "mn", existing: []string{"mn_001", "mn_003"}, want: "mn_002"},
		{name: "ignores other prefixes", prefix: "dr", existing: []string{"mn_001", "dr_001"}, want: "dr_002"},
		{name: "ignores malformed ids", prefix: "mn", existing: []string{"mn_abc", "mn_", "mn_+2", "mn_-1", "mn_001"}, want: "mn_002"},
		{name: "accepts unpadded suffixes", prefix: "mn", existing: []string{"mn_1", "mn_2"}, want: "mn_003"},
		{name: "grows past three digits", prefix: "mn", existing: []string{"mn_999", "mn_1000"}, want: "mn_001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextItemID(tt.prefix, tt.existing)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, tt.existing, got, "allocated id must be free")
		})
	}
}

func TestNextItemIDRejectsBadPrefix(t *testing.T) {
	for _, prefix := range []string{"", "a", "abcd", "AB", "a!", "m n"} {
		t.Run("prefix "+prefix, func(t *testing.T) {
			_, err := NextItemID(prefix, nil)
			assert.ErrorIs(t, err, ErrInvalidPrefix)
		})
	}
}

func TestNextItemIDDoesNotMutateInput(t *testing.T) {
	existing := []string{"mn_003", "mn_001"}
	_, err := NextItemID("mn", existing)
	require.NoError(t, err)
	assert.Equal(t, []string{"mn_003", "mn_001"}, existing)
}

func TestSlugifyName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Maria Lopez", "maria-lopez"},
		{"  Budi   Santoso  ", "budi-santoso"},
		{"Table #4!", "table-4"},
		{"---", "order"},
		{"", "order"},
		{"李明", "order"},
		{"a--b", "a-b"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SlugifyName(tt.in))
		})
	}
}

func TestEnsureUniqueOrderID(t *testing.T) {
	t.Run("returns base when free", func(t *testing.T) {
		got, err := EnsureUniqueOrderID(context.Background(), "maria", func(ctx context.Context, c string) (bool, error) {
			return false, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "maria", got)
	})

	t.Run("appends first free suffix", func(t *testing.T) {
		taken := map[string]bool{"maria": true}
		got, err := EnsureUniqueOrderID(context.Background(), "maria", func(ctx context.Context, c string) (bool, error) {
			return taken[c], nil
		})
		require.NoError(t, err)
		assert.Equal(t, "maria1", got)
	})

	t.Run("skips consecutive collisions", func(t *testing.T) {
		taken := map[string]bool{"maria": true, "maria1": true, "maria2": true}
		got, err := EnsureUniqueOrderID(context.Background(), "maria", func(ctx context.Context, c string) (bool, error) {
			return taken[c], nil
		})
		require.NoError(t, err)
		assert.Equal(t, "maria3", got)
	})

	t.Run("gives up after the probe cap", func(t *testing.T) {
		probes := 0
		_, err := EnsureUniqueOrderID(context.Background(), "maria", func(ctx context.Context, c string) (bool, error) {
			probes++
			return true, nil
		})
		assert.ErrorIs(t, err, ErrIDSpaceExhausted)
		assert.Equal(t, maxOrderIDProbes, probes)
	})

	t.Run("propagates probe errors", func(t *testing.T) {
		probeErr := errors.New("store unavailable")
		_, err := EnsureUniqueOrderID(context.Background(), "maria", func(ctx context.Context, c string) (bool, error) {
			return false, probeErr
		})
		assert.ErrorIs(t, err, probeErr)
	})
}
