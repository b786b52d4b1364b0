package interactive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/hdeploy/internal/domain/config"
)

func TestFuzzySearch(t *testing.T) {
	items := []string{"sepolia", "base-sepolia", "arbitrum-one", "mainnet"}
	search := createFuzzySearchFunc(items)

	tests := []struct {
		input string
		want  []string
	}{
		{input: "", want: items},
		{input: "sep", want: []string{"sepolia", "base-sepolia"}},
		{input: "bsep", want: []string{"base-sepolia"}},
		{input: "ARB", want: []string{"arbitrum-one"}},
		{input: "zzz", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got []string
			for i, item := range items {
				if search(tt.input, i) {
					got = append(got, item)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectNetwork_NoPrompt(t *testing.T) {
	ctx := context.Background()

	t.Run("single network", func(t *testing.T) {
		s := NewNetworkSelector(&config.RuntimeConfig{})
		got, err := s.SelectNetwork(ctx, []string{"local"})
		require.NoError(t, err)
		assert.Equal(t, "local", got)
	})

	t.Run("none configured", func(t *testing.T) {
		s := NewNetworkSelector(&config.RuntimeConfig{})
		_, err := s.SelectNetwork(ctx, nil)
		assert.ErrorIs(t, err, ErrNoNetworks)
	})

	t.Run("non-interactive", func(t *testing.T) {
		s := NewNetworkSelector(&config.RuntimeConfig{NonInteractive: true})
		_, err := s.SelectNetwork(ctx, []string{"a", "b"})
		assert.Error(t, err)
	})
}
