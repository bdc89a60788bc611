package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	client, err := NewClient("", 50)

	require.Error(t, err)
	assert.Nil(t, client)
}

func TestNewClient_ClampsMaxResults(t *testing.T) {
	tests := []struct {
		name       string
		maxResults int64
		want       int64
	}{
		{name: "zero falls back to platform cap", maxResults: 0, want: 50},
		{name: "negative falls back to platform cap", maxResults: -5, want: 50},
		{name: "above cap is clamped", maxResults: 200, want: 50},
		{name: "in range is kept", maxResults: 25, want: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient("test-key", tt.maxResults)

			require.NoError(t, err)
			assert.Equal(t, tt.want, client.maxResults)
		})
	}
}
