package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient_Validation(t *testing.T) {
	tests := []struct {
		name    string
		config  RedisConfig
		wantErr string
	}{
		{name: "disabled", config: RedisConfig{Address: "localhost:6379"}, wantErr: "disabled"},
		{name: "missing address", config: RedisConfig{Enabled: true}, wantErr: "address is required"},
		{name: "unreachable", config: RedisConfig{Enabled: true, Address: "127.0.0.1:1"}, wantErr: "failed to connect"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewRedisClient(tt.config)
			require.Error(t, err)
			assert.Nil(t, client)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewManager_Disabled(t *testing.T) {
	client, err := NewManager(StorageConfig{})
	require.Error(t, err)
	assert.Nil(t, client)
}

func TestBuildKey(t *testing.T) {
	client := &RedisClient{keyPrefix: "incident-kpis"}

	assert.Equal(t, "incident-kpis:cache:dashboard:30d", client.buildKey("cache", "dashboard:30d"))
	assert.Equal(t, "incident-kpis", client.buildKey())
}
