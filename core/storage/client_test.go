package storage_test

import (
	"testing"
	"time"

	"catalog-sync/core/storage"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{
			name: "ValidConfig",
			cfg: storage.Config{
				Endpoint:  "localhost:9000",
				AccessKey: "testkey",
				SecretKey: "testsecret",
				Bucket:    "catalog",
				Region:    "us-east-1",
			},
		},
		{
			name: "EndpointWithHTTP",
			cfg:  storage.Config{Endpoint: "http://localhost:9000", AccessKey: "k", SecretKey: "s"},
		},
		{
			name: "EndpointWithHTTPS",
			cfg:  storage.Config{Endpoint: "https://s3.amazonaws.com", AccessKey: "k", SecretKey: "s", UseSSL: true, Region: "us-east-1"},
		},
		{
			name: "ZeroTimeoutFallsBack",
			cfg:  storage.Config{Endpoint: "localhost:9000", TimeoutSeconds: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestNewClient_InvalidEndpoint(t *testing.T) {
	client, err := storage.NewClient(storage.Config{Endpoint: "localhost:9000/catalog", AccessKey: "k", SecretKey: "s"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create minio client")
	assert.Nil(t, client)
}

func TestNewTransport(t *testing.T) {
	tr := storage.NewTransportForTest(5 * time.Second)
	assert.Equal(t, 5*time.Second, tr.TLSHandshakeTimeout)
	assert.Equal(t, 5*time.Second, tr.ResponseHeaderTimeout)
	assert.True(t, tr.ForceAttemptHTTP2)
}
