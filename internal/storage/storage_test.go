package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightkit/flightd/internal/config"
)

func TestObjectStorageURL(t *testing.T) {
	t.Run("JoinsEndpointBucketKey", func(t *testing.T) {
		s, err := New(config.StorageConfig{
			Endpoint:       "https://storage.yandexcloud.net",
			PublicEndpoint: "https://storage.yandexcloud.net",
			AccessKey:      "ak",
			SecretKey:      "sk",
			Bucket:         "tickets-bucket",
		})
		require.NoError(t, err)
		assert.Equal(t,
			"https://storage.yandexcloud.net/tickets-bucket/ticket_1.txt",
			s.ObjectURL("ticket_1.txt"))
	})

	t.Run("TrimsTrailingSlash", func(t *testing.T) {
		s, err := New(config.StorageConfig{
			Endpoint:       "http://localhost:9000",
			PublicEndpoint: "http://localhost:9000/",
			AccessKey:      "ak",
			SecretKey:      "sk",
			Bucket:         "b",
		})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/b/ticket_9.txt", s.ObjectURL("ticket_9.txt"))
	})
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore("https://storage.example.com", "tickets-bucket")

	require.NoError(t, s.Put(context.Background(), "ticket_5.txt", []byte("hello")))
	assert.Equal(t, 1, s.Len())

	body, ok := s.Get("ticket_5.txt")
	require.True(t, ok)
	assert.Equal(t, "hello", string(body))

	_, ok = s.Get("ticket_6.txt")
	assert.False(t, ok)

	assert.Equal(t, "https://storage.example.com/tickets-bucket/ticket_5.txt",
		s.ObjectURL("ticket_5.txt"))
}
