package captcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightkit/flightd/internal/config"
)

func verifierFor(t *testing.T, handler http.HandlerFunc) *SmartCaptcha {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewSmartCaptcha(config.CaptchaConfig{
		Secret:    "shh",
		VerifyURL: srv.URL,
		Timeout:   time.Second,
	})
}

func TestSmartCaptchaVerify(t *testing.T) {
	t.Run("Pass", func(t *testing.T) {
		v := verifierFor(t, func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "tok", body["token"])
			assert.Equal(t, "shh", body["secret"])
			json.NewEncoder(w).Encode(map[string]bool{"success": true})
		})

		ok, err := v.Verify(context.Background(), "tok")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Rejected", func(t *testing.T) {
		v := verifierFor(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]bool{"success": false})
		})

		ok, err := v.Verify(context.Background(), "tok")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Non200IsFail", func(t *testing.T) {
		v := verifierFor(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		ok, err := v.Verify(context.Background(), "tok")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("EndpointUnreachable", func(t *testing.T) {
		v := NewSmartCaptcha(config.CaptchaConfig{
			Secret:    "shh",
			VerifyURL: "http://127.0.0.1:1",
			Timeout:   200 * time.Millisecond,
		})

		_, err := v.Verify(context.Background(), "tok")
		assert.Error(t, err)
	})
}

func TestForConfig(t *testing.T) {
	v := ForConfig(config.CaptchaConfig{Enforce: false})
	_, isPass := v.(AlwaysPass)
	assert.True(t, isPass)

	ok, err := v.Verify(context.Background(), "anything")
	require.NoError(t, err)
	assert.True(t, ok)

	v = ForConfig(config.CaptchaConfig{Enforce: true, Secret: "s", VerifyURL: "https://x", Timeout: time.Second})
	_, isReal := v.(*SmartCaptcha)
	assert.True(t, isReal)
}
