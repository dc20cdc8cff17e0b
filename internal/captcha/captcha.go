// Package captcha verifies purchase requests against SmartCaptcha.
package captcha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/flightkit/flightd/internal/config"
)

// Verifier reports whether a captcha token passes verification. A false
// result with a nil error means the token was rejected; an error means
// the verdict could not be obtained.
type Verifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// SmartCaptcha verifies tokens against the SmartCaptcha HTTP endpoint.
type SmartCaptcha struct {
	secret    string
	verifyURL string
	client    *http.Client
}

// NewSmartCaptcha creates a verifier with the configured endpoint, secret
// and request timeout.
func NewSmartCaptcha(cfg config.CaptchaConfig) *SmartCaptcha {
	return &SmartCaptcha{
		secret:    cfg.Secret,
		verifyURL: cfg.VerifyURL,
		client:    &http.Client{Timeout: cfg.Timeout},
	}
}

// Verify posts the token and shared secret to the verification endpoint.
// A pass requires HTTP 200 and a truthy success flag in the response.
func (v *SmartCaptcha) Verify(ctx context.Context, token string) (bool, error) {
	payload, err := json.Marshal(map[string]string{
		"token":  token,
		"secret": v.secret,
	})
	if err != nil {
		return false, fmt.Errorf("failed to encode captcha request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("failed to build captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha verification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}
	var body struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("failed to decode captcha response: %w", err)
	}
	return body.Success, nil
}

// AlwaysPass accepts every token. Wired only when enforcement is
// explicitly disabled in configuration.
type AlwaysPass struct{}

func (AlwaysPass) Verify(context.Context, string) (bool, error) { return true, nil }

// ForConfig returns the verifier selected by the enforcement toggle.
func ForConfig(cfg config.CaptchaConfig) Verifier {
	if !cfg.Enforce {
		return AlwaysPass{}
	}
	return NewSmartCaptcha(cfg)
}
