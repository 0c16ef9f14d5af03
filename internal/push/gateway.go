package push

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	defaultTimeout = 30 * time.Second
	// maxErrorBody caps how much of a failed gateway response is logged.
	maxErrorBody = 64 << 10
)

// Sender delivers one payload to a set of tokens in a single request.
type Sender interface {
	Send(ctx context.Context, endpoint, apiKey string, tokens []string, payload string) error
}

type (
	request struct {
		RegistrationIDs []string    `json:"registration_ids"`
		Data            requestData `json:"data"`
	}

	requestData struct {
		Data string `json:"data"`
	}
)

// Gateway is the HTTP client of a GCM style push gateway.
type Gateway struct {
	client *http.Client
}

// NewGateway returns a Gateway whose requests time out after timeout.
// A zero timeout selects 30 seconds.
func NewGateway(timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Gateway{client: &http.Client{Timeout: timeout}}
}

// Body returns the JSON document posted to the gateway.
func Body(tokens []string, payload string) ([]byte, error) {
	return json.Marshal(request{
		RegistrationIDs: tokens,
		Data:            requestData{Data: payload},
	})
}

// Send posts payload for tokens to endpoint. Any status other than 200 yields a *GatewayError.
func (g *Gateway) Send(ctx context.Context, endpoint, apiKey string, tokens []string, payload string) error {
	body, err := Body(tokens, payload)
	if err != nil {
		return errors.Wrap(err, "failed to encode gateway request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to create gateway request")
	}
	req.Header.Set("Authorization", "key="+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "gateway request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Error().
			Int("status", resp.StatusCode).
			Str("endpoint", endpoint).
			Str("body", string(raw)).
			Msg("push gateway rejected broadcast")

		return &GatewayError{StatusCode: resp.StatusCode}
	}

	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}
