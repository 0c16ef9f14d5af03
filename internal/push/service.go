// Package push implements token registration and channel broadcasts through a GCM style gateway.
package push

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pushcast/pushcast/internal/db/controller/gcm"
	"github.com/pushcast/pushcast/internal/db/models"
)

// Registrations is the registration storage used by Service.
type Registrations interface {
	Register(ctx context.Context, channel models.Channel, token string) error
	Batches(ctx context.Context, channel models.Channel, size int, fn func(tokens []string) error) error
	Clear(ctx context.Context, channel models.Channel) (int64, error)
	Count(ctx context.Context, channel models.Channel) (int64, error)
}

// Service runs the register, clear and broadcast workflows.
type Service struct {
	settings      *SettingsStore
	registrations Registrations
	sender        Sender
	batchSize     int
}

// NewService wires a Service. A batchSize of zero sends each broadcast in a single request.
func NewService(settings *SettingsStore, registrations Registrations, sender Sender, batchSize int) *Service {
	return &Service{
		settings:      settings,
		registrations: registrations,
		sender:        sender,
		batchSize:     batchSize,
	}
}

// Settings returns the gateway settings store.
func (s *Service) Settings() *SettingsStore {
	return s.settings
}

// Register stores token on channel. An empty token is accepted and ignored
// whatever the endpoint. Otherwise a non empty endpoint must be the default gateway endpoint.
func (s *Service) Register(ctx context.Context, channel models.Channel, token, endpoint string) error {
	if token == "" {
		return nil
	}
	if endpoint != "" && endpoint != gcm.DefaultEndpoint {
		return ErrUnsupportedGateway
	}

	if err := s.registrations.Register(ctx, channel, token); err != nil {
		return err
	}
	registrationsTotal.WithLabelValues(channel.String()).Inc()

	log.Debug().Str("channel", channel.String()).Msg("registered device")

	return nil
}

// Clear removes every registration of channel.
func (s *Service) Clear(ctx context.Context, channel models.Channel) error {
	n, err := s.registrations.Clear(ctx, channel)
	if err != nil {
		return err
	}

	log.Info().Str("channel", channel.String()).Int64("deleted", n).Msg("cleared registrations")

	return nil
}

// Count returns the number of registrations on channel.
func (s *Service) Count(ctx context.Context, channel models.Channel) (int64, error) {
	return s.registrations.Count(ctx, channel)
}

// Broadcast sends payload to every token registered on channel.
// No request is made for an empty channel.
func (s *Service) Broadcast(ctx context.Context, channel models.Channel, payload string) error {
	cfg := s.settings.Get()
	recipients := 0
	logger := log.With().Str("broadcast_id", uuid.NewString()).Str("channel", channel.String()).Logger()

	err := s.registrations.Batches(ctx, channel, s.batchSize, func(tokens []string) error {
		recipients += len(tokens)
		logger.Debug().Int("tokens", len(tokens)).Msg("sending batch")
		return s.sender.Send(ctx, cfg.Endpoint, cfg.APIKey, tokens, payload)
	})
	if err == nil && recipients == 0 {
		err = ErrNoRecipients
	}

	var gwErr *GatewayError
	switch {
	case err == nil:
		broadcastsTotal.WithLabelValues(channel.String(), resultAccepted).Inc()
	case errors.Is(err, ErrNoRecipients):
		broadcastsTotal.WithLabelValues(channel.String(), resultNoRecipients).Inc()
	case errors.As(err, &gwErr):
		broadcastsTotal.WithLabelValues(channel.String(), resultGatewayError).Inc()
	default:
		broadcastsTotal.WithLabelValues(channel.String(), resultError).Inc()
	}
	if err != nil {
		logger.Warn().Err(err).Int("recipients", recipients).Msg("broadcast failed")
		return err
	}

	logger.Info().Int("recipients", recipients).Msg("broadcast accepted")

	return nil
}
