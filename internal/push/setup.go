package push

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/pushcast/pushcast/internal/db/controller/gcm"
)

// ErrInvalidSettings is returned when submitted gateway settings fail validation.
var ErrInvalidSettings = errors.New("invalid gateway settings")

var validate = validator.New() //nolint:gochecknoglobals

type (
	// SetupRequest is one visit of the setup page.
	SetupRequest struct {
		// URL is the full URL the client requested, query string included.
		URL          string
		CanonicalURL string
		Referer      string
		IsAdmin      bool
		// Form is nil unless endpoint, sender id and api key were all submitted.
		Form *gcm.Settings
	}

	// SetupResult tells the caller what to render.
	SetupResult struct {
		// Redirect is set when the page must be reloaded from the canonical URL.
		Redirect string
		Updated  bool
		Settings gcm.Settings
	}
)

// Configure runs the admin setup workflow against the store.
func (s *SettingsStore) Configure(req SetupRequest) (SetupResult, error) {
	if !req.IsAdmin {
		return SetupResult{}, ErrUnauthorized
	}

	if req.URL != req.CanonicalURL {
		return SetupResult{Redirect: req.CanonicalURL}, nil
	}

	if req.Form == nil {
		return SetupResult{Settings: s.Get()}, nil
	}

	if req.Referer != req.CanonicalURL {
		log.Warn().Str("referer", req.Referer).Msg("setup submission with foreign referer")
		return SetupResult{}, ErrForbidden
	}

	if err := validate.Struct(req.Form); err != nil {
		return SetupResult{Settings: *req.Form}, errors.Wrap(ErrInvalidSettings, err.Error())
	}

	if err := s.Put(*req.Form); err != nil {
		return SetupResult{}, err
	}

	log.Info().Str("endpoint", req.Form.Endpoint).Str("sender_id", req.Form.SenderID).Msg("gateway settings updated")

	return SetupResult{Updated: true, Settings: *req.Form}, nil
}
