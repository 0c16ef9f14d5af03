package push

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when a non administrator calls an admin only operation.
	ErrUnauthorized = errors.New("not an administrator")

	// ErrForbidden is returned when the referer of a settings update does not match.
	ErrForbidden = errors.New("invalid referer")

	// ErrUnsupportedGateway is returned when a client registers against a gateway
	// other than the default endpoint.
	ErrUnsupportedGateway = errors.New("unsupported push gateway")

	// ErrNoRecipients is returned when a broadcast targets an empty channel.
	ErrNoRecipients = errors.New("no registered devices")

	// ErrNotConfigured is returned while sender id or api key are unset.
	ErrNotConfigured = errors.New("push gateway is not configured")
)

// GatewayError is returned when the push gateway answers with a status other than 200.
type GatewayError struct {
	StatusCode int
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("push gateway responded with status %d", e.StatusCode)
}
