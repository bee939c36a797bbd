package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer     = http.StatusInternalServerError
	ErrStatusClient             = http.StatusBadRequest
	ErrStatusUnauthorized       = http.StatusUnauthorized
	ErrStatusForbidden          = http.StatusForbidden
	ErrStatusConflict           = http.StatusConflict
	ErrStatusNotFound           = http.StatusNotFound
	ErrStatusBadGateway         = http.StatusBadGateway
	ErrStatusServiceUnavailable = http.StatusServiceUnavailable
)

var (
	ErrInternalServer        = errors.New("Internal server error")
	ErrClient                = errors.New("Bad request")
	ErrUnauthorized          = errors.New("Unauthorized")
	ErrNotFound              = errors.New("Resource not found")
	ErrOrderNotFound         = errors.New("Order not found")
	ErrOrderStatusSuperseded = errors.New("Order status changed since the update failed")
	ErrMissingPaymentDetails = errors.New("Missing redirectResult or sessionId")
	ErrMissingURL            = errors.New("Missing URL parameter")
	ErrInvalidURL            = errors.New("Invalid URL parameter")
	ErrInvalidHost           = errors.New("Invalid host")
	ErrBadGateway            = errors.New("Payment provider request failed")
	ErrServiceUnavailable    = errors.New("Payment provider is temporarily unavailable")
	ErrMalformedNotification = errors.New("Malformed notification item")
	ErrMissingSignature      = errors.New("No HMAC signature found in notification")
	ErrInvalidSignature      = errors.New("Invalid HMAC signature")
	ErrEventPublishFailed    = errors.New("Failed to publish event")
	ErrDeadLetterNotFound    = errors.New("Dead letter not found")
)

// errorStatuses is walked in order, so an error wrapping several sentinels
// maps to the first one listed.
var errorStatuses = []struct {
	err        error
	statusCode int
}{
	{ErrInternalServer, ErrStatusInternalServer},
	{ErrClient, ErrStatusClient},
	{ErrUnauthorized, ErrStatusUnauthorized},
	{ErrNotFound, ErrStatusNotFound},
	{ErrOrderNotFound, ErrStatusNotFound},
	{ErrOrderStatusSuperseded, ErrStatusConflict},
	{ErrMissingPaymentDetails, ErrStatusClient},
	{ErrMissingURL, ErrStatusClient},
	{ErrInvalidURL, ErrStatusClient},
	{ErrInvalidHost, ErrStatusForbidden},
	{ErrServiceUnavailable, ErrStatusServiceUnavailable},
	{ErrBadGateway, ErrStatusBadGateway},
	{ErrMalformedNotification, ErrStatusClient},
	{ErrMissingSignature, ErrStatusUnauthorized},
	{ErrInvalidSignature, ErrStatusUnauthorized},
	{ErrEventPublishFailed, ErrStatusInternalServer},
	{ErrDeadLetterNotFound, ErrStatusNotFound},
}

// GetErrorStatusCode maps err, or the first sentinel it wraps, to an HTTP status.
func GetErrorStatusCode(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.statusCode
		}
	}

	return ErrStatusInternalServer
}
