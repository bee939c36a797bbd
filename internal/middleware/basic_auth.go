package middleware

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// WebhookBasicAuth guards the notification endpoint with the credentials
// configured for the provider. A failed check answers 401 in plain text and
// never reaches the handler. With no credentials configured every request is
// rejected.
func WebhookBasicAuth(username, password string) echo.MiddlewareFunc {
	expected := []byte("Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password)))
	configured := username != "" || password != ""

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := []byte(c.Request().Header.Get(echo.HeaderAuthorization))

			if !configured || subtle.ConstantTimeCompare(header, expected) != 1 {
				log.Ctx(c.Request().Context()).Warn().Str("component", "WebhookBasicAuth").Str("remote_ip", c.RealIP()).Msg("unauthorized webhook request")
				return c.String(http.StatusUnauthorized, "Unauthorized")
			}

			return next(c)
		}
	}
}
