package paymentgateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/alimikegami/point-of-sales/payment-service/config"
	"github.com/alimikegami/point-of-sales/payment-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/payment-service/pkg/httpclient"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

const (
	checkoutAPIVersion = "v71"
	environmentLive    = "LIVE"
)

type AdyenClient struct {
	httpClient *httpclient.Client
	cb         *gobreaker.CircuitBreaker[[]byte]
	apiKey     string
	baseURL    string
}

func CreateAdyenClient(config *config.Config, httpClient *httpclient.Client, cb *gobreaker.CircuitBreaker[[]byte]) *AdyenClient {
	return &AdyenClient{
		httpClient: httpClient,
		cb:         cb,
		apiKey:     config.AdyenConfig.APIKey,
		baseURL:    CheckoutBaseURL(config.AdyenConfig.Environment, config.AdyenConfig.LiveURLPrefix),
	}
}

// CheckoutBaseURL returns the Checkout API endpoint. Live endpoints are
// specific to the merchant and need the prefix from the customer area.
func CheckoutBaseURL(environment, liveURLPrefix string) string {
	if strings.EqualFold(environment, environmentLive) {
		return fmt.Sprintf("https://%s-checkout-live.adyenpayments.com/checkout/%s", liveURLPrefix, checkoutAPIVersion)
	}

	return fmt.Sprintf("https://checkout-test.adyen.com/%s", checkoutAPIVersion)
}

// PaymentsDetails submits the details the shopper returned with after a
// redirect or a session and returns the provider's JSON response untouched.
func (c *AdyenClient) PaymentsDetails(ctx context.Context, details map[string]string) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]interface{}{"details": details})
	if err != nil {
		return nil, fmt.Errorf("marshalling payment details request: %w", err)
	}

	return c.post(ctx, "/payments/details", body)
}

func (c *AdyenClient) post(ctx context.Context, path string, body []byte) (json.RawMessage, error) {
	respBody, err := c.cb.Execute(func() ([]byte, error) {
		resp, err := c.httpClient.SendRequest(ctx, httpclient.HttpRequest{
			URL:    c.baseURL + path,
			Method: http.MethodPost,
			Body:   body,
			Headers: map[string]string{
				"Content-Type": "application/json",
				"X-API-Key":    c.apiKey,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrBadGateway, err)
		}

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return nil, fmt.Errorf("%w: %s returned status %d: %s", errs.ErrBadGateway, path, resp.StatusCode, string(resp.Body))
		}

		return resp.Body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %w", errs.ErrServiceUnavailable, err)
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "AdyenClient").Str("path", path).Msg("")
		return nil, err
	}

	return json.RawMessage(respBody), nil
}
