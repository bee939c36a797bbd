package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/alimikegami/point-of-sales/payment-service/internal/dto"
	"github.com/alimikegami/point-of-sales/payment-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/payment-service/pkg/httpclient"
	"github.com/rs/zerolog/log"
)

// Hosts the checkout component loads its resources from.
var allowedProxyHosts = map[string]struct{}{
	"checkoutshopper-live.adyen.com":    {},
	"checkoutshopper-test.adyen.com":    {},
	"checkoutshopper-live-us.adyen.com": {},
	"checkoutshopper-test-us.adyen.com": {},
}

type PaymentServiceImpl struct {
	gateway PaymentGateway
	fetcher AssetFetcher
}

func CreatePaymentService(gateway PaymentGateway, fetcher AssetFetcher) PaymentService {
	return &PaymentServiceImpl{
		gateway: gateway,
		fetcher: fetcher,
	}
}

func (s *PaymentServiceImpl) GetPaymentDetails(ctx context.Context, req dto.PaymentDetailsRequest) (resp json.RawMessage, err error) {
	details := make(map[string]string, 1)
	switch {
	case req.RedirectResult != "":
		details["redirectResult"] = req.RedirectResult
	case req.SessionID != "":
		details["sessionId"] = req.SessionID
	default:
		return nil, errs.ErrMissingPaymentDetails
	}

	resp, err = s.gateway.PaymentsDetails(ctx, details)
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Str("component", "GetPaymentDetails").Msg("payment details retrieved")

	return resp, nil
}

func (s *PaymentServiceImpl) ProxyAsset(ctx context.Context, rawURL string) (resp httpclient.HttpResponse, err error) {
	if rawURL == "" {
		return resp, errs.ErrMissingURL
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil || parsedURL.Scheme != "https" || parsedURL.Host == "" {
		return resp, errs.ErrInvalidURL
	}

	if _, ok := allowedProxyHosts[parsedURL.Host]; !ok {
		log.Ctx(ctx).Warn().Str("component", "ProxyAsset").Str("host", parsedURL.Host).Msg("proxy request to disallowed host")
		return resp, errs.ErrInvalidHost
	}

	resp, err = s.fetcher.SendRequest(ctx, httpclient.HttpRequest{
		URL:    parsedURL.String(),
		Method: http.MethodGet,
	})
	if err != nil {
		return resp, fmt.Errorf("%w: %w", errs.ErrBadGateway, err)
	}

	return resp, nil
}
