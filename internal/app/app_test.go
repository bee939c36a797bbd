package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/alimikegami/point-of-sales/payment-service/config"
	"github.com/alimikegami/point-of-sales/payment-service/internal/domain"
	"github.com/alimikegami/point-of-sales/payment-service/internal/dto"
	"github.com/alimikegami/point-of-sales/payment-service/internal/service"
	"github.com/alimikegami/point-of-sales/payment-service/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
)

const (
	acceptedBody = `{"notificationResponse":"[accepted]"}`

	validAuthorization = "Basic YWR5ZW46czNjcmV0"

	// Signed with "testkey".
	signedNotification = `{
		"live": "false",
		"notificationItems": [
			{"NotificationRequestItem": {
				"pspReference": "PSP1",
				"merchantAccountCode": "MerchAcct",
				"merchantReference": "Order1",
				"amount": {"value": 1000, "currency": "USD"},
				"eventCode": "AUTHORISATION",
				"success": "true",
				"additionalData": {"hmacSignature": "C7nTjbUEC40iOPXTjMnv4BoEqEEBJuZaWPD/8EdUML0="}
			}},
			{"NotificationRequestItem": {
				"pspReference": "PSP2",
				"merchantAccountCode": "MerchAcct",
				"merchantReference": "Order2",
				"amount": {"value": 1000, "currency": "USD"},
				"eventCode": "AUTHORISATION",
				"success": "true",
				"additionalData": {"hmacSignature": "C7nTjbUEC40iOPXTjMnv4BoEqEEBJuZaWPD/8EdUML0="}
			}}
		]
	}`
)

type statusUpdate struct {
	TransactionNumber string
	Status            domain.PaymentStatus
}

type fakeOrderRepository struct {
	mu      sync.Mutex
	updates []statusUpdate
}

func (r *fakeOrderRepository) UpdateOrderPaymentStatus(ctx context.Context, transactionNumber string, status domain.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, statusUpdate{TransactionNumber: transactionNumber, Status: status})
	return nil
}

func (r *fakeOrderRepository) ReplayOrderPaymentStatus(ctx context.Context, transactionNumber string, status domain.PaymentStatus, failedAt int64) error {
	return r.UpdateOrderPaymentStatus(ctx, transactionNumber, status)
}

type fakeDeadLetterRepository struct{}

func (fakeDeadLetterRepository) AddDeadLetter(ctx context.Context, data domain.DeadLetter) error {
	return nil
}

func (fakeDeadLetterRepository) GetPendingDeadLetters(ctx context.Context, maxAttempts int, limit int) ([]domain.DeadLetter, error) {
	return nil, nil
}

func (fakeDeadLetterRepository) MarkDeadLetterResolved(ctx context.Context, id string, resolvedAt int64) error {
	return errs.ErrDeadLetterNotFound
}

func (fakeDeadLetterRepository) IncrementDeadLetterAttempt(ctx context.Context, id string, lastError string, updatedAt int64) error {
	return errs.ErrDeadLetterNotFound
}

type fakePublisher struct{}

func (fakePublisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	return nil
}

type panickingWebhookService struct{}

func (panickingWebhookService) ProcessNotifications(ctx context.Context, req dto.NotificationRequest) []service.ItemOutcome {
	panic("unexpected")
}

type AppTestSuite struct {
	suite.Suite
	orderRepo *fakeOrderRepository
	app       *App
	server    *echo.Echo
}

func (s *AppTestSuite) SetupTest() {
	s.orderRepo = &fakeOrderRepository{}

	conf := &config.Config{ServiceName: "payment-service"}
	conf.AdyenConfig.WebhookUsername = "adyen"
	conf.AdyenConfig.WebhookPassword = "s3cret"

	s.app = &App{
		Config:         conf,
		WebhookService: service.CreateWebhookService(s.orderRepo, fakeDeadLetterRepository{}, fakePublisher{}, service.CreateHMACSigner("testkey")),
		PaymentService: service.CreatePaymentService(nil, nil),
		Registerer:     prometheus.NewRegistry(),
	}
	s.server = s.app.NewServer()
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (s *AppTestSuite) notify(body string, authorization string, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/adyen", strings.NewReader(body))
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	s.server.ServeHTTP(rec, req)
	return rec
}

func (s *AppTestSuite) Test_SignedItemsDispatched() {
	rec := s.notify(signedNotification, validAuthorization, echo.MIMEApplicationJSON)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(acceptedBody, rec.Body.String())
	s.Equal([]statusUpdate{{TransactionNumber: "Order1", Status: domain.PaymentStatusPaid}}, s.orderRepo.updates)
}

func (s *AppTestSuite) Test_ContentTypeNotRequired() {
	rec := s.notify(signedNotification, validAuthorization, "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(acceptedBody, rec.Body.String())
	s.Len(s.orderRepo.updates, 1)
}

func (s *AppTestSuite) Test_Unauthorized() {
	type TestCase struct {
		Name          string
		Authorization string
	}

	testCases := []TestCase{
		{Name: "missing", Authorization: ""},
		{Name: "wrong credentials", Authorization: "Basic YWR5ZW46d3Jvbmc="},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			s.SetupTest()

			rec := s.notify(signedNotification, tc.Authorization, echo.MIMEApplicationJSON)

			s.Equal(http.StatusUnauthorized, rec.Code)
			s.Equal("Unauthorized", rec.Body.String())
			s.Empty(s.orderRepo.updates)
		})
	}
}

func (s *AppTestSuite) Test_MalformedBodyAccepted() {
	rec := s.notify(`not json`, validAuthorization, echo.MIMEApplicationJSON)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(acceptedBody, rec.Body.String())
	s.Empty(s.orderRepo.updates)
}

func (s *AppTestSuite) Test_UnknownEventAccepted() {
	body := `{"notificationItems":[{"NotificationRequestItem":{"pspReference":"PSP1","eventCode":"REPORT_AVAILABLE","success":"true"}}]}`

	rec := s.notify(body, validAuthorization, echo.MIMEApplicationJSON)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(acceptedBody, rec.Body.String())
	s.Empty(s.orderRepo.updates)
}

func (s *AppTestSuite) Test_PanickingServiceAccepted() {
	s.app.WebhookService = panickingWebhookService{}
	s.app.Registerer = prometheus.NewRegistry()
	s.server = s.app.NewServer()

	rec := s.notify(signedNotification, validAuthorization, echo.MIMEApplicationJSON)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(acceptedBody, rec.Body.String())
}

func (s *AppTestSuite) Test_Ping() {
	rec := httptest.NewRecorder()
	s.server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"success","message":"Hello, World!","data":null}`, rec.Body.String())
}

func (s *AppTestSuite) Test_ProxyRejectsForeignHost() {
	rec := httptest.NewRecorder()
	s.server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/payments/proxy?url=https://example.com/a.js", nil))

	s.Equal(http.StatusForbidden, rec.Code)
}
