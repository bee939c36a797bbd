package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alimikegami/point-of-sales/payment-service/config"
	"github.com/alimikegami/point-of-sales/payment-service/internal/controller"
	localmiddleware "github.com/alimikegami/point-of-sales/payment-service/internal/middleware"
	"github.com/alimikegami/point-of-sales/payment-service/internal/service"
	"github.com/alimikegami/point-of-sales/payment-service/pkg/response"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type App struct {
	Config         *config.Config
	WebhookService service.WebhookService
	PaymentService service.PaymentService
	Tracer         trace.Tracer
	// Registerer receives the HTTP metrics. Nil means the default registry.
	Registerer prometheus.Registerer
	Server     *echo.Echo

	metricsServer *echo.Echo
}

// NewServer assembles the HTTP server and its routes without starting it.
func (app *App) NewServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	tracer := app.Tracer
	if tracer == nil {
		tracer = otel.Tracer(app.Config.ServiceName)
	}

	e.Use(localmiddleware.Tracing(tracer, otel.GetTextMapPropagator()))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Registerer: app.Registerer,
	}))
	e.Use(localmiddleware.Logger)

	g := e.Group("/api/v1")

	webhookAuth := localmiddleware.WebhookBasicAuth(app.Config.AdyenConfig.WebhookUsername, app.Config.AdyenConfig.WebhookPassword)
	controller.CreateWebhookController(g, app.WebhookService, webhookAuth)
	controller.CreatePaymentController(g, app.PaymentService)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	app.Server = e

	return e
}

// Start serves metrics and the API until the API server is stopped.
func (app *App) Start() error {
	if app.Server == nil {
		app.NewServer()
	}

	app.metricsServer = echo.New()
	app.metricsServer.HideBanner = true
	app.metricsServer.GET("/metrics", echoprometheus.NewHandler())

	go func() {
		if err := app.metricsServer.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	log.Info().Str("port", app.Config.ServicePort).Msg("HTTP server started")

	if err := app.Server.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("starting HTTP server: %w", err)
	}

	return nil
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errMetrics error
	if app.metricsServer != nil {
		errMetrics = app.metricsServer.Shutdown(ctx)
	}

	return errors.Join(app.Server.Shutdown(ctx), errMetrics)
}
