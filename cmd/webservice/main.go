package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata"

	"github.com/alimikegami/point-of-sales/payment-service/config"
	"github.com/alimikegami/point-of-sales/payment-service/internal/app"
	"github.com/alimikegami/point-of-sales/payment-service/internal/handler"
	circuitbreaker "github.com/alimikegami/point-of-sales/payment-service/internal/infrastructure/circuit-breaker"
	"github.com/alimikegami/point-of-sales/payment-service/internal/infrastructure/database/postgres"
	"github.com/alimikegami/point-of-sales/payment-service/internal/infrastructure/message-queue/kafka"
	paymentgateway "github.com/alimikegami/point-of-sales/payment-service/internal/infrastructure/payment-gateway"
	"github.com/alimikegami/point-of-sales/payment-service/internal/infrastructure/tracing"
	"github.com/alimikegami/point-of-sales/payment-service/internal/repository"
	"github.com/alimikegami/point-of-sales/payment-service/internal/service"
	"github.com/alimikegami/point-of-sales/payment-service/pkg/httpclient"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger
	zerolog.DefaultContextLogger = &log.Logger

	config := config.CreateNewConfig()

	signer := service.CreateHMACSigner(config.AdyenConfig.HMACKey)
	if !signer.Enabled() {
		if config.AdyenConfig.HMACRequired {
			log.Fatal().Msg("ADYEN_HMAC_KEY is required but not configured")
		}
		log.Warn().Msg("ADYEN_HMAC_KEY not configured, webhook signatures will not be verified")
	}
	if config.AdyenConfig.WebhookUsername == "" && config.AdyenConfig.WebhookPassword == "" {
		log.Warn().Msg("webhook credentials not configured, every notification will be rejected")
	}

	db, err := postgres.GetDBInstance(config.PostgreSQLConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer db.Close()

	traceProvider, err := tracing.InitTracing(config)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracing")
	}

	defer func() {
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to shutdown tracing")
		}
	}()

	var publisher service.EventPublisher = kafka.DisabledPublisher{}
	if config.KafkaConfig.BrokerAddress != "" {
		kafkaProducer, err := kafka.CreateKafkaProducer(config)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to the message broker")
		}
		defer kafkaProducer.Close()

		asyncPublisher := kafka.CreateAsyncPublisher(kafka.CreatePublisher(kafkaProducer), kafka.DefaultQueueSize)
		defer func() {
			if err := asyncPublisher.Close(10 * time.Second); err != nil {
				log.Error().Err(err).Msg("Failed to flush queued events")
			}
		}()

		publisher = asyncPublisher
	} else {
		log.Warn().Msg("BROKER_ADDRESS not configured, order status events will not be published")
	}

	httpClient := httpclient.CreateHttpClient(nil)
	cb := circuitbreaker.CreateCircuitBreaker(config.ServiceName)
	adyenClient := paymentgateway.CreateAdyenClient(config, httpClient, cb)

	orderRepo := repository.CreateOrderRepository(db)
	deadLetterRepo := repository.CreateDeadLetterRepository(db)

	webhookSvc := service.CreateWebhookService(orderRepo, deadLetterRepo, publisher, signer)
	paymentSvc := service.CreatePaymentService(adyenClient, httpClient)
	replaySvc := service.CreateReplayService(orderRepo, deadLetterRepo, publisher, config.DeadLetterConfig)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}

	_, err = s.NewJob(
		gocron.DurationJob(
			config.DeadLetterConfig.ReplayInterval,
		),
		gocron.NewTask(
			replaySvc.ReplayDeadLetters,
			ctx,
		),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule dead letter replay")
	}

	s.Start()

	healthHandler := handler.CreateHealthHandler(config.ServiceName)
	srv := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthHandler.Register(srv)

	go func() {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%s", config.GRPCPort))
		if err != nil {
			log.Error().Err(err).Msgf("Failed to listen on port %s", config.GRPCPort)
			return
		}
		log.Info().Msgf("gRPC server started on port %s", config.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			log.Error().Err(err).Msg("Failed to serve gRPC server")
		}
	}()

	server := app.App{
		Config:         config,
		WebhookService: webhookSvc,
		PaymentService: paymentSvc,
		Tracer:         traceProvider.Tracer(config.ServiceName),
	}
	server.NewServer()

	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
			stop()
		}
	}()

	healthHandler.SetServing(true)

	<-ctx.Done()
	log.Info().Msg("shutting down")

	healthHandler.SetServing(false)

	if err := server.StopServer(); err != nil {
		log.Error().Err(err).Msg("Failed to stop HTTP server")
	}

	if err := s.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Failed to stop scheduler")
	}

	srv.GracefulStop()
}
