package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robertarktes/visa-appointments/internal/adapters/notify"
	"github.com/robertarktes/visa-appointments/internal/adapters/rabbit"
	"github.com/robertarktes/visa-appointments/internal/config"
	"github.com/robertarktes/visa-appointments/internal/observability"
	"github.com/robertarktes/visa-appointments/internal/relay"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.RabbitURL == "" || cfg.NotificationURL == "" {
		log.Fatalf("RABBIT_URL and NOTIFICATION_URL are required")
	}

	shutdownOtel, err := observability.SetupOTel(context.Background(), cfg, "visa-confirmation-relay")
	if err != nil {
		log.Fatalf("failed to setup otel: %v", err)
	}
	defer shutdownOtel()

	logger := observability.NewLoggerWithLevel(cfg.LogLevel)

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer conn.Close()
	consumer, err := rabbit.NewConsumer(conn, cfg.RelayQueue)
	if err != nil {
		log.Fatalf("failed to create consumer: %v", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deliveries, err := consumer.Consume(ctx)
	if err != nil {
		log.Fatalf("failed to consume %s: %v", cfg.RelayQueue, err)
	}

	client := notify.NewClient(cfg.NotificationURL, cfg.NotificationAPIKey, cfg.NotificationTimeout, logger)
	if err := relay.New(client, logger).Run(ctx, deliveries); err != nil {
		logger.Error("relay stopped: ", err)
		os.Exit(1)
	}
	logger.Info("Shutdown confirmation relay")
}
