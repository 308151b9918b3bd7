package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	redisclient "github.com/redis/go-redis/v9"
	mongoadapter "github.com/robertarktes/visa-appointments/internal/adapters/mongo"
	"github.com/robertarktes/visa-appointments/internal/adapters/notify"
	"github.com/robertarktes/visa-appointments/internal/adapters/rabbit"
	redisadapter "github.com/robertarktes/visa-appointments/internal/adapters/redis"
	"github.com/robertarktes/visa-appointments/internal/config"
	"github.com/robertarktes/visa-appointments/internal/confirmation"
	"github.com/robertarktes/visa-appointments/internal/finalize"
	"github.com/robertarktes/visa-appointments/internal/handoff"
	httphandler "github.com/robertarktes/visa-appointments/internal/http"
	"github.com/robertarktes/visa-appointments/internal/idempotency"
	"github.com/robertarktes/visa-appointments/internal/observability"
	"github.com/robertarktes/visa-appointments/internal/rateLimit"
	"github.com/robertarktes/visa-appointments/internal/session"
	"github.com/robertarktes/visa-appointments/internal/slots"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	shutdown, err := observability.SetupOTel(context.Background(), cfg, "visa-api")
	if err != nil {
		log.Fatalf("failed to setup otel: %v", err)
	}
	defer shutdown()

	logger := observability.NewLoggerWithLevel(cfg.LogLevel)

	calendar, err := slots.NewCalendar(cfg.BookingYear, cfg.BookingMonth, cfg.BookingDays, cfg.BookingSlots)
	if err != nil {
		log.Fatalf("invalid booking calendar: %v", err)
	}
	finalizer, err := finalize.NewFinalizer(cfg.PaymentLink, cfg.PublicBaseURL, logger)
	if err != nil {
		log.Fatalf("failed to create finalizer: %v", err)
	}

	var (
		store  handoff.Store = handoff.NewMemoryStore()
		idemp  *idempotency.Idempotency
		rl     httphandler.Limiter
		pinger []httphandler.Pinger
	)
	if cfg.RedisAddr != "" {
		redisClient := redisclient.NewClient(&redisclient.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		store = redisadapter.NewHandoffStore(redisClient, cfg.HandoffTTL)
		idemp = idempotency.NewIdempotency(redisadapter.NewIdempotency(redisClient), time.Hour)
		rl = rateLimit.NewRateLimiter(redisClient, cfg.RateLimitPerMinute, time.Minute)
		pinger = append(pinger, func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })
	} else {
		logger.Warn("REDIS_ADDR not set, bookings awaiting payment are kept in memory")
		rl = rateLimit.NewLocalLimiter(cfg.RateLimitPerMinute)
	}

	var notifier confirmation.Notifier
	switch {
	case cfg.RabbitURL != "":
		rabbitConn, err := amqp.Dial(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer rabbitConn.Close()
		rabbitPub, err := rabbit.NewPublisher(rabbitConn, cfg.RelayQueue)
		if err != nil {
			log.Fatalf("failed to create publisher: %v", err)
		}
		notifier = rabbit.NewNotifier(rabbitPub)
		logger.Info("confirmations queued on ", cfg.RelayQueue)
	case cfg.NotificationURL != "":
		notifier = notify.NewClient(cfg.NotificationURL, cfg.NotificationAPIKey, cfg.NotificationTimeout, logger)
		logger.Info("confirmations sent to ", cfg.NotificationURL)
	default:
		logger.Warn("no notification service configured, confirmations will be skipped")
	}

	var auditor *mongoadapter.AuditLogger
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatalf("failed to connect to mongo: %v", err)
		}
		defer mongoClient.Disconnect(context.Background())
		auditor = mongoadapter.NewAuditLogger(mongoClient.Database(cfg.MongoDB), logger)
		pinger = append(pinger, func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) })
	}

	dispatcher := confirmation.NewDispatcher(notifier, cfg.DispatchTimeout, logger)
	deps := httphandler.Deps{
		Calendar:    calendar,
		Sessions:    session.NewRegistry(calendar, cfg.SessionTTL),
		Finalizer:   finalizer,
		Handoff:     store,
		Idempotency: idemp,
		Ready:       pinger,
	}
	// A typed nil auditor must not reach the interfaces.
	if auditor != nil {
		deps.Audit = auditor
		deps.Confirmation = confirmation.NewService(store, dispatcher, auditor, logger)
	} else {
		deps.Confirmation = confirmation.NewService(store, dispatcher, nil, logger)
	}
	handlers := httphandler.NewHandlers(deps)

	r := httphandler.SetupRouter(handlers, logger, rl)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening on ", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return deps.Sessions.Run(gctx, time.Minute, logger)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown Server ...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped: ", err)
		os.Exit(1)
	}
	logger.Info("Server exiting")
}
