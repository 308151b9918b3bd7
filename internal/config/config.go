package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr      string
	PublicBaseURL string
	PaymentLink   string

	BookingYear  int
	BookingMonth time.Month
	BookingDays  []int
	BookingSlots []string

	SessionTTL      time.Duration
	HandoffTTL      time.Duration
	DispatchTimeout time.Duration

	RedisAddr          string
	RateLimitPerMinute int
	RabbitURL          string
	RelayQueue         string
	MongoURI           string
	MongoDB            string

	NotificationURL     string
	NotificationAPIKey  string
	NotificationTimeout time.Duration

	OTLPEndpoint string
	LogLevel     string
}

const (
	defaultPaymentLink = "https://buy.stripe.com/9B65kDeuNfag6BV85D5wI00"
	defaultSlots       = "09:00,09:30,10:00,10:30,11:00,11:30,12:00,12:30,13:00,13:30,14:00,14:30,15:00"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:           getenv("HTTP_ADDR", ":8080"),
		PublicBaseURL:      getenv("PUBLIC_BASE_URL", "http://localhost:8080"),
		PaymentLink:        getenv("PAYMENT_LINK", defaultPaymentLink),
		BookingSlots:       splitList(getenv("BOOKING_SLOTS", defaultSlots)),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RabbitURL:          os.Getenv("RABBIT_URL"),
		RelayQueue:         getenv("RELAY_QUEUE", "visa.confirmations"),
		MongoURI:           os.Getenv("MONGO_URI"),
		MongoDB:            getenv("MONGO_DB", "visa"),
		NotificationURL:    os.Getenv("NOTIFICATION_URL"),
		NotificationAPIKey: os.Getenv("NOTIFICATION_API_KEY"),
		OTLPEndpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		LogLevel:           getenv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.BookingYear, err = atoi("BOOKING_YEAR", "2025"); err != nil {
		return nil, err
	}
	month, err := atoi("BOOKING_MONTH", "9")
	if err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, errors.Newf("config: BOOKING_MONTH out of range: %d", month)
	}
	cfg.BookingMonth = time.Month(month)

	if cfg.RateLimitPerMinute, err = atoi("RATE_LIMIT_PER_MINUTE", "120"); err != nil {
		return nil, err
	}

	for _, raw := range splitList(getenv("BOOKING_DAYS", "1,2,3,4,5")) {
		day, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "config: BOOKING_DAYS entry %q", raw)
		}
		cfg.BookingDays = append(cfg.BookingDays, day)
	}

	durations := []struct {
		dst *time.Duration
		key string
		def time.Duration
	}{
		{&cfg.SessionTTL, "SESSION_TTL", 30 * time.Minute},
		{&cfg.HandoffTTL, "HANDOFF_TTL", 24 * time.Hour},
		{&cfg.DispatchTimeout, "DISPATCH_TIMEOUT", 10 * time.Second},
		{&cfg.NotificationTimeout, "NOTIFICATION_TIMEOUT", 5 * time.Second},
	}
	for _, d := range durations {
		*d.dst, _ = time.ParseDuration(os.Getenv(d.key))
		if *d.dst <= 0 {
			*d.dst = d.def
		}
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func atoi(key, def string) (int, error) {
	n, err := strconv.Atoi(getenv(key, def))
	if err != nil {
		return 0, errors.Wrapf(err, "config: %s", key)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
