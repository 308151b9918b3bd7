package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"BOOKING_YEAR", "BOOKING_MONTH", "BOOKING_DAYS", "BOOKING_SLOTS", "SESSION_TTL", "REDIS_ADDR"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2025, cfg.BookingYear)
	assert.Equal(t, time.September, cfg.BookingMonth)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, cfg.BookingDays)
	assert.Len(t, cfg.BookingSlots, 13)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BOOKING_MONTH", "10")
	t.Setenv("BOOKING_DAYS", "6, 7")
	t.Setenv("SESSION_TTL", "5m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.October, cfg.BookingMonth)
	assert.Equal(t, []int{6, 7}, cfg.BookingDays)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("BOOKING_MONTH", "13")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("BOOKING_MONTH", "9")
	t.Setenv("BOOKING_DAYS", "1,x")
	_, err = Load()
	assert.Error(t, err)
}
