package idempotency_test

import (
	"context"
	"testing"
	"time"

	redisadapter "github.com/robertarktes/visa-appointments/internal/adapters/redis"
	"github.com/robertarktes/visa-appointments/internal/idempotency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) Lookup(ctx context.Context, key string) (*redisadapter.StoredResponse, error) {
	args := m.Called(ctx, key)
	resp, _ := args.Get(0).(*redisadapter.StoredResponse)
	return resp, args.Error(1)
}

func (m *mockBackend) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *mockBackend) Release(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockBackend) Save(ctx context.Context, key string, resp redisadapter.StoredResponse, ttl time.Duration) error {
	return m.Called(ctx, key, resp, ttl).Error(0)
}

func TestIdempotency_NilOrNoKeyIsPassThrough(t *testing.T) {
	ctx := context.Background()
	var none *idempotency.Idempotency

	got, err := none.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
	ok, err := none.Begin(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, none.Set(ctx, "k", idempotency.Response{}))

	b := new(mockBackend)
	i := idempotency.NewIdempotency(b, time.Hour)
	got, err = i.Get(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, got)
	b.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
}

func TestIdempotency_RoundTrip(t *testing.T) {
	ctx := context.Background()
	b := new(mockBackend)
	i := idempotency.NewIdempotency(b, time.Hour)

	b.On("Lookup", ctx, "s1:k").Return(&redisadapter.StoredResponse{Status: 200, Body: []byte("{}")}, nil)
	got, err := i.Get(ctx, "s1:k")
	require.NoError(t, err)
	assert.Equal(t, &idempotency.Response{Status: 200, Result: []byte("{}")}, got)

	b.On("Reserve", ctx, "s1:k", time.Minute).Return(false, nil)
	ok, err := i.Begin(ctx, "s1:k")
	require.NoError(t, err)
	assert.False(t, ok)

	b.On("Save", ctx, "s1:k", redisadapter.StoredResponse{Status: 200, Body: []byte("{}")}, time.Hour).Return(nil)
	b.On("Release", ctx, "s1:k").Return(nil)
	require.NoError(t, i.Set(ctx, "s1:k", idempotency.Response{Status: 200, Result: []byte("{}")}))

	b.AssertExpectations(t)
}
