package idempotency

import (
	"context"
	"time"

	redisadapter "github.com/robertarktes/visa-appointments/internal/adapters/redis"
)

// Backend is the storage behind Idempotency.
type Backend interface {
	Lookup(ctx context.Context, key string) (*redisadapter.StoredResponse, error)
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
	Save(ctx context.Context, key string, resp redisadapter.StoredResponse, ttl time.Duration) error
}

type Idempotency struct {
	backend Backend
	ttl     time.Duration
}

func NewIdempotency(backend Backend, ttl time.Duration) *Idempotency {
	return &Idempotency{backend: backend, ttl: ttl}
}

type Response struct {
	Status int
	Result []byte
}

// Get returns the stored response for key, or nil when none was saved.
func (i *Idempotency) Get(ctx context.Context, key string) (*Response, error) {
	if i == nil || key == "" {
		return nil, nil
	}
	stored, err := i.backend.Lookup(ctx, key)
	if err != nil || stored == nil {
		return nil, err
	}
	return &Response{Status: stored.Status, Result: stored.Body}, nil
}

// Begin claims key. ok is false while another request with the same key runs.
func (i *Idempotency) Begin(ctx context.Context, key string) (ok bool, err error) {
	if i == nil || key == "" {
		return true, nil
	}
	return i.backend.Reserve(ctx, key, time.Minute)
}

func (i *Idempotency) Set(ctx context.Context, key string, resp Response) error {
	if i == nil || key == "" {
		return nil
	}
	defer i.backend.Release(ctx, key)
	return i.backend.Save(ctx, key, redisadapter.StoredResponse{Status: resp.Status, Body: resp.Result}, i.ttl)
}

// Abort drops the claim without saving a response, so the client may retry.
func (i *Idempotency) Abort(ctx context.Context, key string) {
	if i == nil || key == "" {
		return
	}
	i.backend.Release(ctx, key)
}
