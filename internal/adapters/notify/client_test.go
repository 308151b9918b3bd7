package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/robertarktes/visa-appointments/internal/adapters/notify"
	"github.com/robertarktes/visa-appointments/internal/confirmation"
	"github.com/robertarktes/visa-appointments/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var submission = confirmation.Submission{
	RecipientEmail: "maria@example.com",
	Subject:        confirmation.Subject,
	Body:           "<p>ok</p>",
	ReferenceCode:  "VFS123456ABC",
}

func TestClient_Submit(t *testing.T) {
	var got confirmation.Submission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"accepted":true}`))
	}))
	defer srv.Close()

	c := notify.NewClient(srv.URL, "secret", time.Second, observability.NewNopLogger())
	accepted, err := c.Submit(context.Background(), submission)
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.Equal(t, submission, got)
}

func TestClient_SubmitFailures(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantAccepted bool
		wantErr      error
	}{
		{name: "not accepted", status: http.StatusOK, body: `{"accepted":false}`},
		{name: "client error", status: http.StatusUnprocessableEntity, body: `{"error":"bad email"}`, wantErr: confirmation.ErrRejected},
		{name: "server error", status: http.StatusBadGateway, wantErr: confirmation.ErrTransport},
		{name: "garbage body", status: http.StatusOK, body: `nope`, wantErr: confirmation.ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := notify.NewClient(srv.URL, "secret", time.Second, observability.NewNopLogger())
			accepted, err := c.Submit(context.Background(), submission)
			assert.Equal(t, tt.wantAccepted, accepted)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestClient_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	c := notify.NewClient(srv.URL, "secret", time.Second, observability.NewNopLogger())
	_, err := c.Submit(context.Background(), submission)
	assert.True(t, errors.Is(err, notify.ErrInvalidResponse))
	assert.True(t, errors.Is(err, confirmation.ErrTransport))
}

func TestClient_BadURL(t *testing.T) {
	c := notify.NewClient("://no-scheme", "secret", time.Second, observability.NewNopLogger())
	_, err := c.Submit(context.Background(), submission)
	assert.True(t, errors.Is(err, notify.ErrInternal))
	assert.False(t, errors.Is(err, confirmation.ErrTransport))
}

func TestClient_NoAPIKey(t *testing.T) {
	c := notify.NewClient("http://127.0.0.1:1", "", time.Second, observability.NewNopLogger())
	_, err := c.Submit(context.Background(), submission)
	assert.True(t, errors.Is(err, confirmation.ErrUnavailable))
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := notify.NewClient(url, "secret", time.Second, observability.NewNopLogger())
	_, err := c.Submit(context.Background(), submission)
	assert.True(t, errors.Is(err, confirmation.ErrTransport))
}
