package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domai "github.com/bryanwahyu/clausecheck/internal/domain/ai"
)

func TestComplete_MissingKeyFailsBeforeNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("", "gpt-4o-mini", srv.URL+"/v1")
	_, err := c.Complete(context.Background(), "prompt")

	assert.ErrorIs(t, err, domai.ErrMissingAPIKey)
	assert.False(t, called)
}

func TestComplete_ReturnsMessageContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", "gpt-4o-mini", srv.URL+"/v1")
	out, err := c.Complete(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
}

func TestComplete_EmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":""}}]}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", "gpt-4o-mini", srv.URL+"/v1")
	_, err := c.Complete(context.Background(), "prompt")

	assert.ErrorIs(t, err, domai.ErrEmptyResponse)
}

func TestComplete_QuotaExceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"insufficient_quota","type":"insufficient_quota"}}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", "gpt-4o-mini", srv.URL+"/v1")
	_, err := c.Complete(context.Background(), "prompt")

	assert.ErrorIs(t, err, domai.ErrQuotaExceeded)
}

func TestComplete_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", "gpt-4o-mini", srv.URL+"/v1")
	_, err := c.Complete(context.Background(), "prompt")

	assert.ErrorIs(t, err, domai.ErrUpstream)
}
