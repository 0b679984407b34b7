package social

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPPoster_Success(t *testing.T) {
	var got statusPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id": 1}`))
	}))
	defer server.Close()

	poster := NewHTTPPoster(server.URL, "secret", time.Second)
	require.NoError(t, poster.Post(context.Background(), "Completed a 5K run!"))
	assert.Equal(t, "Completed a 5K run!", got.Status)
}

func TestHTTPPoster_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"errors":[{"message":"Forbidden"}]}`))
	}))
	defer server.Close()

	err := NewHTTPPoster(server.URL, "bad", time.Second).Post(context.Background(), "hello")

	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, http.StatusForbidden, rejected.StatusCode)
	assert.Contains(t, rejected.Body, "Forbidden")
}

func TestHTTPPoster_CreatedIsNotSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	err := NewHTTPPoster(server.URL, "t", time.Second).Post(context.Background(), "hello")
	var rejected *RejectedError
	assert.True(t, errors.As(err, &rejected))
}

func TestHTTPPoster_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := NewHTTPPoster(url, "t", time.Second).Post(context.Background(), "hello")
	require.Error(t, err)
	var rejected *RejectedError
	assert.False(t, errors.As(err, &rejected))
}
