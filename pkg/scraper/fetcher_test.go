package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	return NewClient(ClientConfig{
		Timeout:        5 * time.Second,
		RequestsPerMin: 6000,
		RetryDelay:     time.Millisecond,
		UserAgents:     []string{"agent-a", "agent-b"},
	})
}

func TestFetchParsesDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h1>Mohamed Salah</h1></body></html>`))
	}))
	defer server.Close()

	doc, err := testClient().Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Mohamed Salah", doc.Find("h1").Text())
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`<html><body><h1>ok</h1></body></html>`))
	}))
	defer server.Close()

	doc, err := testClient().Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", doc.Find("h1").Text())
	assert.Equal(t, int64(3), calls.Load())
}

func TestFetchRetriesThrottling(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`<html><body>ok</body></html>`))
	}))
	defer server.Close()

	_, err := testClient().Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestFetchDoesNotRetryNotFound(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := testClient().Fetch(context.Background(), server.URL)
	assert.Error(t, err)
	assert.Equal(t, int64(1), calls.Load())
}

func TestFetchRotatesUserAgents(t *testing.T) {
	var agents []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents = append(agents, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`<html></html>`))
	}))
	defer server.Close()

	client := testClient()
	for i := 0; i < 3; i++ {
		_, err := client.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"agent-a", "agent-b", "agent-a"}, agents)
}

func TestFetchHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient().Fetch(ctx, "http://127.0.0.1:0/")
	assert.Error(t, err)
}
