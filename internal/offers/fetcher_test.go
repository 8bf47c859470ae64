package offers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offerwatch/offerwatch/internal/offers"
)

func TestFetcher_Fetch(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer server.Close()

	fetcher := offers.NewFetcher(server.URL, time.Second)
	catalog, err := fetcher.Fetch(context.Background(), "10001")
	require.NoError(t, err)

	assert.Equal(t, "10001", catalog.MarketID)
	assert.Len(t, catalog.Offers, 2)
	assert.Equal(t, []string{"10001"}, gotQuery["marketId"])
	assert.Equal(t, []string{"89899"}, gotQuery["limit"])
}

func TestFetcher_Fetch_NonOKStatus(t *testing.T) {
	statuses := []int{
		http.StatusNotFound,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusServiceUnavailable,
	}

	for _, status := range statuses {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		fetcher := offers.NewFetcher(server.URL, time.Second)
		_, err := fetcher.Fetch(context.Background(), "10001")
		server.Close()

		require.Error(t, err, "status %d", status)
		assert.True(t, offers.IsNetworkError(err), "status %d should classify as network error, got %v", status, err)
	}
}

func TestFetcher_Fetch_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected": true}`))
	}))
	defer server.Close()

	fetcher := offers.NewFetcher(server.URL, time.Second)
	_, err := fetcher.Fetch(context.Background(), "10001")
	require.Error(t, err)
	assert.True(t, offers.IsParseError(err))
}

func TestFetcher_Fetch_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	fetcher := offers.NewFetcher(server.URL, time.Second)
	_, err := fetcher.Fetch(context.Background(), "10001")
	require.Error(t, err)
	assert.True(t, offers.IsNetworkError(err))
}

func TestFetcher_Fetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	fetcher := offers.NewFetcher(server.URL, 50*time.Millisecond)
	_, err := fetcher.Fetch(context.Background(), "10001")
	require.Error(t, err)
	assert.True(t, offers.IsNetworkError(err))
}
