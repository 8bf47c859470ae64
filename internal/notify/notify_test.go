package notify_test

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

	"github.com/offerwatch/offerwatch/internal/domain"
	"github.com/offerwatch/offerwatch/internal/match"
	"github.com/offerwatch/offerwatch/internal/notify"
)

func TestBuildMessage(t *testing.T) {
	market := domain.Market{ID: "10001", Name: "EDEKA Center Hauptstraße"}
	results := []match.Result{
		{Product: "Butter", Offer: domain.Offer{Title: "Markenbutter 250g"}},
		{Product: "Milch", Offer: domain.Offer{Title: "Vollmilch 1L"}},
	}

	title, body := notify.BuildMessage(market, results)
	assert.Equal(t, "Neue Angebote im EDEKA Center Hauptstraße!", title)
	assert.Equal(t, "- Markenbutter 250g\n- Vollmilch 1L\n", body)
}

func TestBuildMessage_NoResults(t *testing.T) {
	title, body := notify.BuildMessage(domain.Market{Name: "EDEKA Müller"}, nil)
	assert.Equal(t, "Neue Angebote im EDEKA Müller!", title)
	assert.Empty(t, body)
}

func TestWebhookNotifier_Notify(t *testing.T) {
	var got struct {
		Title string    `json:"title"`
		Body  string    `json:"body"`
		At    time.Time `json:"at"`
	}
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	n := notify.NewWebhookNotifier(server.URL, time.Second)
	err := n.Notify(context.Background(), "Neue Angebote im EDEKA!", "- Markenbutter 250g\n")
	require.NoError(t, err)

	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "Neue Angebote im EDEKA!", got.Title)
	assert.Equal(t, "- Markenbutter 250g\n", got.Body)
	assert.False(t, got.At.IsZero())
}

func TestWebhookNotifier_Notify_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	n := notify.NewWebhookNotifier(server.URL, time.Second)
	assert.Error(t, n.Notify(context.Background(), "t", "b"))
}

type recordingNotifier struct {
	calls int
	err   error
}

func (n *recordingNotifier) Notify(_ context.Context, _, _ string) error {
	n.calls++
	return n.err
}

func TestComposite_NotifiesAllEvenOnError(t *testing.T) {
	failing := &recordingNotifier{err: errors.New("webhook down")}
	ok := &recordingNotifier{}

	c := notify.NewComposite(failing, ok)
	err := c.Notify(context.Background(), "t", "b")

	assert.Error(t, err)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, ok.calls, "later notifiers still run after a failure")
}

func TestComposite_NoError(t *testing.T) {
	a, b := &recordingNotifier{}, &recordingNotifier{}
	c := notify.NewComposite(a, b)
	assert.NoError(t, c.Notify(context.Background(), "t", "b"))
}
