package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offerwatch/offerwatch/internal/api"
	"github.com/offerwatch/offerwatch/internal/domain"
	"github.com/offerwatch/offerwatch/internal/logger"
)

type stubScheduleReader struct {
	state *domain.ScheduleState
	err   error
}

func (s *stubScheduleReader) Status(_ context.Context) (*domain.ScheduleState, error) {
	return s.state, s.err
}

type stubCatalogReader struct {
	catalog *domain.Catalog
	err     error
}

func (s *stubCatalogReader) Get(_ context.Context, _ string) (*domain.Catalog, error) {
	return s.catalog, s.err
}

func serve(t *testing.T, schedule api.ScheduleReader, catalogs api.CatalogReader, path string) (int, map[string]any) {
	t.Helper()

	handler := api.NewStatusHandler(schedule, catalogs, logger.NewNoOp())
	router := api.NewRouter(handler, logger.NewNoOp())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	router.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealth(t *testing.T) {
	code, body := serve(t, &stubScheduleReader{}, &stubCatalogReader{}, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestGetSchedule_Armed(t *testing.T) {
	next := time.Date(2026, time.January, 12, 9, 0, 0, 0, time.UTC)
	schedule := &stubScheduleReader{state: &domain.ScheduleState{
		NextFireAt:  next,
		LastOutcome: domain.OutcomeSuccess,
	}}

	code, body := serve(t, schedule, &stubCatalogReader{}, "/api/v1/schedule")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["armed"])
	assert.Equal(t, "success", body["last_outcome"])
}

func TestGetSchedule_NotArmed(t *testing.T) {
	schedule := &stubScheduleReader{err: domain.ErrScheduleNotArmed}

	code, body := serve(t, schedule, &stubCatalogReader{}, "/api/v1/schedule")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["armed"])
}

func TestGetSchedule_StorageFailure(t *testing.T) {
	schedule := &stubScheduleReader{err: errors.New("connection refused")}

	code, _ := serve(t, schedule, &stubCatalogReader{}, "/api/v1/schedule")
	assert.Equal(t, http.StatusInternalServerError, code)
}

func TestGetCatalog(t *testing.T) {
	catalogs := &stubCatalogReader{catalog: &domain.Catalog{
		MarketID:   "10001",
		ValidFrom:  time.Now().Add(-time.Hour),
		ValidUntil: time.Now().Add(24 * time.Hour),
		Offers:     []domain.Offer{{Title: "Markenbutter 250g"}, {Title: "Vollmilch 1L"}},
	}}

	code, body := serve(t, &stubScheduleReader{}, catalogs, "/api/v1/catalogs/10001")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "10001", body["market_id"])
	assert.Equal(t, float64(2), body["offer_count"])
	assert.Equal(t, true, body["valid_now"])
}

func TestGetCatalog_NotCached(t *testing.T) {
	catalogs := &stubCatalogReader{err: fmt.Errorf("market 10001: %w", domain.ErrCatalogNotCached)}

	code, _ := serve(t, &stubScheduleReader{}, catalogs, "/api/v1/catalogs/10001")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGetCatalog_CacheUnavailable(t *testing.T) {
	catalogs := &stubCatalogReader{err: fmt.Errorf("read: %w", domain.ErrCacheUnavailable)}

	code, _ := serve(t, &stubScheduleReader{}, catalogs, "/api/v1/catalogs/10001")
	assert.Equal(t, http.StatusInternalServerError, code)
}
