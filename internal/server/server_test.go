package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinWheel_Go/internal/domain"
	"github.com/osse101/SpinWheel_Go/internal/live"
	"github.com/osse101/SpinWheel_Go/internal/wheel"
)

const testAPIKey = "test-key"

type fakePool struct{ err error }

func (p fakePool) Ping(ctx context.Context) error { return p.err }
func (p fakePool) Close()                         {}

// fakeWheelService implements only what the routing tests reach; anything else panics
type fakeWheelService struct {
	wheel.Service
	wheels map[uuid.UUID]*domain.Wheel
}

func (f *fakeWheelService) GetWheel(ctx context.Context, id uuid.UUID) (*domain.Wheel, error) {
	w, ok := f.wheels[id]
	if !ok {
		return nil, domain.ErrWheelNotFound
	}
	return w, nil
}

func (f *fakeWheelService) ListWheels(ctx context.Context) ([]domain.Wheel, error) {
	out := make([]domain.Wheel, 0, len(f.wheels))
	for _, w := range f.wheels {
		out = append(out, *w)
	}
	return out, nil
}

func (f *fakeWheelService) GetCacheStats() wheel.CacheStats {
	return wheel.CacheStats{Hits: 7}
}

func newTestRouter(t *testing.T) (http.Handler, *domain.Wheel) {
	t.Helper()
	w := &domain.Wheel{
		ID:   uuid.New(),
		Name: "Raffle",
		Participants: []domain.Participant{
			{ID: uuid.New(), Name: "alice", Weight: 1, OriginalWeight: 1},
		},
		Settings: domain.WheelSettings{AllowRigging: true, DefaultWeight: 1},
	}
	w.Rigging = &domain.Rigging{TargetParticipantID: w.Participants[0].ID, Hidden: true}

	svc := &fakeWheelService{wheels: map[uuid.UUID]*domain.Wheel{w.ID: w}}
	hub := live.NewHub()
	return NewRouter(testAPIKey, nil, fakePool{}, svc, hub), w
}

func do(h http.Handler, method, path string, withKey bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "127.0.0.1:9999"
	if withKey {
		req.Header.Set(HeaderAPIKey, testAPIKey)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicRoutes(t *testing.T) {
	h, _ := newTestRouter(t)

	for _, path := range []string{"/healthz", "/readyz", "/version"} {
		t.Run(path, func(t *testing.T) {
			rec := do(h, http.MethodGet, path, false)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
		})
	}
}

func TestRouter_RequiresAPIKey(t *testing.T) {
	h, _ := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, "/api/v1/wheels", false).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/v1/wheels", true).Code)
}

func TestRouter_GetWheelHidesHiddenRig(t *testing.T) {
	h, w := newTestRouter(t)

	rec := do(h, http.MethodGet, "/api/v1/wheels/"+w.ID.String(), true)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, w.ID.String(), body["id"])
	assert.NotContains(t, body, "rigging")
}

func TestRouter_UnknownWheel(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(h, http.MethodGet, "/api/v1/wheels/"+uuid.NewString(), true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_AdminCacheStats(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(h, http.MethodGet, "/api/v1/admin/cache/stats", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats wheel.CacheStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, uint64(7), stats.Hits)
}

func TestRouter_LiveRoutesAcceptQueryKey(t *testing.T) {
	h, _ := newTestRouter(t)

	// An unparseable wheel ID is rejected by the feed handler itself, which proves auth passed
	rec := do(h, http.MethodGet, "/api/v1/wheels/not-a-uuid/events?"+QueryParamAPIKey+"="+testAPIKey, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodGet, "/api/v1/wheels/not-a-uuid/events", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	h, w := newTestRouter(t)

	rec := do(h, http.MethodPut, "/api/v1/wheels/"+w.ID.String()+"/spin", true)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
