package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/ttv-club/matchday/app/eventbus"
	archiveservice "github.com/ttv-club/matchday/app/modules/archive/application"
	archivedb "github.com/ttv-club/matchday/app/modules/archive/infrastructure/repositories"
	rosterservice "github.com/ttv-club/matchday/app/modules/roster/application"
	rosterdb "github.com/ttv-club/matchday/app/modules/roster/infrastructure/repositories"
	sessionservice "github.com/ttv-club/matchday/app/modules/session/application"
	sessiondomain "github.com/ttv-club/matchday/app/modules/session/domain"
	sessiondb "github.com/ttv-club/matchday/app/modules/session/infrastructure/repositories"
	"github.com/ttv-club/matchday/app/shared/attr"
	archivemetrics "github.com/ttv-club/matchday/app/shared/observability/metrics/archive"
	rostermetrics "github.com/ttv-club/matchday/app/shared/observability/metrics/roster"
	sessionmetrics "github.com/ttv-club/matchday/app/shared/observability/metrics/session"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	logger := attr.NoOpLogger
	bus := eventbus.NewFakeEventBus()
	tracer := noop.NewTracerProvider().Tracer("test")
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC))

	rosterRepo := rosterdb.NewFakeRepository()
	rosterSvc := rosterservice.NewRosterService(
		rosterRepo, bus, logger, rostermetrics.NoOpMetrics{}, tracer, nil,
	)
	sessionSvc := sessionservice.NewSessionService(
		sessiondb.NewFakeRepository(), rosterRepo, bus, logger,
		sessionmetrics.NoOpMetrics{}, tracer, nil,
		clock, rand.New(rand.NewSource(42)),
	)
	archiveSvc := archiveservice.NewArchiveService(
		archivedb.NewFakeRepository(), bus, logger, archivemetrics.NoOpMetrics{}, tracer, nil,
	)

	return NewRouter(
		NewRosterHandler(rosterSvc),
		NewSessionHandler(sessionSvc),
		NewArchiveHandler(archiveSvc),
		prometheus.NewRegistry(),
		1000, 1000,
	)
}

func doJSON(t *testing.T, router chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decoding %q: %v", rec.Body.String(), err)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRosterEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/roster", map[string]string{"name": "Alice"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d, body %s", rec.Code, rec.Body)
	}

	// Duplicate names come back as a conflict, not a server error.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/roster", map[string]string{"name": "alice"})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate add status = %d, want 409", rec.Code)
	}

	// A JSON string is not a valid request object.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/roster", "not an object")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/roster", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var players []rosterdb.Player
	decodeInto(t, rec, &players)
	if len(players) != 1 || players[0].Name != "Alice" {
		t.Errorf("roster = %+v", players)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/roster/"+players[0].ID.String(), nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("remove status = %d, want 204", rec.Code)
	}
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/roster/"+players[0].ID.String(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second remove status = %d, want 404", rec.Code)
	}
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	for _, name := range []string{"Alice", "Bob"} {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/roster", map[string]string{"name": name})
		if rec.Code != http.StatusCreated {
			t.Fatalf("seeding %s: %d %s", name, rec.Code, rec.Body)
		}
	}

	// No session yet.
	if rec := doJSON(t, router, http.MethodGet, "/api/v1/session", nil); rec.Code != http.StatusNotFound {
		t.Errorf("current session status = %d, want 404", rec.Code)
	}

	rec := doJSON(t, router, http.MethodPost, "/api/v1/session", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start status = %d, body %s", rec.Code, rec.Body)
	}

	// Starting again conflicts.
	if rec := doJSON(t, router, http.MethodPost, "/api/v1/session", nil); rec.Code != http.StatusConflict {
		t.Errorf("second start status = %d, want 409", rec.Code)
	}

	// Play all six rounds through the API.
	for round := 1; round <= sessiondomain.SessionRounds; round++ {
		rec = doJSON(t, router, http.MethodPost, "/api/v1/session/rounds", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("draw %d status = %d, body %s", round, rec.Code, rec.Body)
		}
		var session sessiondomain.Session
		decodeInto(t, rec, &session)
		for _, match := range session.Matches {
			if match.Round != round || match.IsBye() {
				continue
			}
			path := fmt.Sprintf("/api/v1/session/matches/%s/result", match.ID)
			rec = doJSON(t, router, http.MethodPut, path, map[string]string{"result": "3:0"})
			if rec.Code != http.StatusOK {
				t.Fatalf("record status = %d, body %s", rec.Code, rec.Body)
			}
		}
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/session/finishable", nil)
	var finishable struct {
		Finishable bool `json:"finishable"`
	}
	decodeInto(t, rec, &finishable)
	if !finishable.Finishable {
		t.Fatal("fully recorded day must be finishable")
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/session/standings", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("standings status = %d", rec.Code)
	}
	var standings []sessiondomain.StandingsRow
	decodeInto(t, rec, &standings)
	if len(standings) != 2 || standings[0].Points+standings[1].Points != 12 {
		t.Errorf("standings = %+v", standings)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/session/finish", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("finish status = %d, body %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/session", nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("end status = %d, want 204", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("metrics status = %d, want 200", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	logger := attr.NoOpLogger
	bus := eventbus.NewFakeEventBus()
	tracer := noop.NewTracerProvider().Tracer("test")

	rosterRepo := rosterdb.NewFakeRepository()
	rosterSvc := rosterservice.NewRosterService(rosterRepo, bus, logger, rostermetrics.NoOpMetrics{}, tracer, nil)
	sessionSvc := sessionservice.NewSessionService(
		sessiondb.NewFakeRepository(), rosterRepo, bus, logger,
		sessionmetrics.NoOpMetrics{}, tracer, nil,
		clockwork.NewFakeClock(), rand.New(rand.NewSource(1)),
	)
	archiveSvc := archiveservice.NewArchiveService(
		archivedb.NewFakeRepository(), bus, logger, archivemetrics.NoOpMetrics{}, tracer, nil,
	)

	// One request per second, burst of two: the third immediate request
	// must be throttled.
	router := NewRouter(
		NewRosterHandler(rosterSvc),
		NewSessionHandler(sessionSvc),
		NewArchiveHandler(archiveSvc),
		prometheus.NewRegistry(),
		1, 2,
	)

	codes := make([]int, 3)
	for i := range codes {
		codes[i] = doJSON(t, router, http.MethodGet, "/healthz", nil).Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("first two requests = %v, want 200s", codes[:2])
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", codes[2])
	}
}
