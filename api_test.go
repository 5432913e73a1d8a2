package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestServeHealthCheck(t *testing.T) {
	cfg := testConfig()
	errs := make(chan error, 8)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	serveHealthCheck(cfg, errs)(w, r, nil)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	if w.Body.String() != "Ok\n" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestServeVersion(t *testing.T) {
	cfg := testConfig()
	errs := make(chan error, 8)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/version", nil)
	serveVersion(cfg, errs)(w, r, nil)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	if want := "pretender v" + releaseVersion + "\n"; w.Body.String() != want {
		t.Errorf("body = %q, want %q", w.Body.String(), want)
	}
}

func TestServeRooms(t *testing.T) {
	cfg := testConfig()
	errs := make(chan error, 8)
	reg := testRegistry(t)
	reg.get("Ab12Cd34", "poetry")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	serveRooms(cfg, reg, errs)(w, r, nil)

	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content type = %q", ct)
	}

	var infos []RoomInfo
	if err := json.Unmarshal(w.Body.Bytes(), &infos); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(infos) != 1 || infos[0].RoomKey != "Ab12Cd34" || infos[0].RoomType != "poetry" {
		t.Errorf("rooms = %+v", infos)
	}
}

func TestServeLeaderboard(t *testing.T) {
	cfg := testConfig()
	errs := make(chan error, 8)
	store := newMemoryStore(50)
	store.SaveOutcome(context.Background(), outcomeRecord("s1", time.Now()))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/leaderboard?period=daily&limit=5", nil)
	serveLeaderboard(cfg, store, errs)(w, r, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var entries []LeaderboardEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("entries = %d, want 3", len(entries))
	}
}

func TestServeLeaderboardRejectsBadParams(t *testing.T) {
	cfg := testConfig()
	errs := make(chan error, 8)
	store := newMemoryStore(50)

	cases := []string{
		"/api/leaderboard?period=fortnightly",
		"/api/leaderboard?room_type=trivia",
		"/api/leaderboard?limit=0",
		"/api/leaderboard?limit=abc",
	}
	for _, target := range cases {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, target, nil)
		serveLeaderboard(cfg, store, errs)(w, r, nil)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, w.Code)
		}
	}
}

func TestServeAnalytics(t *testing.T) {
	cfg := testConfig()
	errs := make(chan error, 8)
	store := newMemoryStore(50)
	store.SaveOutcome(context.Background(), outcomeRecord("s1", time.Now()))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
	serveAnalytics(cfg, store, errs)(w, r, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var report AnalyticsReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if report.TotalSessions != 1 {
		t.Errorf("report = %+v", report)
	}
}
