package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/malanad-agro/agrostore-backend/pkg/config"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(ctx context.Context) error {
	return s.err
}

func TestHealthLive(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	HealthLive(cfg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-AgroStore-Env") != "test" {
		t.Fatalf("expected env header, got %q", rec.Header().Get("X-AgroStore-Env"))
	}
}

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	logg := testLogger()

	t.Run("all dependencies up", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		rec := httptest.NewRecorder()
		HealthReady(cfg, logg, stubPinger{}, stubPinger{}).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("database down", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		rec := httptest.NewRecorder()
		HealthReady(cfg, logg, stubPinger{err: errors.New("connection refused")}, stubPinger{}).ServeHTTP(rec, req)
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		parsed := decodeErrorBody(t, rec)
		if parsed.Error.Details["dependency"] != "database" {
			t.Fatalf("expected failing dependency named, got %v", parsed.Error.Details)
		}
	})

	t.Run("redis down", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		rec := httptest.NewRecorder()
		HealthReady(cfg, logg, stubPinger{}, stubPinger{err: errors.New("connection refused")}).ServeHTTP(rec, req)
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		parsed := decodeErrorBody(t, rec)
		if parsed.Error.Details["dependency"] != "redis" {
			t.Fatalf("expected failing dependency named, got %v", parsed.Error.Details)
		}
	})
}
