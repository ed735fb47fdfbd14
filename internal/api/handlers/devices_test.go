//go:build integration

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	apiMiddleware "github.com/signcast/signcast/internal/api/middleware"
	"github.com/signcast/signcast/pkg/devicestate"
)

func deviceRouter(t *testing.T, env *contentTestEnv) (chi.Router, *devicestate.Store) {
	t.Helper()

	state, err := devicestate.New(devicestate.Config{InMemory: true})
	if err != nil {
		t.Fatalf("failed to create device state store: %v", err)
	}
	t.Cleanup(func() { _ = state.Close() })

	handler := NewDeviceHandler(env.store, state, nil)

	r := chi.NewRouter()
	r.Post("/api/devices/{id}/heartbeat", handler.Heartbeat)
	r.Group(func(r chi.Router) {
		r.Use(apiMiddleware.JWTAuth(env.jwt))
		r.Post("/api/devices", handler.Register)
		r.Get("/api/devices", handler.List)
		r.Get("/api/devices/{id}", handler.Get)
		r.Put("/api/devices/{id}", handler.Update)
		r.Delete("/api/devices/{id}", handler.Delete)
	})
	return r, state
}

func registerDevice(t *testing.T, router chi.Router, token, name string) *DeviceResponse {
	t.Helper()

	payload, _ := json.Marshal(RegisterDeviceRequest{Name: name})
	req := httptest.NewRequest(http.MethodPost, "/api/devices", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
	}

	var resp DeviceResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return &resp
}

func TestDeviceRegister_PairingCodeAssigned(t *testing.T) {
	env := setupContentTest(t)
	router, _ := deviceRouter(t, env)

	tenant := env.seedTenant(t, 1)
	device := registerDevice(t, router, env.tenantToken(t, tenant.ID), "Lobby Screen")

	if device.PairingCode == "" {
		t.Error("expected a pairing code")
	}
	if len(device.PairingCode) != 8 {
		t.Errorf("expected 8-character pairing code, got %q", device.PairingCode)
	}
}

func TestDeviceRegister_LimitEnforced(t *testing.T) {
	env := setupContentTest(t)
	router, _ := deviceRouter(t, env)

	// seedTenant uses MaxDevices: 5
	tenant := env.seedTenant(t, 1)
	token := env.tenantToken(t, tenant.ID)

	for i := 0; i < 5; i++ {
		registerDevice(t, router, token, "Screen")
	}

	payload, _ := json.Marshal(RegisterDeviceRequest{Name: "One Too Many"})
	req := httptest.NewRequest(http.MethodPost, "/api/devices", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Errorf("expected status %d at device limit, got %d", http.StatusConflict, rr.Code)
	}
}

func TestDeviceHeartbeat(t *testing.T) {
	env := setupContentTest(t)
	router, state := deviceRouter(t, env)

	tenant := env.seedTenant(t, 1)
	device := registerDevice(t, router, env.tenantToken(t, tenant.ID), "Lobby Screen")

	t.Run("wrong pairing code rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/devices/"+device.ID+"/heartbeat", nil)
		req.Header.Set("X-Pairing-Code", "WRONGCODE")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
		}
	})

	t.Run("valid heartbeat recorded", func(t *testing.T) {
		payload, _ := json.Marshal(HeartbeatRequest{PlayerVersion: "2.4.1"})
		req := httptest.NewRequest(http.MethodPost, "/api/devices/"+device.ID+"/heartbeat", bytes.NewReader(payload))
		req.Header.Set("X-Pairing-Code", device.PairingCode)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusNoContent {
			t.Fatalf("expected status %d, got %d: %s", http.StatusNoContent, rr.Code, rr.Body.String())
		}

		got, err := state.Get(context.Background(), device.ID)
		if err != nil {
			t.Fatalf("expected device state to be recorded: %v", err)
		}
		if got.PlayerVersion != "2.4.1" {
			t.Errorf("expected player version 2.4.1, got %s", got.PlayerVersion)
		}

		fresh, err := env.store.GetDevice(context.Background(), device.ID)
		if err != nil {
			t.Fatalf("failed to fetch device: %v", err)
		}
		if fresh.LastSeenAt == nil {
			t.Error("expected last_seen_at to be set")
		}
	})
}
