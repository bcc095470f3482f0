// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"askdb/cli/internal/httperrors"
	"askdb/cli/internal/interrupt"
)

func newTestHTTP(t *testing.T, handler http.HandlerFunc) *HTTP {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return newHTTP(srv.URL, DefaultEndpoints())
}

func TestSubmitTurnOkReply(t *testing.T) {
	h := newTestHTTP(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" {
			t.Errorf("path = %q, want /chat", r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["session_id"] != "sid-1" || req["message"] != "top customers" {
			t.Errorf("request = %v", req)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":         "ok",
			"response":       "Here are the top customers.",
			"data":           []map[string]any{{"name": "ACME", "total": 1200}},
			"session_id":     "sid-1",
			"from_cache":     true,
			"execution_time": 1.25,
		})
	})

	reply, err := h.SubmitTurn(context.Background(), "sid-1", "top customers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.OK == nil {
		t.Fatal("expected an ok reply")
	}
	if reply.OK.Response != "Here are the top customers." || !reply.OK.FromCache {
		t.Errorf("result = %+v", reply.OK)
	}
	if len(reply.OK.Rows) != 1 || reply.OK.Rows[0]["name"] != "ACME" {
		t.Errorf("rows = %v", reply.OK.Rows)
	}
	if reply.OK.ExecutionTime != 1.25 {
		t.Errorf("execution time = %v", reply.OK.ExecutionTime)
	}
}

func TestSubmitTurnNeedsInputReply(t *testing.T) {
	h := newTestHTTP(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":     "needs_human_input",
			"session_id": "sid-1",
			"interrupt": map[string]any{
				"type":            "cache_review",
				"query":           "top customers",
				"cached_response": "cached answer",
				"similarity":      0.9,
			},
		})
	})

	reply, err := h.SubmitTurn(context.Background(), "sid-1", "top customers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.NeedsInput == nil {
		t.Fatal("expected a needs-input reply")
	}
	if reply.NeedsInput.Kind != interrupt.TypeCacheReview {
		t.Errorf("interrupt kind = %q", reply.NeedsInput.Kind)
	}
	if reply.NeedsInput.CacheReview.CachedResponse != "cached answer" {
		t.Errorf("cache review = %+v", reply.NeedsInput.CacheReview)
	}
}

func TestResumeForwardsDecision(t *testing.T) {
	h := newTestHTTP(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/resume" {
			t.Errorf("path = %q, want /chat/resume", r.URL.Path)
		}
		var req struct {
			SessionID string         `json:"session_id"`
			Data      map[string]any `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.SessionID != "sid-2" || req.Data["action"] != "regenerate" {
			t.Errorf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":   "ok",
			"response": "fresh answer",
		})
	})

	reply, err := h.Resume(context.Background(), "sid-2", interrupt.Decision{"action": "regenerate"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.OK == nil || reply.OK.Response != "fresh answer" {
		t.Errorf("reply = %+v", reply)
	}
}

func TestSubmitTurnServerDetailSurfaces(t *testing.T) {
	h := newTestHTTP(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"detail": "still loading"})
	})

	_, err := h.SubmitTurn(context.Background(), "sid", "q")
	var apiErr *httperrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusServiceUnavailable || apiErr.Detail != "still loading" {
		t.Errorf("api error = %+v", apiErr)
	}
}

func TestHealth(t *testing.T) {
	h := newTestHTTP(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %q, want /health", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"ok":        true,
			"connected": true,
			"database":  "sales",
			"host":      "localhost",
		})
	})

	status, err := h.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.Connected || status.Database != "sales" {
		t.Errorf("status = %+v", status)
	}
}

func TestConnectDBReportsServiceError(t *testing.T) {
	h := newTestHTTP(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"ok":        true,
			"connected": false,
			"error":     "password authentication failed",
		})
	})

	_, err := h.ConnectDB(context.Background(), "sid", ConnectProfile{DSN: "postgresql://u:p@localhost:5432/db"})
	if err == nil {
		t.Fatal("expected error when service reports not connected")
	}
}
