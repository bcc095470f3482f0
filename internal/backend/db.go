package backend

import (
	"context"
	"fmt"
)

// Health calls GET /health. The service wraps the database status in
// {"ok": true, ...}, so a decoded reply means the service is up even
// when no database is connected.
func (h *HTTP) Health(ctx context.Context) (DBStatus, error) {
	var out struct {
		OK bool `json:"ok"`
		DBStatus
	}
	if err := h.getJSON(ctx, h.endpoints.Health, &out); err != nil {
		return DBStatus{}, err
	}
	return out.DBStatus, nil
}

// DBStatus calls GET /db/status.
func (h *HTTP) DBStatus(ctx context.Context) (DBStatus, error) {
	var out DBStatus
	if err := h.getJSON(ctx, h.endpoints.DBStatus, &out); err != nil {
		return DBStatus{}, err
	}
	return out, nil
}

// ConnectDB posts the profile to /db/connect. The service rebuilds its
// agent against the new database, so this can take a few seconds.
func (h *HTTP) ConnectDB(ctx context.Context, sessionID string, profile ConnectProfile) (DBStatus, error) {
	body := map[string]any{
		"profile": profile,
	}
	if sessionID != "" {
		body["session_id"] = sessionID
	}

	var out struct {
		OK bool `json:"ok"`
		DBStatus
	}
	if err := h.postJSON(ctx, h.client, h.endpoints.DBConnect, body, &out); err != nil {
		return DBStatus{}, err
	}
	if !out.Connected {
		msg := out.Error
		if msg == "" {
			msg = "service reported not connected"
		}
		return out.DBStatus, fmt.Errorf("connect failed: %s", msg)
	}
	return out.DBStatus, nil
}

// DisconnectDB posts to /db/disconnect.
func (h *HTTP) DisconnectDB(ctx context.Context) error {
	return h.postJSON(ctx, h.client, h.endpoints.DBDisconnect, nil, nil)
}

// Schema calls GET /api/db/schema, optionally forcing a live reload.
func (h *HTTP) Schema(ctx context.Context, refresh bool) (map[string]any, error) {
	path := h.endpoints.Schema
	if refresh {
		path += "?refresh=true"
	}
	var out map[string]any
	if err := h.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}
