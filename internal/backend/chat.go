package backend

import (
	"context"
	"fmt"

	"askdb/cli/internal/interrupt"
	"askdb/cli/internal/protocol"
)

// chatReply is the wire shape of /chat and /chat/resume responses.
// status is "ok" or "needs_human_input"; exactly one of the two field
// groups is meaningful.
type chatReply struct {
	Status        string           `json:"status"`
	SessionID     string           `json:"session_id"`
	Response      string           `json:"response"`
	Data          []map[string]any `json:"data"`
	FromCache     bool             `json:"from_cache"`
	ExecutionTime float64          `json:"execution_time"`
	Interrupt     map[string]any   `json:"interrupt"`
}

// SubmitTurn posts the user's question to /chat tagged with the
// session id.
func (h *HTTP) SubmitTurn(ctx context.Context, sessionID, message string) (protocol.Reply, error) {
	body := map[string]string{
		"session_id": sessionID,
		"message":    message,
	}
	var raw chatReply
	if err := h.postJSON(ctx, h.chatClient, h.endpoints.Chat, body, &raw); err != nil {
		return protocol.Reply{}, err
	}
	return classify(raw)
}

// Resume posts a human decision to /chat/resume so the paused turn can
// continue.
func (h *HTTP) Resume(ctx context.Context, sessionID string, decision interrupt.Decision) (protocol.Reply, error) {
	body := map[string]any{
		"session_id": sessionID,
		"data":       decision,
	}
	var raw chatReply
	if err := h.postJSON(ctx, h.chatClient, h.endpoints.ChatResume, body, &raw); err != nil {
		return protocol.Reply{}, err
	}
	return classify(raw)
}

// classify maps a wire reply onto the tagged union the protocol layer
// consumes.
func classify(raw chatReply) (protocol.Reply, error) {
	switch raw.Status {
	case "ok":
		return protocol.Reply{OK: &protocol.Result{
			Response:      raw.Response,
			Rows:          raw.Data,
			FromCache:     raw.FromCache,
			ExecutionTime: raw.ExecutionTime,
		}}, nil
	case "needs_human_input":
		it := interrupt.Parse(raw.Interrupt)
		return protocol.Reply{NeedsInput: &it}, nil
	default:
		return protocol.Reply{}, fmt.Errorf("unexpected reply status %q", raw.Status)
	}
}
