package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"askdb/cli/internal/httperrors"
)

// Endpoints contains the URL paths for the service's API.
type Endpoints struct {
	Health       string
	Chat         string
	ChatResume   string
	DBStatus     string
	DBConnect    string
	DBDisconnect string
	AuthLogin    string
	AuthMe       string
	Schema       string
}

// DefaultEndpoints returns the paths the service serves out of the box.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Health:       "/health",
		Chat:         "/chat",
		ChatResume:   "/chat/resume",
		DBStatus:     "/db/status",
		DBConnect:    "/db/connect",
		DBDisconnect: "/db/disconnect",
		AuthLogin:    "/auth/login",
		AuthMe:       "/auth/me",
		Schema:       "/api/db/schema",
	}
}

// HTTP implements API over the service's REST endpoints.
type HTTP struct {
	// baseURL is the base URL for all requests (e.g. "http://localhost:8000")
	baseURL string
	// endpoints contains the URL paths for the API
	endpoints Endpoints
	// client handles short requests: health, status, auth
	client *http.Client
	// chatClient handles chat/resume, which can take as long as the
	// agent needs to plan and run a query
	chatClient *http.Client
}

// newHTTP creates the client. Short requests time out after 10 seconds;
// chat requests get 5 minutes.
func newHTTP(baseURL string, endpoints Endpoints) *HTTP {
	return &HTTP{
		baseURL:    strings.TrimRight(baseURL, "/"),
		endpoints:  endpoints,
		client:     &http.Client{Timeout: 10 * time.Second},
		chatClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

// getJSON issues a GET and decodes a 2xx JSON body into out.
func (h *HTTP) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+path, nil)
	if err != nil {
		return err
	}
	return h.do(h.client, req, out)
}

// postJSON issues a POST with a JSON body and decodes a 2xx JSON reply
// into out. body may be nil for empty posts.
func (h *HTTP) postJSON(ctx context.Context, client *http.Client, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return h.do(client, req, out)
}

// do executes the request and decodes the response. Non-2xx replies
// become APIErrors carrying the service's detail message.
func (h *HTTP) do(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return httperrors.FromResponseBody(resp.StatusCode, b)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
