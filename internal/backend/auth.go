package backend

import "context"

// Login posts credentials to /auth/login. The service is tokenless: a
// successful login just records the operator name for the session.
func (h *HTTP) Login(ctx context.Context, sessionID, username, password string) (Account, error) {
	body := map[string]string{
		"session_id": sessionID,
		"username":   username,
		"password":   password,
	}
	var out struct {
		OK bool `json:"ok"`
		Account
	}
	if err := h.postJSON(ctx, h.client, h.endpoints.AuthLogin, body, &out); err != nil {
		return Account{}, err
	}
	return out.Account, nil
}

// Me calls GET /auth/me and returns the identity the service holds.
func (h *HTTP) Me(ctx context.Context) (Account, error) {
	var out struct {
		OK bool `json:"ok"`
		Account
	}
	if err := h.getJSON(ctx, h.endpoints.AuthMe, &out); err != nil {
		return Account{}, err
	}
	return out.Account, nil
}
