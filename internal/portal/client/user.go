package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
)

// Login exchanges credentials for a session payload.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.SessionUser, error) {
	body := map[string]string{"username": username, "password": password}

	var sessionUser domain.SessionUser
	if err := c.doJSON(ctx, "login", http.MethodPost, "/api/login", nil, "", body, &sessionUser); err != nil {
		return nil, err
	}
	if err := sessionUser.Validate(); err != nil {
		return nil, err
	}
	return &sessionUser, nil
}

// Logout invalidates the session on the API side. When token is empty there
// is no server-side session to invalidate, so no request is made; callers
// still clear their local session state.
func (c *Client) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return c.doJSON(ctx, "logout", http.MethodPost, "/api/logout", nil, token, nil, nil)
}

// UserImage fetches a user's stored profile image bytes.
func (c *Client) UserImage(ctx context.Context, token string, userID int64) ([]byte, error) {
	return c.doBytes(ctx, "user_image", http.MethodGet, "/api/user_image/"+strconv.FormatInt(userID, 10), token)
}
