package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/guesswho-dev/guesswho/internal/models"
)

// GoogleStartURL returns the URL that begins the Google OAuth flow. The
// server redirects back to redirectTo with callback parameters once consent
// completes.
func (c *Client) GoogleStartURL(redirectTo string) string {
	return fmt.Sprintf("%s/auth/google?redirectTo=%s", c.baseURL, url.QueryEscape(redirectTo))
}

// FinalizeGoogleCallback exchanges the OAuth callback parameters for a
// session. The caller is expected to store the result via the session store.
func (c *Client) FinalizeGoogleCallback(ctx context.Context, params url.Values) (string, *models.User, error) {
	var payload sessionPayload
	err := c.doJSON(ctx, "/auth/google/callback?"+params.Encode(), RequestOptions{
		Auth: AuthNone,
	}, &payload)
	if err != nil {
		return "", nil, err
	}
	return payload.AccessToken, payload.User, nil
}

// Refresh forces a session refresh outside the 401 recovery path, storing
// the rotated credentials on success. Used to proactively recover a session
// at startup when the persisted access token is close to expiry.
func (c *Client) Refresh(ctx context.Context) error {
	return c.refreshSession(ctx)
}

// Me fetches the signed-in user's profile.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var resp struct {
		User *models.User `json:"user"`
	}
	if err := c.doJSON(ctx, "/auth/me", RequestOptions{Auth: AuthUser}, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Logout ends the server-side session and clears the local user session.
// The local session is cleared even when the server call fails, so the
// client never stays signed in against the user's wishes.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, "/auth/logout", RequestOptions{
		Method: http.MethodPost,
		Auth:   AuthUser,
	})
	c.session.ClearUserSession()
	return err
}
