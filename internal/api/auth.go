package api

import (
	"context"

	"go.uber.org/zap"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/errors"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/models"
)

var errNoRefreshToken = errors.Unauthorized("no refresh token available", nil)

// Login authenticates and persists the returned token pair.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var auth models.AuthResponse
	if err := c.Post(ctx, "/auth/login", req, &auth); err != nil {
		return nil, err
	}

	if err := c.tokens.SetPair(auth.AccessToken, auth.RefreshToken); err != nil {
		return nil, err
	}

	c.logger.Info("logged in",
		zap.String("user", auth.User.FullName),
		zap.String("role", string(auth.User.Role)))
	return &auth, nil
}

// Register creates an account. No tokens are issued until the registration
// is confirmed, so nothing is persisted here.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.Post(ctx, "/auth/register", req, nil)
}

// Refresh exchanges the persisted refresh token for a new access token.
// The transport calls this automatically on 401; it is exported for
// callers that refresh proactively.
func (c *Client) Refresh(ctx context.Context) error {
	refreshToken, ok := c.tokens.Refresh()
	if !ok {
		return errNoRefreshToken
	}
	return c.refreshAccessToken(ctx, refreshToken)
}

// Logout tells the server to revoke the session, then drops the persisted
// tokens regardless of the server's answer.
func (c *Client) Logout(ctx context.Context) error {
	err := c.Post(ctx, "/auth/logout", nil, nil)
	if clearErr := c.tokens.Clear(); clearErr != nil {
		c.logger.Warn("failed to clear persisted tokens", zap.Error(clearErr))
	}
	return err
}

// CurrentUser fetches the profile of the authenticated user. The profile
// lives under the users resource, not the auth endpoints.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.Get(ctx, "/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
