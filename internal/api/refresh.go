package api

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/models"
)

// refreshGroup collapses concurrent refresh attempts into one call. The
// first 401 handler performs the refresh; handlers arriving while it is in
// flight wait for its result instead of issuing their own.
type refreshGroup struct {
	mu       sync.Mutex
	inflight *refreshCall
}

type refreshCall struct {
	done chan struct{}
	err  error
}

// refreshAccessToken performs (or joins) a single refresh cycle and
// persists the new access token on success.
func (c *Client) refreshAccessToken(ctx context.Context, refreshToken string) error {
	c.refresh.mu.Lock()
	if call := c.refresh.inflight; call != nil {
		c.refresh.mu.Unlock()
		select {
		case <-call.done:
			return call.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	call := &refreshCall{done: make(chan struct{})}
	c.refresh.inflight = call
	c.refresh.mu.Unlock()

	call.err = c.doRefresh(ctx, refreshToken)

	c.refresh.mu.Lock()
	c.refresh.inflight = nil
	c.refresh.mu.Unlock()
	close(call.done)

	return call.err
}

// doRefresh hits /auth/refresh directly, outside the interceptor path, so a
// 401 from the refresh endpoint itself cannot recurse.
func (c *Client) doRefresh(ctx context.Context, refreshToken string) error {
	payload, err := marshalBody(models.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return err
	}

	resp, err := c.attempt(ctx, "POST", c.baseURL+"/auth/refresh", "application/json", payload, "")
	if err != nil {
		return err
	}

	var auth models.AuthResponse
	if err := c.finish(resp, &auth); err != nil {
		return err
	}

	if err := c.tokens.SetAccess(auth.AccessToken); err != nil {
		return err
	}

	c.logger.Debug("access token refreshed", zap.Time("expires_at", auth.ExpiresAt))
	return nil
}
