package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/api"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/errors"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/models"
)

// AuthState is the session subtree. IsAuthenticated is true iff User is
// loaded; a persisted token may exist without a loaded user (after a
// refresh, before the profile fetch) and that alone does not authenticate.
type AuthState struct {
	User            *models.User
	IsAuthenticated bool
	IsLoading       bool
	Error           string
}

type AuthSlice struct {
	mu     sync.Mutex
	state  AuthState
	client *api.Client
	logger *zap.Logger
	notify func()
}

func newAuthSlice(client *api.Client, logger *zap.Logger, notify func()) *AuthSlice {
	return &AuthSlice{client: client, logger: logger, notify: notify}
}

func (s *AuthSlice) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *AuthSlice) begin() {
	s.mu.Lock()
	s.state.IsLoading = true
	s.state.Error = ""
	s.mu.Unlock()
	s.notify()
}

func (s *AuthSlice) reject(err error, fallback string) {
	message := errors.Message(err, fallback)
	s.mu.Lock()
	s.state.IsLoading = false
	s.state.Error = message
	s.mu.Unlock()
	s.notify()
}

func (s *AuthSlice) setUser(user *models.User) {
	s.mu.Lock()
	s.state.IsLoading = false
	s.state.User = user
	s.state.IsAuthenticated = user != nil
	s.mu.Unlock()
	s.notify()
}

// Login authenticates, persists the token pair through the transport, and
// loads the session user.
func (s *AuthSlice) Login(ctx context.Context, req models.LoginRequest) error {
	s.begin()
	auth, err := s.client.Login(ctx, req)
	if err != nil {
		s.reject(err, "Login failed")
		return err
	}
	s.setUser(&auth.User)
	return nil
}

func (s *AuthSlice) Register(ctx context.Context, req models.RegisterRequest) error {
	s.begin()
	if err := s.client.Register(ctx, req); err != nil {
		s.reject(err, "Registration failed")
		return err
	}
	// Registration issues no session; confirmation happens out of band.
	s.setUser(nil)
	return nil
}

// FetchCurrentUser loads the profile for an existing token, completing the
// token-without-user transient state.
func (s *AuthSlice) FetchCurrentUser(ctx context.Context) error {
	s.begin()
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.reject(err, "Failed to fetch current user")
		return err
	}
	s.setUser(user)
	return nil
}

// Logout destroys the session locally even when the server call fails.
func (s *AuthSlice) Logout(ctx context.Context) error {
	s.begin()
	err := s.client.Logout(ctx)
	if err != nil {
		s.logger.Warn("server logout failed, clearing local session anyway", zap.Error(err))
	}
	s.setUser(nil)
	return err
}

// SessionExpired drops the loaded user after a failed token refresh. The
// transport's auth-expired hook calls this.
func (s *AuthSlice) SessionExpired() {
	s.setUser(nil)
}

func (s *AuthSlice) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
	s.notify()
}
