package store

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/api"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/services"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/tokens"
)

// newTestStore wires a full store against the given handler. The returned
// token store starts with a valid pair so requests carry a bearer token.
func newTestStore(t *testing.T, handler http.Handler) (*Store, tokens.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := zap.NewNop()
	tokenStore := tokens.NewMemoryStore()
	_ = tokenStore.SetPair("access-1", "refresh-1")

	client := api.NewClient(logger, tokenStore, api.Options{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})
	jobs := services.NewJobService(client, logger)
	applications := services.NewApplicationService(client, logger)
	return New(client, jobs, applications, logger), tokenStore
}

func TestSubscribeSignalsOnCommit(t *testing.T) {
	s, _ := newTestStore(t, http.NotFoundHandler())
	ch := s.Subscribe()

	s.UI.SetGlobalLoading(true)

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no signal after a state commit")
	}
}

func TestSubscribeCoalescesSignals(t *testing.T) {
	s, _ := newTestStore(t, http.NotFoundHandler())
	ch := s.Subscribe()

	// Several commits with no reader in between must not block.
	for i := 0; i < 10; i++ {
		s.UI.ToggleSidebar()
	}

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no signal pending")
	}
	select {
	case <-ch:
		t.Fatal("signals did not coalesce")
	default:
	}
}
