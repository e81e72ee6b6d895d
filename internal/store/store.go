// Package store holds the client-side cache of server data. Each slice
// owns one subtree of the cache and exposes the operations that mutate it;
// every async operation runs the same lifecycle: entering Pending sets
// IsLoading and clears the error, settling either merges the result
// (Fulfilled) or records the extracted error message (Rejected).
//
// The IsLoading/Error pair is shared by all operations of a slice. When two
// operations of the same slice are in flight at once, the one settling last
// wins those fields and any list it replaces. Callers must not rely on
// first-dispatched-first-applied ordering.
package store

import (
	"sync"

	"go.uber.org/zap"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/api"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/services"
)

// Store composes the slices over one transport.
type Store struct {
	Auth         *AuthSlice
	Jobs         *JobsSlice
	Applications *ApplicationsSlice
	UI           *UISlice

	mu   sync.Mutex
	subs []chan struct{}
}

func New(client *api.Client, jobs *services.JobService, applications *services.ApplicationService, logger *zap.Logger) *Store {
	s := &Store{}
	s.Auth = newAuthSlice(client, logger, s.notify)
	s.Jobs = newJobsSlice(jobs, logger, s.notify)
	s.Applications = newApplicationsSlice(applications, logger, s.notify)
	s.UI = newUISlice(s.notify)
	return s
}

// Subscribe returns a channel that receives a signal after every state
// commit. The channel is buffered and signals coalesce; consumers re-read
// the snapshots they care about on each wakeup.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *Store) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
