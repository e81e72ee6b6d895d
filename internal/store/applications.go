package store

import (
	"context"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/errors"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/models"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/services"
)

type ApplicationsState struct {
	Applications       []models.JobApplication
	CurrentApplication *models.JobApplication
	TotalElements      int64
	TotalPages         int
	CurrentPage        int
	IsLoading          bool
	Error              string
}

type ApplicationsSlice struct {
	mu     sync.Mutex
	state  ApplicationsState
	svc    *services.ApplicationService
	logger *zap.Logger
	notify func()
}

func newApplicationsSlice(svc *services.ApplicationService, logger *zap.Logger, notify func()) *ApplicationsSlice {
	return &ApplicationsSlice{svc: svc, logger: logger, notify: notify}
}

func (s *ApplicationsSlice) State() ApplicationsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *ApplicationsSlice) begin() {
	s.mu.Lock()
	s.state.IsLoading = true
	s.state.Error = ""
	s.mu.Unlock()
	s.notify()
}

func (s *ApplicationsSlice) reject(err error, fallback string) {
	message := errors.Message(err, fallback)
	s.mu.Lock()
	s.state.IsLoading = false
	s.state.Error = message
	s.mu.Unlock()
	s.logger.Debug("applications operation rejected", zap.String("error", message))
	s.notify()
}

func (s *ApplicationsSlice) commit(mutate func(*ApplicationsState)) {
	s.mu.Lock()
	s.state.IsLoading = false
	mutate(&s.state)
	s.mu.Unlock()
	s.notify()
}

func (s *ApplicationsSlice) FetchMyApplications(ctx context.Context, page, size int) error {
	s.begin()
	result, err := s.svc.GetMyApplications(ctx, page, size)
	if err != nil {
		s.reject(err, "Failed to fetch applications")
		return err
	}
	s.commit(func(st *ApplicationsState) {
		st.Applications = result.Content
		st.TotalElements = result.TotalElements
		st.TotalPages = result.TotalPages
		st.CurrentPage = result.Number
	})
	return nil
}

func (s *ApplicationsSlice) FetchApplicationByID(ctx context.Context, id int64) error {
	s.begin()
	app, err := s.svc.GetApplicationByID(ctx, id)
	if err != nil {
		s.reject(err, "Failed to fetch application")
		return err
	}
	s.commit(func(st *ApplicationsState) {
		st.CurrentApplication = app
	})
	return nil
}

// ApplyForJob prepends the server's canonical application record to the
// cached list on success.
func (s *ApplicationsSlice) ApplyForJob(ctx context.Context, req models.ApplicationRequest, resumeName string, resume io.Reader) error {
	s.begin()
	app, err := s.svc.ApplyForJob(ctx, req, resumeName, resume)
	if err != nil {
		s.reject(err, "Failed to submit application")
		return err
	}
	s.commit(func(st *ApplicationsState) {
		st.Applications = append([]models.JobApplication{*app}, st.Applications...)
	})
	return nil
}

// WithdrawApplication patches the matching cached item's status in place.
// The item stays in the list; nothing is refetched.
func (s *ApplicationsSlice) WithdrawApplication(ctx context.Context, id int64) error {
	s.begin()
	if err := s.svc.WithdrawApplication(ctx, id); err != nil {
		s.reject(err, "Failed to withdraw application")
		return err
	}
	s.commit(func(st *ApplicationsState) {
		patched := make([]models.JobApplication, len(st.Applications))
		copy(patched, st.Applications)
		for i := range patched {
			if patched[i].ID == id {
				patched[i].Status = models.StatusWithdrawn
			}
		}
		st.Applications = patched
		if st.CurrentApplication != nil && st.CurrentApplication.ID == id {
			withdrawn := *st.CurrentApplication
			withdrawn.Status = models.StatusWithdrawn
			st.CurrentApplication = &withdrawn
		}
	})
	return nil
}

// UpdateApplicationStatus replaces the matching cached item with the
// server's canonical record.
func (s *ApplicationsSlice) UpdateApplicationStatus(ctx context.Context, id int64, req models.StatusUpdateRequest) error {
	s.begin()
	updated, err := s.svc.UpdateApplicationStatus(ctx, id, req)
	if err != nil {
		s.reject(err, "Failed to update application status")
		return err
	}
	s.commit(func(st *ApplicationsState) {
		patched := make([]models.JobApplication, len(st.Applications))
		copy(patched, st.Applications)
		for i := range patched {
			if patched[i].ID == id {
				patched[i] = *updated
			}
		}
		st.Applications = patched
		if st.CurrentApplication != nil && st.CurrentApplication.ID == id {
			st.CurrentApplication = updated
		}
	})
	return nil
}

func (s *ApplicationsSlice) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
	s.notify()
}

func (s *ApplicationsSlice) ClearCurrentApplication() {
	s.mu.Lock()
	s.state.CurrentApplication = nil
	s.mu.Unlock()
	s.notify()
}
