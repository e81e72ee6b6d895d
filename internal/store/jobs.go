package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/errors"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/models"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/services"
)

// JobsState is the jobs subtree. The list fields hold at most one page;
// a new fetch replaces them wholesale. Error empty means no error.
type JobsState struct {
	Jobs            []models.Job
	CurrentJob      *models.Job
	RecommendedJobs []models.Job
	TotalElements   int64
	TotalPages      int
	CurrentPage     int
	IsLoading       bool
	Error           string
	Filters         models.JobSearchFilters
}

type JobsSlice struct {
	mu     sync.Mutex
	state  JobsState
	svc    *services.JobService
	logger *zap.Logger
	notify func()
}

func newJobsSlice(svc *services.JobService, logger *zap.Logger, notify func()) *JobsSlice {
	return &JobsSlice{svc: svc, logger: logger, notify: notify}
}

// State returns a snapshot. Slice headers are shared; treat the contents
// as read-only.
func (s *JobsSlice) State() JobsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *JobsSlice) begin() {
	s.mu.Lock()
	s.state.IsLoading = true
	s.state.Error = ""
	s.mu.Unlock()
	s.notify()
}

func (s *JobsSlice) reject(err error, fallback string) {
	message := errors.Message(err, fallback)
	s.mu.Lock()
	s.state.IsLoading = false
	s.state.Error = message
	s.mu.Unlock()
	s.logger.Debug("jobs operation rejected", zap.String("error", message))
	s.notify()
}

func (s *JobsSlice) commit(mutate func(*JobsState)) {
	s.mu.Lock()
	s.state.IsLoading = false
	mutate(&s.state)
	s.mu.Unlock()
	s.notify()
}

func (s *JobsSlice) FetchJobs(ctx context.Context, page, size int) error {
	s.begin()
	result, err := s.svc.GetAllJobs(ctx, page, size)
	if err != nil {
		s.reject(err, "Failed to fetch jobs")
		return err
	}
	s.commit(func(st *JobsState) {
		st.Jobs = result.Content
		st.TotalElements = result.TotalElements
		st.TotalPages = result.TotalPages
		st.CurrentPage = result.Number
	})
	return nil
}

// SearchJobs stores the applied filters alongside the result page so the
// caller can re-issue the same search for another page.
func (s *JobsSlice) SearchJobs(ctx context.Context, filters models.JobSearchFilters, page, size int) error {
	s.begin()
	result, err := s.svc.SearchJobs(ctx, filters, page, size)
	if err != nil {
		s.reject(err, "Failed to search jobs")
		return err
	}
	s.commit(func(st *JobsState) {
		st.Jobs = result.Content
		st.TotalElements = result.TotalElements
		st.TotalPages = result.TotalPages
		st.CurrentPage = result.Number
		st.Filters = filters
	})
	return nil
}

func (s *JobsSlice) FetchJobByID(ctx context.Context, id int64) error {
	s.begin()
	job, err := s.svc.GetJobByID(ctx, id)
	if err != nil {
		s.reject(err, "Failed to fetch job")
		return err
	}
	s.commit(func(st *JobsState) {
		st.CurrentJob = job
	})
	return nil
}

func (s *JobsSlice) FetchRecommendedJobs(ctx context.Context, page, size int) error {
	s.begin()
	result, err := s.svc.GetRecommendedJobs(ctx, page, size)
	if err != nil {
		s.reject(err, "Failed to fetch recommended jobs")
		return err
	}
	s.commit(func(st *JobsState) {
		st.RecommendedJobs = result.Content
	})
	return nil
}

func (s *JobsSlice) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
	s.notify()
}

func (s *JobsSlice) ClearCurrentJob() {
	s.mu.Lock()
	s.state.CurrentJob = nil
	s.mu.Unlock()
	s.notify()
}

// UpdateFilters merges the set fields of patch into the held filters.
func (s *JobsSlice) UpdateFilters(patch models.JobSearchFilters) {
	s.mu.Lock()
	f := &s.state.Filters
	if patch.Query != "" {
		f.Query = patch.Query
	}
	if patch.Location != "" {
		f.Location = patch.Location
	}
	if patch.JobType != "" {
		f.JobType = patch.JobType
	}
	if patch.ExperienceLevel != "" {
		f.ExperienceLevel = patch.ExperienceLevel
	}
	if patch.MinSalary != nil {
		f.MinSalary = patch.MinSalary
	}
	if patch.MaxSalary != nil {
		f.MaxSalary = patch.MaxSalary
	}
	if patch.IsRemote != nil {
		f.IsRemote = patch.IsRemote
	}
	if patch.CategoryID != nil {
		f.CategoryID = patch.CategoryID
	}
	if len(patch.SkillIDs) > 0 {
		f.SkillIDs = patch.SkillIDs
	}
	if patch.CompanyName != "" {
		f.CompanyName = patch.CompanyName
	}
	s.mu.Unlock()
	s.notify()
}

func (s *JobsSlice) ClearFilters() {
	s.mu.Lock()
	s.state.Filters = models.JobSearchFilters{}
	s.mu.Unlock()
	s.notify()
}
