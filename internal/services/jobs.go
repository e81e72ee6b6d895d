package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/api"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/models"
)

const (
	DefaultPage = 0
	DefaultSize = 20

	jobsBasePath = "/jobs"
)

// JobService shapes job-resource requests. It holds no state and performs
// no caching; every method builds exactly one HTTP call.
type JobService struct {
	client *api.Client
	logger *zap.Logger
}

func NewJobService(client *api.Client, logger *zap.Logger) *JobService {
	return &JobService{client: client, logger: logger}
}

func pageQuery(page, size int) url.Values {
	if size <= 0 {
		size = DefaultSize
	}
	if page < 0 {
		page = DefaultPage
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))
	return params
}

func (s *JobService) GetAllJobs(ctx context.Context, page, size int) (*models.Page[models.Job], error) {
	var out models.Page[models.Job]
	path := jobsBasePath + "?" + pageQuery(page, size).Encode()
	if err := s.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *JobService) GetJobByID(ctx context.Context, id int64) (*models.Job, error) {
	var out models.Job
	if err := s.client.Get(ctx, fmt.Sprintf("%s/%d", jobsBasePath, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchJobs serializes only the filters that are set. A present free-text
// query routes to the relevance-ranked /jobs/search endpoint; without one
// the request goes to /jobs/filter. The two are distinct server
// capabilities and the routing must be preserved exactly.
func (s *JobService) SearchJobs(ctx context.Context, filters models.JobSearchFilters, page, size int) (*models.Page[models.Job], error) {
	params := pageQuery(page, size)

	if filters.Query != "" {
		params.Set("query", filters.Query)
	}
	if filters.Location != "" {
		params.Set("location", filters.Location)
	}
	if filters.JobType != "" {
		params.Set("jobType", string(filters.JobType))
	}
	if filters.ExperienceLevel != "" {
		params.Set("experienceLevel", string(filters.ExperienceLevel))
	}
	if filters.MinSalary != nil {
		params.Set("minSalary", strconv.FormatFloat(*filters.MinSalary, 'f', -1, 64))
	}
	if filters.MaxSalary != nil {
		params.Set("maxSalary", strconv.FormatFloat(*filters.MaxSalary, 'f', -1, 64))
	}
	if filters.IsRemote != nil {
		params.Set("isRemote", strconv.FormatBool(*filters.IsRemote))
	}
	if filters.CategoryID != nil {
		params.Set("categoryId", strconv.FormatInt(*filters.CategoryID, 10))
	}

	endpoint := jobsBasePath + "/filter"
	if filters.Query != "" {
		endpoint = jobsBasePath + "/search"
	}

	s.logger.Debug("searching jobs",
		zap.String("endpoint", endpoint),
		zap.String("query", filters.Query))

	var out models.Page[models.Job]
	if err := s.client.Get(ctx, endpoint+"?"+params.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *JobService) GetJobsByCompany(ctx context.Context, companyID int64, page, size int) (*models.Page[models.Job], error) {
	var out models.Page[models.Job]
	path := fmt.Sprintf("%s/company/%d?%s", jobsBasePath, companyID, pageQuery(page, size).Encode())
	if err := s.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *JobService) GetJobsByCategory(ctx context.Context, categoryID int64, page, size int) (*models.Page[models.Job], error) {
	var out models.Page[models.Job]
	path := fmt.Sprintf("%s/category/%d?%s", jobsBasePath, categoryID, pageQuery(page, size).Encode())
	if err := s.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *JobService) GetJobsBySkills(ctx context.Context, skillIDs []int64, page, size int) (*models.Page[models.Job], error) {
	params := pageQuery(page, size)
	for _, id := range skillIDs {
		params.Add("skillIds", strconv.FormatInt(id, 10))
	}

	var out models.Page[models.Job]
	if err := s.client.Get(ctx, jobsBasePath+"/skills?"+params.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *JobService) GetRecommendedJobs(ctx context.Context, page, size int) (*models.Page[models.Job], error) {
	var out models.Page[models.Job]
	path := jobsBasePath + "/recommendations?" + pageQuery(page, size).Encode()
	if err := s.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *JobService) CreateJob(ctx context.Context, req models.JobCreateRequest) (*models.Job, error) {
	var out models.Job
	if err := s.client.Post(ctx, jobsBasePath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *JobService) UpdateJob(ctx context.Context, id int64, req models.JobCreateRequest) (*models.Job, error) {
	var out models.Job
	if err := s.client.Put(ctx, fmt.Sprintf("%s/%d", jobsBasePath, id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *JobService) ActivateJob(ctx context.Context, id int64) error {
	return s.client.Put(ctx, fmt.Sprintf("%s/%d/activate", jobsBasePath, id), nil, nil)
}

func (s *JobService) DeactivateJob(ctx context.Context, id int64) error {
	return s.client.Put(ctx, fmt.Sprintf("%s/%d/deactivate", jobsBasePath, id), nil, nil)
}

func (s *JobService) DeleteJob(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("%s/%d", jobsBasePath, id))
}
