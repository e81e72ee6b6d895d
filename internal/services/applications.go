package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"go.uber.org/zap"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/api"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/errors"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/models"
)

const applicationsBasePath = "/applications"

// Multipart field contract for apply requests: the structured payload is
// JSON-encoded into "application", the resume file goes into "resume".
const (
	applicationField = "application"
	resumeField      = "resume"
)

// ApplicationService shapes job-application requests. Stateless.
type ApplicationService struct {
	client *api.Client
	logger *zap.Logger
}

func NewApplicationService(client *api.Client, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{client: client, logger: logger}
}

// ApplyForJob submits a multipart application with the resume attached.
// The server's canonical representation of the new application is returned,
// never a client-computed one.
func (s *ApplicationService) ApplyForJob(ctx context.Context, req models.ApplicationRequest, resumeName string, resume io.Reader) (*models.JobApplication, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Internal("marshaling application payload", err)
	}

	s.logger.Debug("submitting application",
		zap.Int64("job_id", req.JobID),
		zap.String("resume", resumeName))

	var out models.JobApplication
	fields := map[string]string{applicationField: string(payload)}
	if err := s.client.Upload(ctx, applicationsBasePath, fields, resumeField, resumeName, resume, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ApplicationService) GetApplicationByID(ctx context.Context, id int64) (*models.JobApplication, error) {
	var out models.JobApplication
	if err := s.client.Get(ctx, fmt.Sprintf("%s/%d", applicationsBasePath, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ApplicationService) GetMyApplications(ctx context.Context, page, size int) (*models.Page[models.JobApplication], error) {
	var out models.Page[models.JobApplication]
	path := applicationsBasePath + "/my-applications?" + pageQuery(page, size).Encode()
	if err := s.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ApplicationService) GetApplicationsForJob(ctx context.Context, jobID int64, page, size int) (*models.Page[models.JobApplication], error) {
	var out models.Page[models.JobApplication]
	path := fmt.Sprintf("%s/job/%d?%s", applicationsBasePath, jobID, pageQuery(page, size).Encode())
	if err := s.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ApplicationService) GetApplicationsForCompany(ctx context.Context, companyID int64, page, size int) (*models.Page[models.JobApplication], error) {
	var out models.Page[models.JobApplication]
	path := fmt.Sprintf("%s/company/%d?%s", applicationsBasePath, companyID, pageQuery(page, size).Encode())
	if err := s.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ApplicationService) GetApplicationsByStatus(ctx context.Context, status models.ApplicationStatus, page, size int) (*models.Page[models.JobApplication], error) {
	var out models.Page[models.JobApplication]
	path := fmt.Sprintf("%s/status/%s?%s", applicationsBasePath, status, pageQuery(page, size).Encode())
	if err := s.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ApplicationService) UpdateApplicationStatus(ctx context.Context, id int64, req models.StatusUpdateRequest) (*models.JobApplication, error) {
	var out models.JobApplication
	if err := s.client.Put(ctx, fmt.Sprintf("%s/%d/status", applicationsBasePath, id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ApplicationService) WithdrawApplication(ctx context.Context, id int64) error {
	return s.client.Put(ctx, fmt.Sprintf("%s/%d/withdraw", applicationsBasePath, id), nil, nil)
}

func (s *ApplicationService) GetApplicationCountForJob(ctx context.Context, jobID int64) (int64, error) {
	var count int64
	if err := s.client.Get(ctx, fmt.Sprintf("%s/stats/job/%d", applicationsBasePath, jobID), &count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *ApplicationService) GetMyApplicationCount(ctx context.Context) (int64, error) {
	var count int64
	if err := s.client.Get(ctx, applicationsBasePath+"/stats/my-applications-count", &count); err != nil {
		return 0, err
	}
	return count, nil
}

// BulkUpdateApplications moves every application of a job to the given
// status; parameters travel in the query string, not a body.
func (s *ApplicationService) BulkUpdateApplications(ctx context.Context, jobID int64, status models.ApplicationStatus, notes string) error {
	params := url.Values{}
	params.Set("status", string(status))
	if notes != "" {
		params.Set("notes", notes)
	}
	path := fmt.Sprintf("%s/job/%d/bulk-update?%s", applicationsBasePath, jobID, params.Encode())
	return s.client.Put(ctx, path, nil, nil)
}
