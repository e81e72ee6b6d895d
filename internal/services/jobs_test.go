package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/api"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/models"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/tokens"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  url.Values
}

// newCaptureServer records every request and answers with an empty job page.
func newCaptureServer(t *testing.T) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Method = r.Method
		captured.Path = r.URL.Path
		captured.Query = r.URL.Query()
		_ = json.NewEncoder(w).Encode(models.Page[models.Job]{Content: []models.Job{}})
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func newJobService(t *testing.T, baseURL string) *JobService {
	t.Helper()
	client := api.NewClient(zap.NewNop(), tokens.NewMemoryStore(), api.Options{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	})
	return NewJobService(client, zap.NewNop())
}

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestSearchWithQueryUsesSearchEndpoint(t *testing.T) {
	server, captured := newCaptureServer(t)
	svc := newJobService(t, server.URL)

	filters := models.JobSearchFilters{Query: "engineer", Location: "Remote"}
	if _, err := svc.SearchJobs(context.Background(), filters, 0, 20); err != nil {
		t.Fatalf("SearchJobs: %v", err)
	}

	if captured.Path != "/jobs/search" {
		t.Fatalf("path = %q, want /jobs/search", captured.Path)
	}
	if got := captured.Query.Get("query"); got != "engineer" {
		t.Fatalf("query param = %q", got)
	}
	if got := captured.Query.Get("location"); got != "Remote" {
		t.Fatalf("location param = %q", got)
	}
}

func TestSearchWithoutQueryUsesFilterEndpoint(t *testing.T) {
	server, captured := newCaptureServer(t)
	svc := newJobService(t, server.URL)

	filters := models.JobSearchFilters{Location: "Remote"}
	if _, err := svc.SearchJobs(context.Background(), filters, 0, 20); err != nil {
		t.Fatalf("SearchJobs: %v", err)
	}

	if captured.Path != "/jobs/filter" {
		t.Fatalf("path = %q, want /jobs/filter", captured.Path)
	}
	if captured.Query.Has("query") {
		t.Fatal("empty query must not be serialized")
	}
}

func TestSearchSerializesOnlySetFilters(t *testing.T) {
	server, captured := newCaptureServer(t)
	svc := newJobService(t, server.URL)

	filters := models.JobSearchFilters{
		JobType:   models.JobTypeFullTime,
		MinSalary: floatPtr(90000),
		IsRemote:  boolPtr(true),
	}
	if _, err := svc.SearchJobs(context.Background(), filters, 0, 20); err != nil {
		t.Fatalf("SearchJobs: %v", err)
	}

	if got := captured.Query.Get("jobType"); got != string(models.JobTypeFullTime) {
		t.Fatalf("jobType = %q", got)
	}
	if got := captured.Query.Get("minSalary"); got != "90000" {
		t.Fatalf("minSalary = %q", got)
	}
	if got := captured.Query.Get("isRemote"); got != "true" {
		t.Fatalf("isRemote = %q", got)
	}
	for _, absent := range []string{"maxSalary", "location", "experienceLevel", "categoryId"} {
		if captured.Query.Has(absent) {
			t.Fatalf("unset filter %q was serialized", absent)
		}
	}
}

func TestPaginationDefaults(t *testing.T) {
	server, captured := newCaptureServer(t)
	svc := newJobService(t, server.URL)

	if _, err := svc.GetAllJobs(context.Background(), -1, 0); err != nil {
		t.Fatalf("GetAllJobs: %v", err)
	}
	if got := captured.Query.Get("page"); got != "0" {
		t.Fatalf("page = %q, want 0", got)
	}
	if got := captured.Query.Get("size"); got != "20" {
		t.Fatalf("size = %q, want 20", got)
	}
}

func TestGetJobsBySkillsRepeatsParam(t *testing.T) {
	server, captured := newCaptureServer(t)
	svc := newJobService(t, server.URL)

	if _, err := svc.GetJobsBySkills(context.Background(), []int64{3, 14, 27}, 0, 20); err != nil {
		t.Fatalf("GetJobsBySkills: %v", err)
	}
	if captured.Path != "/jobs/skills" {
		t.Fatalf("path = %q", captured.Path)
	}
	got := captured.Query["skillIds"]
	want := []string{"3", "14", "27"}
	if len(got) != len(want) {
		t.Fatalf("skillIds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("skillIds = %v, want %v", got, want)
		}
	}
}

func TestJobLifecycleEndpoints(t *testing.T) {
	server, captured := newCaptureServer(t)
	svc := newJobService(t, server.URL)
	ctx := context.Background()

	if err := svc.ActivateJob(ctx, 9); err != nil {
		t.Fatalf("ActivateJob: %v", err)
	}
	if captured.Method != http.MethodPut || captured.Path != "/jobs/9/activate" {
		t.Fatalf("got %s %s", captured.Method, captured.Path)
	}

	if err := svc.DeactivateJob(ctx, 9); err != nil {
		t.Fatalf("DeactivateJob: %v", err)
	}
	if captured.Method != http.MethodPut || captured.Path != "/jobs/9/deactivate" {
		t.Fatalf("got %s %s", captured.Method, captured.Path)
	}

	if err := svc.DeleteJob(ctx, 9); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
	if captured.Method != http.MethodDelete || captured.Path != "/jobs/9" {
		t.Fatalf("got %s %s", captured.Method, captured.Path)
	}
}
