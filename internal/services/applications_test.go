package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/api"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/models"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/tokens"
)

func newApplicationService(t *testing.T, baseURL string) *ApplicationService {
	t.Helper()
	client := api.NewClient(zap.NewNop(), tokens.NewMemoryStore(), api.Options{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	})
	return NewApplicationService(client, zap.NewNop())
}

func TestApplyForJobMultipartContract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/applications" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}

		var req models.ApplicationRequest
		if err := json.Unmarshal([]byte(r.FormValue("application")), &req); err != nil {
			t.Fatalf("application field is not JSON: %v", err)
		}
		if req.JobID != 42 || req.CoverLetter != "I build backends." {
			t.Errorf("application payload = %+v", req)
		}

		file, header, err := r.FormFile("resume")
		if err != nil {
			t.Fatalf("resume part missing: %v", err)
		}
		defer file.Close()
		if header.Filename != "resume.pdf" {
			t.Errorf("resume filename = %q", header.Filename)
		}
		contents, _ := io.ReadAll(file)
		if string(contents) != "%PDF-1.4 fake" {
			t.Errorf("resume contents = %q", contents)
		}

		_ = json.NewEncoder(w).Encode(models.JobApplication{
			ID:     7,
			Status: models.StatusPending,
		})
	}))
	defer server.Close()

	svc := newApplicationService(t, server.URL)
	req := models.ApplicationRequest{JobID: 42, CoverLetter: "I build backends."}

	app, err := svc.ApplyForJob(context.Background(), req, "resume.pdf", strings.NewReader("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("ApplyForJob: %v", err)
	}
	if app.ID != 7 || app.Status != models.StatusPending {
		t.Fatalf("returned application = %+v, want the server representation", app)
	}
}

func TestBulkUpdateTravelsInQueryString(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody []byte
	var gotStatus, gotNotes string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		gotStatus = r.URL.Query().Get("status")
		gotNotes = r.URL.Query().Get("notes")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	svc := newApplicationService(t, server.URL)
	err := svc.BulkUpdateApplications(context.Background(), 42, models.StatusRejected, "position filled")
	if err != nil {
		t.Fatalf("BulkUpdateApplications: %v", err)
	}

	if gotMethod != http.MethodPut || gotPath != "/applications/job/42/bulk-update" {
		t.Fatalf("got %s %s", gotMethod, gotPath)
	}
	if gotStatus != "REJECTED" || gotNotes != "position filled" {
		t.Fatalf("query = status=%q notes=%q", gotStatus, gotNotes)
	}
	if len(gotBody) != 0 {
		t.Fatalf("unexpected request body %q", gotBody)
	}
}

func TestWithdrawApplicationEndpoint(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	svc := newApplicationService(t, server.URL)
	if err := svc.WithdrawApplication(context.Background(), 7); err != nil {
		t.Fatalf("WithdrawApplication: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/applications/7/withdraw" {
		t.Fatalf("got %s %s", gotMethod, gotPath)
	}
}

func TestApplicationCountDecodesBareNumber(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/applications/stats/job/42" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte("17"))
	}))
	defer server.Close()

	svc := newApplicationService(t, server.URL)
	count, err := svc.GetApplicationCountForJob(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetApplicationCountForJob: %v", err)
	}
	if count != 17 {
		t.Fatalf("count = %d, want 17", count)
	}
}
