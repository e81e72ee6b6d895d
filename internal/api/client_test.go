package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/errors"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/models"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/tokens"
)

func newTestClient(t *testing.T, baseURL string, store tokens.Store, onExpired func()) *Client {
	t.Helper()
	return NewClient(zap.NewNop(), store, Options{
		BaseURL:       baseURL,
		Timeout:       5 * time.Second,
		OnAuthExpired: onExpired,
	})
}

func writeAuthResponse(w http.ResponseWriter, access string) {
	_ = json.NewEncoder(w).Encode(models.AuthResponse{
		AccessToken:  access,
		RefreshToken: "refresh-1",
		TokenType:    "Bearer",
		ExpiresIn:    3600,
	})
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	store := tokens.NewMemoryStore()
	_ = store.SetPair("access-1", "refresh-1")
	client := newTestClient(t, server.URL, store, nil)

	var out struct{}
	if err := client.Get(context.Background(), "/jobs", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "Bearer access-1" {
		t.Fatalf("Authorization = %q, want %q", gotAuth, "Bearer access-1")
	}
}

func TestNoTokenSendsUnauthenticated(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, tokens.NewMemoryStore(), nil)

	var out struct{}
	if err := client.Get(context.Background(), "/jobs", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want empty", gotAuth)
	}
}

func TestRefreshRetryOn401(t *testing.T) {
	var refreshCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)

		var req models.RefreshRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.RefreshToken != "refresh-1" {
			t.Errorf("refresh token = %q, want refresh-1", req.RefreshToken)
		}
		writeAuthResponse(w, "access-2")
	})
	mux.HandleFunc("/jobs/1", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(models.Job{ID: 1, Title: "Backend Engineer"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	store := tokens.NewMemoryStore()
	_ = store.SetPair("stale", "refresh-1")
	client := newTestClient(t, server.URL, store, nil)

	var job models.Job
	if err := client.Get(context.Background(), "/jobs/1", &job); err != nil {
		t.Fatalf("Get after 401: %v", err)
	}
	if job.Title != "Backend Engineer" {
		t.Fatalf("caller observed %+v, want the retried response", job)
	}
	if n := atomic.LoadInt32(&refreshCalls); n != 1 {
		t.Fatalf("refresh called %d times, want 1", n)
	}
	if access, _ := store.Access(); access != "access-2" {
		t.Fatalf("persisted access token = %q, want access-2", access)
	}
}

func TestRefreshFailureClearsTokensAndPropagatesOriginal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/jobs/1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	expired := false
	store := tokens.NewMemoryStore()
	_ = store.SetPair("stale", "refresh-1")
	client := newTestClient(t, server.URL, store, func() { expired = true })

	var job models.Job
	err := client.Get(context.Background(), "/jobs/1", &job)
	if err == nil {
		t.Fatal("expected error after failed refresh")
	}
	if errors.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("error status = %d, want 401", errors.StatusOf(err))
	}
	if got := errors.Message(err, ""); got != "token expired" {
		t.Fatalf("error message = %q, want the original 401 payload", got)
	}
	if _, ok := store.Access(); ok {
		t.Fatal("access token not cleared")
	}
	if _, ok := store.Refresh(); ok {
		t.Fatal("refresh token not cleared")
	}
	if !expired {
		t.Fatal("auth-expired hook not fired")
	}
}

func TestNo401RetryWithoutRefreshToken(t *testing.T) {
	var refreshCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
	})
	mux.HandleFunc("/jobs/1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	store := tokens.NewMemoryStore()
	_ = store.SetAccess("stale")
	client := newTestClient(t, server.URL, store, nil)

	var job models.Job
	err := client.Get(context.Background(), "/jobs/1", &job)
	if errors.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("error = %v, want 401", err)
	}
	if n := atomic.LoadInt32(&refreshCalls); n != 0 {
		t.Fatalf("refresh called %d times, want 0", n)
	}
}

func TestConcurrent401sShareOneRefresh(t *testing.T) {
	var refreshCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		// Held open long enough that every 401 handler joins this call.
		time.Sleep(200 * time.Millisecond)
		writeAuthResponse(w, "access-2")
	})
	mux.HandleFunc("/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(models.Page[models.Job]{})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	store := tokens.NewMemoryStore()
	_ = store.SetPair("stale", "refresh-1")
	client := newTestClient(t, server.URL, store, nil)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var out models.Page[models.Job]
			errs[i] = client.Get(context.Background(), "/jobs", &out)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d: %v", i, err)
		}
	}
	if n := atomic.LoadInt32(&refreshCalls); n != 1 {
		t.Fatalf("refresh called %d times, want 1", n)
	}
}

func TestServerErrorMessageExtraction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"title must not be blank"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, tokens.NewMemoryStore(), nil)

	err := client.Post(context.Background(), "/jobs", map[string]string{}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := errors.Message(err, "fallback"); got != "title must not be blank" {
		t.Fatalf("message = %q", got)
	}
	if errors.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", errors.StatusOf(err))
	}
}

func TestLoginPersistsTokenPair(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(models.AuthResponse{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			User:         models.User{ID: 4, FullName: "Ada Example"},
		})
	}))
	defer server.Close()

	store := tokens.NewMemoryStore()
	client := newTestClient(t, server.URL, store, nil)

	auth, err := client.Login(context.Background(), models.LoginRequest{Username: "ada@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if auth.User.ID != 4 {
		t.Fatalf("user = %+v", auth.User)
	}
	access, _ := store.Access()
	refresh, _ := store.Refresh()
	if access != "access-1" || refresh != "refresh-1" {
		t.Fatalf("persisted pair = (%q, %q)", access, refresh)
	}
}

func TestCurrentUserUsesUsersResource(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(models.User{ID: 4, Email: "ada@example.com"})
	}))
	defer server.Close()

	store := tokens.NewMemoryStore()
	_ = store.SetAccess("access-1")
	client := newTestClient(t, server.URL, store, nil)

	user, err := client.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if gotPath != "/users/me" {
		t.Fatalf("path = %q, want /users/me", gotPath)
	}
	if user.ID != 4 {
		t.Fatalf("user = %+v", user)
	}
}

func TestLogoutClearsTokensEvenOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	store := tokens.NewMemoryStore()
	_ = store.SetPair("access-1", "refresh-1")
	client := newTestClient(t, server.URL, store, nil)

	if err := client.Logout(context.Background()); err == nil {
		t.Fatal("expected server error to propagate")
	}
	if _, ok := store.Access(); ok {
		t.Fatal("access token survived logout")
	}
}
