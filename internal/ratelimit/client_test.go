package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iyashjayesh/captune-ai/models"
)

func TestCheckParsesQuota(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("want GET, got %s", r.Method)
		}
		w.Write([]byte(`{"remaining":2,"total":3}`))
	}))
	defer srv.Close()

	quota, err := NewClient(srv.URL).Check(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if quota.Remaining != 2 || quota.Total != 3 {
		t.Errorf("quota = %+v, want {2 3}", quota)
	}
}

func TestRecordExhaustedQuota(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message":"Rate limit exceeded. Please wait before processing more videos."}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Record(context.Background())

	var rlErr *models.RateLimitError
	if !errors.As(err, &rlErr) {
		t.Fatalf("want RateLimitError, got %v", err)
	}
	if rlErr.Message == "" {
		t.Error("collaborator message was dropped")
	}
}

func TestRecordSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("want POST, got %s", r.Method)
		}
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).Record(context.Background()); err != nil {
		t.Fatal(err)
	}
}
