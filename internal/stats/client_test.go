package stats

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestReportSendsDuration(t *testing.T) {
	var body map[string]float64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).Report(context.Background(), 42.5); err != nil {
		t.Fatal(err)
	}
	if body["duration"] != 42.5 {
		t.Errorf("duration = %v, want 42.5", body["duration"])
	}
}

func TestReportFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).Report(context.Background(), 1); err == nil {
		t.Fatal("want error on 5xx, got nil")
	}
}
