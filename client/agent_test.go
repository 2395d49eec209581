package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gatherly-api/models"
)

func TestAgent_ListDecodesActivities(t *testing.T) {
	date := time.Date(2025, 3, 5, 18, 0, 0, 0, time.UTC)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/activities" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode([]models.Activity{
			{ID: "a1", Title: "Concert", Category: "music", Date: date},
		})
	}))
	defer ts.Close()

	agent := NewAgent(ts.URL)
	activities, err := agent.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(activities) != 1 || activities[0].Title != "Concert" {
		t.Fatalf("unexpected activities: %+v", activities)
	}
}

func TestAgent_SendsBearerToken(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.Activity{})
	}))
	defer ts.Close()

	agent := NewAgent(ts.URL)
	agent.SetToken("token-123")
	if _, err := agent.List(context.Background()); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if gotAuth != "Bearer token-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestAgent_NonSuccessMapsToAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "Access denied"})
	}))
	defer ts.Close()

	agent := NewAgent(ts.URL)
	err := agent.Delete(context.Background(), "a1")
	if err == nil {
		t.Fatal("expected error for 403 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusForbidden || apiErr.Message != "Access denied" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
}

func TestAgent_ErrorBodyWithoutMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	agent := NewAgent(ts.URL)
	err := agent.Update(context.Background(), models.Activity{ID: "a1"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "request failed" {
		t.Fatalf("expected fallback message, got %q", apiErr.Message)
	}
}
