package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDescribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req visionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Messages) != 1 || len(req.Messages[0].Content) != 2 {
			t.Fatalf("unexpected message shape: %+v", req.Messages)
		}
		if req.Messages[0].Content[1].ImageURL == nil ||
			req.Messages[0].Content[1].ImageURL.URL != "https://example.com/shot.png" {
			t.Errorf("image url part = %+v", req.Messages[0].Content[1])
		}
		payload := map[string]any{
			"choices": []any{
				map[string]any{
					"message": map[string]any{
						"content": `{"title":"A Photo","description":"A sunny day"}`,
					},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model"})
	described, err := client.Describe(context.Background(), "https://example.com/shot.png")
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if described.Title != "A Photo" || described.Description != "A sunny day" {
		t.Errorf("described = %+v", described)
	}
}

func TestDescribeProseFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"choices": []any{
				map[string]any{
					"message": map[string]any{"content": "A dog on a beach."},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model"})
	described, err := client.Describe(context.Background(), "https://example.com/shot.png")
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if described.Description != "A dog on a beach." {
		t.Errorf("described = %+v", described)
	}
}

func TestDescribeHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL})
	if _, err := client.Describe(context.Background(), "https://example.com/shot.png"); err == nil {
		t.Fatal("expected error for HTTP 502")
	}
}

func TestDescribeRequiresURL(t *testing.T) {
	client := NewClient(Config{APIKey: "test"})
	if _, err := client.Describe(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty url")
	}
}
