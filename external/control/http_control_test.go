package control

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStartTranscription_PostsRoom(t *testing.T) {
	var gotPath string
	var gotBody controlRequestBody

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Fatalf("unexpected content type: %s", r.Header.Get("Content-Type"))
		}
		gotPath = r.URL.Path
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("failed to read body: %v", err)
		}
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Fatalf("failed to unmarshal body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	if err := client.StartTranscription(context.Background(), "room-1"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if gotPath != "/start_transcription_ct" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotBody.Room != "room-1" {
		t.Fatalf("unexpected room: %s", gotBody.Room)
	}
}

func TestStopTranscription_PostsRoom(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	if err := client.StopTranscription(context.Background(), "room-1"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if gotPath != "/stop_transcription" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
}

func TestControlRequest_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	if err := client.StartTranscription(context.Background(), "room-1"); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestControlRequest_ServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewHTTPClient(server.URL)
	if err := client.StopTranscription(context.Background(), "room-1"); err == nil {
		t.Fatal("expected error when the backend is unreachable")
	}
}
