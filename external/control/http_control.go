package control

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/lipika1080/np03frontend/internal/control"
)

const (
	startTranscriptionPath = "/start_transcription_ct"
	stopTranscriptionPath  = "/stop_transcription"

	requestTimeout = 10 * time.Second
)

type controlRequestBody struct {
	Room string `json:"room"`
}

type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string) control.Client {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func (c *HTTPClient) StartTranscription(ctx context.Context, room string) error {
	return c.post(ctx, startTranscriptionPath, room)
}

func (c *HTTPClient) StopTranscription(ctx context.Context, room string) error {
	return c.post(ctx, stopTranscriptionPath, room)
}

func (c *HTTPClient) post(ctx context.Context, path, room string) error {
	b, err := json.Marshal(controlRequestBody{Room: room})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// The response body is implementation-defined and never interpreted
	// for control flow; it is only logged.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	slog.Debug("control request completed", "path", path, "room", room, "status", resp.StatusCode, "body", string(body))

	if !isHTTPSuccessStatus(resp.StatusCode) {
		return fmt.Errorf("control request %s returned status %d", path, resp.StatusCode)
	}
	return nil
}

func isHTTPSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
