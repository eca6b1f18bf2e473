// Package transcribe talks to the speech-recognition proxy endpoint.
package transcribe

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iyashjayesh/captune-ai/models"
)

// transcribeRequest is the proxy's request body: binary-safe base64 audio
// plus the flag asking for segment-level timestamps.
type transcribeRequest struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		ReturnTimestamps bool `json:"return_timestamps"`
	} `json:"parameters"`
}

// transcribeResponse is the expected response shape. Chunks is a pointer so
// a response missing the field entirely is distinguishable from an empty
// (but valid) segment list.
type transcribeResponse struct {
	Chunks *[]models.RawSegment `json:"chunks"`
}

// Client performs exactly one transcription attempt per call. Retry policy,
// if any, belongs to the caller, which can branch on
// models.TranscriptionError.Transient.
type Client struct {
	Endpoint   string
	Token      string
	HTTPClient *http.Client
	Log        *logrus.Logger
}

// NewClient builds a Client with a bounded request timeout.
func NewClient(endpoint, token string, timeout time.Duration, log *logrus.Logger) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		Endpoint:   endpoint,
		Token:      token,
		HTTPClient: &http.Client{Timeout: timeout},
		Log:        log,
	}
}

// Transcribe sends the audio asset to the recognition endpoint and returns
// the service's raw segment list unmodified. The timestamps in the result are
// untrusted; callers must normalize them before use.
func (c *Client) Transcribe(ctx context.Context, audio models.MediaAsset) ([]models.RawSegment, error) {
	reqBody := transcribeRequest{
		Inputs: base64.StdEncoding.EncodeToString(audio.Data),
	}
	reqBody.Parameters.ReturnTimestamps = true

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &models.TranscriptionError{Message: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &models.TranscriptionError{Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	c.Log.WithField("audio", audio.FileName).Info("sending audio for transcription")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &models.TranscriptionError{Transient: true, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.TranscriptionError{Transient: true, Message: "read response", Err: err}
	}

	if resp.StatusCode >= 500 {
		return nil, &models.TranscriptionError{
			Transient: true,
			Message:   fmt.Sprintf("service returned status %d", resp.StatusCode),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &models.TranscriptionError{
			Message: fmt.Sprintf("service returned status %d: %s", resp.StatusCode, tail(body, 200)),
		}
	}

	var parsed transcribeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &models.TranscriptionError{Message: "decode response", Err: err}
	}
	if parsed.Chunks == nil {
		return nil, &models.TranscriptionError{Message: "response has no chunks field"}
	}

	c.Log.WithField("segments", len(*parsed.Chunks)).Info("transcription received")
	return *parsed.Chunks, nil
}

func tail(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[len(b)-n:])
}
