package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sorenlabs/soren/core"
)

// DefaultContextWindow is the seconds of narration around the paused
// timestamp the legacy player sends with each question.
const DefaultContextWindow = 15

// LegacyDoubtRequest is the wire shape of the older video-player page's chat
// widget. It addresses videos by job id and ordinal instead of video id.
type LegacyDoubtRequest struct {
	JobID         string  `json:"job_id"`
	VideoNumber   int     `json:"video_number"`
	Timestamp     float64 `json:"timestamp"`
	Question      string  `json:"question"`
	ContextWindow int     `json:"context_window"`
}

type legacyDoubtResponse struct {
	Answer string `json:"answer"`
}

// AskDoubtLegacy posts to the legacy answer endpoint. Unlike the current
// endpoints it signals failure with a non-2xx status, not a success flag.
func (c *Client) AskDoubtLegacy(ctx context.Context, req LegacyDoubtRequest) (string, error) {
	if req.ContextWindow == 0 {
		req.ContextWindow = DefaultContextWindow
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ask-doubt", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrBackendUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", core.ErrAnswerFailed, resp.StatusCode)
	}

	var decoded legacyDoubtResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrBackendUnreachable, err)
	}
	return decoded.Answer, nil
}
