// Package backend is the HTTP client for the generation service. The
// service performs the actual PDF analysis, animation rendering and question
// answering; this client only moves JSON and files across the wire.
//
// Calls carry no timeout or retry of their own: the caller's context bounds
// each request.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/sorenlabs/soren/core"
)

type Client struct {
	baseURL string
	http    *http.Client
}

var (
	_ core.Uploader    = (*Client)(nil)
	_ core.DoubtClient = (*Client)(nil)
)

// New returns a client for the backend at baseURL, e.g.
// "http://localhost:5001".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
}

// NewWithHTTPClient is New with a caller-supplied http.Client.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	c := New(baseURL)
	if hc != nil {
		c.http = hc
	}
	return c
}

type uploadResponse struct {
	Success   bool   `json:"success"`
	VideoPath string `json:"video_path"`
	VideoID   string `json:"video_id"`
	Error     string `json:"error"`
}

// Upload posts the document as multipart form data and returns the generated
// video reference. A backend-reported failure maps to ErrUploadRejected, a
// transport failure to ErrBackendUnreachable.
func (c *Client) Upload(ctx context.Context, upload core.FileUpload) (*core.GenerationResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", upload.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload body: %w", err)
	}
	if _, err := io.Copy(part, upload.Data); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrBackendUnreachable, err)
	}
	defer resp.Body.Close()

	var decoded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrBackendUnreachable, err)
	}
	if !decoded.Success {
		msg := decoded.Error
		if msg == "" {
			msg = "Failed"
		}
		return nil, fmt.Errorf("%w: %s", core.ErrUploadRejected, msg)
	}

	return &core.GenerationResult{
		VideoURL: decoded.VideoPath,
		VideoID:  decoded.VideoID,
	}, nil
}

type contextResponse struct {
	Success bool                 `json:"success"`
	Context core.DocumentContext `json:"context"`
}

// FetchContext resolves the source material for a question. A non-success
// response maps to ErrContextUnavailable.
func (c *Client) FetchContext(ctx context.Context, req core.ContextRequest) (*core.DocumentContext, error) {
	var decoded contextResponse
	if err := c.postJSON(ctx, "/api/context", req, &decoded); err != nil {
		return nil, err
	}
	if !decoded.Success {
		return nil, core.ErrContextUnavailable
	}
	return &decoded.Context, nil
}

type doubtRequest struct {
	Question     string            `json:"question"`
	VideoID      string            `json:"video_id"`
	Timestamp    float64           `json:"timestamp"`
	ExtraContext doubtExtraContext `json:"extra_context"`
}

type doubtExtraContext struct {
	PDFText      string `json:"pdf_text"`
	ManimCode    string `json:"manim_code"`
	PDFName      string `json:"pdf_name"`
	OutputFolder string `json:"output_folder"`
}

type doubtResponse struct {
	Success     bool     `json:"success"`
	Answer      string   `json:"answer"`
	Sources     []string `json:"sources"`
	ContextUsed string   `json:"context_used"`
	Error       string   `json:"error"`
}

// AskDoubt submits a question with its playback timestamp and resolved
// context. A backend-reported failure maps to ErrAnswerFailed with the
// backend's message.
func (c *Client) AskDoubt(ctx context.Context, req core.DoubtRequest) (*core.Answer, error) {
	payload := doubtRequest{
		Question:  req.Question,
		VideoID:   req.VideoID,
		Timestamp: req.Timestamp,
		ExtraContext: doubtExtraContext{
			PDFText:      req.Context.PDFText,
			ManimCode:    req.Context.ManimCode,
			PDFName:      req.PDFName,
			OutputFolder: req.OutputFolder,
		},
	}

	var decoded doubtResponse
	if err := c.postJSON(ctx, "/api/doubt", payload, &decoded); err != nil {
		return nil, err
	}
	if !decoded.Success {
		msg := decoded.Error
		if msg == "" {
			msg = "Failed to get answer"
		}
		return nil, fmt.Errorf("%w: %s", core.ErrAnswerFailed, msg)
	}

	return &core.Answer{
		Text:        decoded.Answer,
		Sources:     decoded.Sources,
		ContextUsed: decoded.ContextUsed,
	}, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrBackendUnreachable, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", core.ErrBackendUnreachable, err)
	}
	return nil
}
