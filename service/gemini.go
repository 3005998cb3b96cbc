package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/mattiafranchi89-debug/Mattia-UW/models"
)

const (
	requestTimeout = 120 * time.Second
	maxAttempts    = 3
	initialBackoff = time.Second
)

// Content is one turn of model input or output.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part is a single piece of content: text or an inlined file.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData carries base64-encoded file bytes with their MIME type.
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Tool enables a model capability for a request.
type Tool struct {
	GoogleSearch *GoogleSearch `json:"google_search,omitempty"`
}

// GoogleSearch enables web-search grounding.
type GoogleSearch struct{}

// GenerationConfig constrains the model output.
type GenerationConfig struct {
	Temperature      *float64       `json:"temperature,omitempty"`
	ResponseMimeType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

// GenerateRequest is the payload of one generateContent call.
type GenerateRequest struct {
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	Contents          []Content         `json:"contents"`
	Tools             []Tool            `json:"tools,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// GenerateResponse is the parsed generateContent reply.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`

	PromptFeedback struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback,omitempty"`

	Error *APIError `json:"error,omitempty"`
}

// Candidate is one model answer, with its grounding metadata when a search
// tool was enabled.
type Candidate struct {
	Content           Content            `json:"content"`
	FinishReason      string             `json:"finishReason,omitempty"`
	GroundingMetadata *GroundingMetadata `json:"groundingMetadata,omitempty"`
}

// GroundingMetadata lists the web sources an answer is grounded on.
type GroundingMetadata struct {
	GroundingChunks []GroundingChunk `json:"groundingChunks"`
}

// GroundingChunk is one grounded source reference.
type GroundingChunk struct {
	Web *WebSource `json:"web,omitempty"`
}

// WebSource is the web location of a grounding chunk.
type WebSource struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

// APIError is the error object the API embeds in a reply body.
type APIError struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Status  string `json:"status,omitempty"`
}

// Text concatenates all text parts of all candidates.
func (r *GenerateResponse) Text() string {
	var b strings.Builder
	for _, candidate := range r.Candidates {
		for _, part := range candidate.Content.Parts {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// GeminiClient calls the Gemini generateContent API directly over HTTP with
// typed payloads. Transient transport failures (network errors, 5xx) are
// retried with exponential backoff; 4xx responses, including rate limits,
// fail immediately so the caller can classify them.
type GeminiClient struct {
	cfg  Config
	http *http.Client
}

// NewGeminiClient builds a client from the injected configuration.
func NewGeminiClient(cfg Config) *GeminiClient {
	return &GeminiClient{
		cfg:  cfg,
		http: &http.Client{Timeout: requestTimeout},
	}
}

// GenerateContent performs one generateContent call against the configured
// model and returns the parsed response.
func (c *GeminiClient) GenerateContent(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.cfg.Endpoint, c.cfg.Model)

	var resp *GenerateResponse
	err = retry.Do(
		func() error {
			var attemptErr error
			resp, attemptErr = c.doGenerate(ctx, url, payload)
			return attemptErr
		},
		retry.Attempts(maxAttempts),
		retry.Delay(initialBackoff),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *GeminiClient) doGenerate(ctx context.Context, url string, payload []byte) (*GenerateResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.cfg.APIKey)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		apiErr := fmt.Errorf("gemini API error: %d - %s", httpResp.StatusCode, string(body))
		if httpResp.StatusCode >= 500 {
			return nil, apiErr
		}
		return nil, retry.Unrecoverable(apiErr)
	}

	var resp GenerateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("failed to decode response: %w", err))
	}
	if resp.Error != nil && resp.Error.Message != "" {
		return nil, retry.Unrecoverable(fmt.Errorf("gemini API error: %s (code: %d)", resp.Error.Message, resp.Error.Code))
	}
	if resp.PromptFeedback.BlockReason != "" {
		return nil, retry.Unrecoverable(fmt.Errorf("gemini API blocked prompt: %s", resp.PromptFeedback.BlockReason))
	}
	return &resp, nil
}

// GenerateSection runs one schema-constrained extraction call: every encoded
// file plus the section instruction, with strict JSON output.
func (c *GeminiClient) GenerateSection(ctx context.Context, files []models.EncodedFile, instruction string, schema map[string]any) (json.RawMessage, error) {
	temperature := 0.2
	parts := make([]Part, 0, 1+len(files))
	parts = append(parts, Part{Text: instruction})
	for _, f := range files {
		parts = append(parts, Part{InlineData: &InlineData{MimeType: f.MimeType, Data: f.Data}})
	}

	resp, err := c.GenerateContent(ctx, &GenerateRequest{
		Contents: []Content{{Parts: parts}},
		GenerationConfig: &GenerationConfig{
			Temperature:      &temperature,
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(resp.Text()), nil
}
