package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattiafranchi89-debug/Mattia-UW/models"
)

func testClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGeminiClient(Config{APIKey: "test-key", Model: "test-model", Endpoint: srv.URL})
}

func textResponse(text string) GenerateResponse {
	return GenerateResponse{
		Candidates: []Candidate{{Content: Content{Parts: []Part{{Text: text}}}}},
	}
}

func TestGenerateContentSendsTypedRequest(t *testing.T) {
	var gotPath, gotKey string
	var gotBody GenerateRequest

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(textResponse("ok"))
	})

	resp, err := client.GenerateContent(context.Background(), &GenerateRequest{
		Contents: []Content{{Parts: []Part{{Text: "hello"}}}},
	})
	require.NoError(t, err)

	assert.Equal(t, "/models/test-model:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "hello", gotBody.Contents[0].Parts[0].Text)
	assert.Equal(t, "ok", resp.Text())
}

func TestGenerateContentRetriesServerErrors(t *testing.T) {
	calls := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "upstream hiccup", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(textResponse("recovered"))
	})

	resp, err := client.GenerateContent(context.Background(), &GenerateRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "recovered", resp.Text())
}

func TestGenerateContentDoesNotRetryClientErrors(t *testing.T) {
	calls := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"quota exceeded"}}`))
	})

	_, err := client.GenerateContent(context.Background(), &GenerateRequest{})
	require.Error(t, err)
	assert.Equal(t, 1, calls, "4xx responses must not be retried")
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "RESOURCE_EXHAUSTED")
}

func TestGenerateContentBlockedPrompt(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"promptFeedback":{"blockReason":"SAFETY"}}`))
	})

	_, err := client.GenerateContent(context.Background(), &GenerateRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAFETY")
}

func TestGenerateSectionBuildsInlineParts(t *testing.T) {
	var gotBody GenerateRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(textResponse(`{"sublimits":[]}`))
	})

	files := []models.EncodedFile{
		{Name: "slip.pdf", MimeType: "application/pdf", Data: "cGRm"},
	}
	raw, err := client.GenerateSection(context.Background(), files, "extract the sublimits", sublimitsSchema)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sublimits":[]}`, string(raw))

	require.Len(t, gotBody.Contents, 1)
	parts := gotBody.Contents[0].Parts
	require.Len(t, parts, 2)
	assert.Equal(t, "extract the sublimits", parts[0].Text)
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "application/pdf", parts[1].InlineData.MimeType)
	assert.Equal(t, "cGRm", parts[1].InlineData.Data)

	require.NotNil(t, gotBody.GenerationConfig)
	assert.Equal(t, "application/json", gotBody.GenerationConfig.ResponseMimeType)
	require.NotNil(t, gotBody.GenerationConfig.Temperature)
	assert.InDelta(t, 0.2, *gotBody.GenerationConfig.Temperature, 1e-9)
	assert.NotEmpty(t, gotBody.GenerationConfig.ResponseSchema)
}

func TestResponseTextJoinsAllParts(t *testing.T) {
	resp := GenerateResponse{
		Candidates: []Candidate{
			{Content: Content{Parts: []Part{{Text: "first "}, {Text: "second"}}}},
		},
	}
	assert.Equal(t, "first second", resp.Text())
}
