package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattiafranchi89-debug/Mattia-UW/models"
	"github.com/mattiafranchi89-debug/Mattia-UW/session"
)

type stubExtractor struct {
	entity string
}

func (s *stubExtractor) Extract(context.Context, []models.EncodedFile) *models.ExtractedData {
	data := &models.ExtractedData{}
	if s.entity != "" {
		entity := s.entity
		data.Anagrafica.EntityName = &entity
	}
	data.Normalize()
	return data
}

type stubNewsFetcher struct{}

func (stubNewsFetcher) FetchNews(context.Context, string) (*models.NewsData, error) {
	return nil, nil
}

type stubExpander struct{}

func (stubExpander) Expand(files []models.StagedFile) []models.StagedFile { return files }

func newTestRouter(entity string) (*gin.Engine, *session.Session) {
	gin.SetMode(gin.TestMode)
	sess := session.New(&stubExtractor{entity: entity}, stubNewsFetcher{}, stubExpander{})
	h := NewSessionHandler(sess)

	r := gin.New()
	r.GET("/api/session", h.GetSession)
	r.POST("/api/session/files", h.AddFiles)
	r.DELETE("/api/session/files/:name", h.RemoveFile)
	r.DELETE("/api/session/files", h.ClearFiles)
	r.POST("/api/session/extract", h.Extract)
	r.PUT("/api/session/record", h.UpdateRecord)
	return r, sess
}

func multipartUpload(t *testing.T, names ...string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, name := range names {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("file contents"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func TestAddFilesEndpoint(t *testing.T) {
	r, _ := newTestRouter("")
	body, contentType := multipartUpload(t, "slip.txt", "notes.txt")

	req := httptest.NewRequest(http.MethodPost, "/api/session/files", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Files []models.FileInfo `json:"files"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data.Files, 2)
	assert.Equal(t, "slip.txt", resp.Data.Files[0].Name)
}

func TestAddFilesRequiresFiles(t *testing.T) {
	r, _ := newTestRouter("")
	body, contentType := multipartUpload(t)

	req := httptest.NewRequest(http.MethodPost, "/api/session/files", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_FILE")
}

func TestExtractEndpointHappyPath(t *testing.T) {
	r, _ := newTestRouter("Acme S.p.A.")
	body, contentType := multipartUpload(t, "slip.txt")

	req := httptest.NewRequest(http.MethodPost, "/api/session/files", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/session/extract", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Acme S.p.A.")
}

func TestExtractEndpointWithoutFiles(t *testing.T) {
	r, _ := newTestRouter("")

	req := httptest.NewRequest(http.MethodPost, "/api/session/extract", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "NO_FILES_STAGED")
}

func TestExtractEndpointUnsupportedFile(t *testing.T) {
	r, sess := newTestRouter("")
	_, err := sess.AddFiles([]models.StagedFile{{Name: "mystery.xyz", Data: []byte("??")}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/session/extract", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_FILE_TYPE")
}

func TestUpdateRecordEndpoint(t *testing.T) {
	r, sess := newTestRouter("Acme")
	_, err := sess.AddFiles([]models.StagedFile{{Name: "slip.txt", ContentType: "text/plain", Data: []byte("x")}})
	require.NoError(t, err)
	_, err = sess.Submit(context.Background())
	require.NoError(t, err)

	edited := `{"anagrafica":{"entityName":"Acme Holdings"},"sublimits":null,"dettaglioEdifici":null}`
	req := httptest.NewRequest(http.MethodPut, "/api/session/record", strings.NewReader(edited))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Acme Holdings")

	record, _, ok := sess.Record()
	require.True(t, ok)
	assert.Equal(t, "Acme Holdings", record.EntityName())
	assert.NotNil(t, record.Sublimits)
}

func TestUpdateRecordBeforeExtraction(t *testing.T) {
	r, _ := newTestRouter("")

	req := httptest.NewRequest(http.MethodPut, "/api/session/record", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "NO_EXTRACTED_RECORD")
}

func TestGetSessionSnapshot(t *testing.T) {
	r, _ := newTestRouter("")

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"phase":"idle"`)
	assert.Contains(t, w.Body.String(), `"newsPhase":"idle"`)
}
