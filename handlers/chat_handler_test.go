package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattiafranchi89-debug/Mattia-UW/models"
	"github.com/mattiafranchi89-debug/Mattia-UW/service"
	"github.com/mattiafranchi89-debug/Mattia-UW/session"
)

type echoReplier struct{}

func (echoReplier) Reply(_ context.Context, message string) (string, error) {
	return "echo: " + message, nil
}

func newChatTestRouter(t *testing.T, extracted bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sess := session.New(&stubExtractor{entity: "Acme"}, stubNewsFetcher{}, stubExpander{})
	if extracted {
		_, err := sess.AddFiles([]models.StagedFile{{Name: "slip.txt", ContentType: "text/plain", Data: []byte("x")}})
		require.NoError(t, err)
		_, err = sess.Submit(context.Background())
		require.NoError(t, err)
	}

	chat := service.NewChatManager(func(*models.ExtractedData) service.ChatReplier {
		return echoReplier{}
	})
	h := NewChatHandler(sess, chat)

	r := gin.New()
	r.POST("/api/chat/messages", h.PostMessage)
	r.GET("/api/chat/messages", h.GetMessages)
	return r
}

func TestPostMessageWithoutRecord(t *testing.T) {
	r := newChatTestRouter(t, false)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/messages", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "NO_EXTRACTED_RECORD")
}

func TestPostMessageRequiresText(t *testing.T) {
	r := newChatTestRouter(t, true)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/messages", strings.NewReader(`{"message":""}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_MESSAGE")
}

func TestPostMessageReturnsReply(t *testing.T) {
	r := newChatTestRouter(t, true)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/messages", strings.NewReader(`{"message":"who is insured?"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "echo: who is insured?")
}

func TestGetMessagesIncludesGreeting(t *testing.T) {
	r := newChatTestRouter(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/messages", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), service.Greeting)
}
