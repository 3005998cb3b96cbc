package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mattiafranchi89-debug/Mattia-UW/service"
	"github.com/mattiafranchi89-debug/Mattia-UW/session"
)

// ChatHandler handles HTTP requests for the record Q&A assistant.
type ChatHandler struct {
	session *session.Session
	chat    *service.ChatManager
}

// NewChatHandler creates a new chat handler
func NewChatHandler(s *session.Session, chat *service.ChatManager) *ChatHandler {
	return &ChatHandler{session: s, chat: chat}
}

type chatMessageRequest struct {
	Message string `json:"message"`
}

// PostMessage handles POST /api/chat/messages
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_MESSAGE",
				"message": "A non-empty message is required",
			},
		})
		return
	}

	record, recordID, ok := h.session.Record()
	if !ok {
		respondNoRecord(c)
		return
	}

	chatSession := h.chat.SessionFor(recordID, record)
	reply, err := chatSession.SendMessage(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, service.ErrReplyInFlight) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "REPLY_IN_FLIGHT",
					"message": "The assistant is still answering the previous message",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CHAT_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"reply": reply,
		},
	})
}

// GetMessages handles GET /api/chat/messages
func (h *ChatHandler) GetMessages(c *gin.Context) {
	record, recordID, ok := h.session.Record()
	if !ok {
		respondNoRecord(c)
		return
	}

	chatSession := h.chat.SessionFor(recordID, record)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"messages": chatSession.Messages(),
		},
	})
}

func respondNoRecord(c *gin.Context) {
	c.JSON(http.StatusConflict, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "NO_EXTRACTED_RECORD",
			"message": "Extract a document before using this feature",
		},
	})
}
