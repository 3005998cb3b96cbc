package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mattiafranchi89-debug/Mattia-UW/ingest"
	"github.com/mattiafranchi89-debug/Mattia-UW/models"
	"github.com/mattiafranchi89-debug/Mattia-UW/session"
)

// SessionHandler handles HTTP requests for the workbench session: staged
// files, extraction runs and record edits.
type SessionHandler struct {
	session     *session.Session
	maxFileSize int64
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(s *session.Session) *SessionHandler {
	return &SessionHandler{
		session:     s,
		maxFileSize: 20 * 1024 * 1024, // 20MB
	}
}

// GetSession handles GET /api/session
func (h *SessionHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.session.Snapshot(),
	})
}

// AddFiles handles POST /api/session/files
func (h *SessionHandler) AddFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FORM",
				"message": "Expected a multipart form",
			},
		})
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "At least one file is required",
			},
		})
		return
	}

	staged := make([]models.StagedFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		if fh.Size > h.maxFileSize {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FILE_TOO_LARGE",
					"message": fmt.Sprintf("File %q exceeds maximum of %d bytes", fh.Filename, h.maxFileSize),
				},
			})
			return
		}

		file, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FILE_OPEN_ERROR",
					"message": err.Error(),
				},
			})
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FILE_READ_ERROR",
					"message": err.Error(),
				},
			})
			return
		}

		staged = append(staged, models.StagedFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	infos, err := h.session.AddFiles(staged)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"files": infos,
		},
	})
}

// RemoveFile handles DELETE /api/session/files/:name
func (h *SessionHandler) RemoveFile(c *gin.Context) {
	infos, err := h.session.RemoveFile(c.Param("name"))
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"files": infos,
		},
	})
}

// ClearFiles handles DELETE /api/session/files
func (h *SessionHandler) ClearFiles(c *gin.Context) {
	if err := h.session.ClearFiles(); err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"files": []models.FileInfo{},
		},
	})
}

// Extract handles POST /api/session/extract
func (h *SessionHandler) Extract(c *gin.Context) {
	record, err := h.session.Submit(c.Request.Context())
	if err != nil {
		var unsupported *ingest.UnsupportedFileError
		switch {
		case errors.Is(err, session.ErrExtractionInProgress):
			respondSessionError(c, err)
		case errors.As(err, &unsupported):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNSUPPORTED_FILE_TYPE",
					"message": err.Error(),
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EXTRACTION_FAILED",
					"message": err.Error(),
				},
			})
		}
		return
	}
	if record == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_FILES_STAGED",
				"message": "Stage at least one file before extracting",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"record": record,
		},
	})
}

// UpdateRecord handles PUT /api/session/record
func (h *SessionHandler) UpdateRecord(c *gin.Context) {
	var record models.ExtractedData
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_RECORD",
				"message": err.Error(),
			},
		})
		return
	}

	updated, err := h.session.UpdateRecord(&record)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_EXTRACTED_RECORD",
				"message": "No extracted record to update",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"record": updated,
		},
	})
}

func respondSessionError(c *gin.Context, err error) {
	if errors.Is(err, session.ErrExtractionInProgress) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EXTRACTION_IN_PROGRESS",
				"message": "An extraction is already in progress",
			},
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "INTERNAL_ERROR",
			"message": err.Error(),
		},
	})
}
