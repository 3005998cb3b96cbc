package ingest

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mattiafranchi89-debug/Mattia-UW/models"
)

// genericMimeType is the catch-all type browsers attach when they cannot
// classify a file. It is treated as "no useful declared type".
const genericMimeType = "application/octet-stream"

var mimeTypesByExtension = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".eml":  "message/rfc822",
	".msg":  "application/vnd.ms-outlook",
	".txt":  "text/plain",
}

// UnsupportedFileError reports a file whose MIME type could not be resolved.
// It is fatal to the extraction run it occurs in, not a silent skip.
type UnsupportedFileError struct {
	Filename string
}

func (e *UnsupportedFileError) Error() string {
	return fmt.Sprintf("unsupported file type: could not determine MIME type for %q", e.Filename)
}

// ResolveMimeType returns the definitive MIME type for a file. Precedence:
// a non-generic declared type wins; otherwise the extension table; otherwise
// the generic fallback, but only when a declared type existed at all. A file
// with no declared type and an unknown extension is unsupported.
func ResolveMimeType(name, declared string) (string, error) {
	if declared != "" && declared != genericMimeType {
		return declared, nil
	}
	ext := strings.ToLower(filepath.Ext(name))
	if mt, ok := mimeTypesByExtension[ext]; ok {
		return mt, nil
	}
	if declared != "" {
		return genericMimeType, nil
	}
	return "", &UnsupportedFileError{Filename: name}
}

// EncodeFiles resolves a definitive MIME type for every staged file and
// encodes its bytes for inline transport. The first unresolvable file aborts
// the batch with its name.
func EncodeFiles(files []models.StagedFile) ([]models.EncodedFile, error) {
	encoded := make([]models.EncodedFile, 0, len(files))
	for _, f := range files {
		mimeType, err := ResolveMimeType(f.Name, f.ContentType)
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, models.EncodedFile{
			Name:     f.Name,
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(f.Data),
		})
	}
	return encoded, nil
}
