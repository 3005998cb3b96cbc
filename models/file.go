package models

// StagedFile is a file as selected by the user or produced by email
// unpacking: raw bytes plus the name and content type it arrived with.
// Staged files are ephemeral; they are discarded once encoded into a
// request payload.
type StagedFile struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// FileInfo is the client-visible summary of a staged file.
type FileInfo struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

// Info returns the summary view of a staged file.
func (f StagedFile) Info() FileInfo {
	return FileInfo{Name: f.Name, ContentType: f.ContentType, Size: len(f.Data)}
}

// EncodedFile is a staged file after MIME resolution and base64 encoding,
// ready to be inlined into a model request.
type EncodedFile struct {
	Name     string
	MimeType string
	Data     string // standard base64
}
