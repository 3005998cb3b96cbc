package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mattiafranchi89-debug/Mattia-UW/ingest"
	"github.com/mattiafranchi89-debug/Mattia-UW/models"
)

// Phase is the extraction lifecycle state of the session.
type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseFilesStaged      Phase = "files_staged"
	PhaseExtracting       Phase = "extracting"
	PhaseExtracted        Phase = "extracted"
	PhaseExtractionFailed Phase = "extraction_failed"
)

// NewsPhase tracks the news enrichment independently of the extraction
// lifecycle.
type NewsPhase string

const (
	NewsIdle    NewsPhase = "idle"
	NewsLoading NewsPhase = "loading"
	NewsReady   NewsPhase = "ready"
	NewsFailed  NewsPhase = "failed"
)

const (
	newsRateLimitMessage = "Could not fetch news due to API rate limits. Please check your plan and billing details."
	newsGenericMessage   = "Failed to fetch news and web information."
)

var (
	// ErrExtractionInProgress rejects any mutation while an extraction run
	// owns the session.
	ErrExtractionInProgress = errors.New("an extraction is already in progress")

	// ErrNoExtractedRecord rejects record edits before a successful
	// extraction.
	ErrNoExtractedRecord = errors.New("no extracted record to update")
)

// Extractor produces a consolidated record from encoded files.
type Extractor interface {
	Extract(ctx context.Context, files []models.EncodedFile) *models.ExtractedData
}

// NewsFetcher retrieves news enrichment for an entity name.
type NewsFetcher interface {
	FetchNews(ctx context.Context, entityName string) (*models.NewsData, error)
}

// Expander flattens message-container files into analyzable ones.
type Expander interface {
	Expand(files []models.StagedFile) []models.StagedFile
}

// State is a point-in-time snapshot of the session, shaped for the API.
type State struct {
	Files           []models.FileInfo     `json:"files"`
	Phase           Phase                 `json:"phase"`
	Record          *models.ExtractedData `json:"record"`
	RecordID        *uuid.UUID            `json:"recordId"`
	News            *models.NewsData      `json:"news"`
	NewsPhase       NewsPhase             `json:"newsPhase"`
	ExtractionError string                `json:"extractionError,omitempty"`
	NewsError       string                `json:"newsError,omitempty"`
}

// Session is the single in-memory workbench session: the staged files, the
// extraction lifecycle, the current record and its news enrichment. All
// methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	extractor Extractor
	news      NewsFetcher
	expander  Expander

	files []models.StagedFile

	phase           Phase
	record          *models.ExtractedData
	recordID        uuid.UUID
	extractionError string

	newsPhase NewsPhase
	newsData  *models.NewsData
	newsError string
	newsRunID int
}

// New builds an idle session with the given collaborators.
func New(extractor Extractor, news NewsFetcher, expander Expander) *Session {
	return &Session{
		extractor: extractor,
		news:      news,
		expander:  expander,
		phase:     PhaseIdle,
		newsPhase: NewsIdle,
	}
}

// AddFiles stages new files, deduplicating by filename. If at least one file
// is genuinely new, any previous extraction results are discarded; an
// all-duplicates add leaves the session untouched.
func (s *Session) AddFiles(files []models.StagedFile) ([]models.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseExtracting {
		return nil, ErrExtractionInProgress
	}

	existing := make(map[string]bool, len(s.files))
	for _, f := range s.files {
		existing[f.Name] = true
	}

	added := false
	for _, f := range files {
		if existing[f.Name] {
			continue
		}
		existing[f.Name] = true
		s.files = append(s.files, f)
		added = true
	}
	if added {
		s.clearResultsLocked()
		s.phase = PhaseFilesStaged
	}
	return s.fileInfosLocked(), nil
}

// RemoveFile unstages one file by name and discards any previous results.
func (s *Session) RemoveFile(name string) ([]models.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseExtracting {
		return nil, ErrExtractionInProgress
	}

	kept := s.files[:0]
	removed := false
	for _, f := range s.files {
		if f.Name == name {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	s.files = kept
	if removed {
		s.clearResultsLocked()
		if len(s.files) == 0 {
			s.phase = PhaseIdle
		} else {
			s.phase = PhaseFilesStaged
		}
	}
	return s.fileInfosLocked(), nil
}

// ClearFiles unstages everything and discards any previous results.
func (s *Session) ClearFiles() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseExtracting {
		return ErrExtractionInProgress
	}
	s.files = nil
	s.clearResultsLocked()
	s.phase = PhaseIdle
	return nil
}

// Submit runs the extraction pipeline over the staged files: expand message
// containers, resolve and encode every file, extract all sections, then kick
// off news enrichment in the background when an entity name was found.
// Submitting with no files staged is a no-op.
func (s *Session) Submit(ctx context.Context) (*models.ExtractedData, error) {
	s.mu.Lock()
	if len(s.files) == 0 {
		s.mu.Unlock()
		return nil, nil
	}
	if s.phase == PhaseExtracting {
		s.mu.Unlock()
		return nil, ErrExtractionInProgress
	}
	s.clearResultsLocked()
	s.phase = PhaseExtracting
	staged := make([]models.StagedFile, len(s.files))
	copy(staged, s.files)
	s.mu.Unlock()

	expanded := s.expander.Expand(staged)
	encoded, err := ingest.EncodeFiles(expanded)
	if err != nil {
		s.mu.Lock()
		s.phase = PhaseExtractionFailed
		s.extractionError = err.Error()
		s.mu.Unlock()
		return nil, err
	}

	record := s.extractor.Extract(ctx, encoded)

	s.mu.Lock()
	s.record = record
	s.recordID = uuid.New()
	s.phase = PhaseExtracted
	if entity := record.EntityName(); entity != "" {
		s.newsPhase = NewsLoading
		runID := s.newsRunID
		go s.fetchNews(runID, entity)
	}
	s.mu.Unlock()
	return record, nil
}

// fetchNews runs the enrichment off the request path. The run ID guards
// against a stale goroutine writing over a session that has since been
// cleared or resubmitted.
func (s *Session) fetchNews(runID int, entity string) {
	news, err := s.news.FetchNews(context.Background(), entity)

	s.mu.Lock()
	defer s.mu.Unlock()
	if runID != s.newsRunID {
		return
	}
	if err != nil {
		log.Printf("Failed to fetch news for %s: %v", entity, err)
		s.newsPhase = NewsFailed
		s.newsError = classifyNewsError(err)
		return
	}
	s.newsPhase = NewsReady
	s.newsData = news
}

func classifyNewsError(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "RESOURCE_EXHAUSTED") || strings.Contains(msg, "429") {
		return newsRateLimitMessage
	}
	return newsGenericMessage
}

// UpdateRecord replaces the extracted record wholesale with an edited
// version. The record identity is unchanged, so an open chat session keeps
// its original grounding snapshot. News state is untouched.
func (s *Session) UpdateRecord(record *models.ExtractedData) (*models.ExtractedData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseExtracted {
		return nil, ErrNoExtractedRecord
	}
	record.Normalize()
	s.record = record
	return s.record, nil
}

// Record returns the current record and its identity, or ok=false when no
// extraction has succeeded yet.
func (s *Session) Record() (*models.ExtractedData, uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseExtracted {
		return nil, uuid.Nil, false
	}
	return s.record, s.recordID, true
}

// News returns the current enrichment result, which may be nil even when the
// phase is ready.
func (s *Session) News() (*models.NewsData, NewsPhase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newsData, s.newsPhase
}

// Snapshot returns the full session state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := State{
		Files:           s.fileInfosLocked(),
		Phase:           s.phase,
		Record:          s.record,
		News:            s.newsData,
		NewsPhase:       s.newsPhase,
		ExtractionError: s.extractionError,
		NewsError:       s.newsError,
	}
	if s.record != nil {
		id := s.recordID
		state.RecordID = &id
	}
	return state
}

func (s *Session) fileInfosLocked() []models.FileInfo {
	infos := make([]models.FileInfo, 0, len(s.files))
	for _, f := range s.files {
		infos = append(infos, f.Info())
	}
	return infos
}

// clearResultsLocked wipes every derived result: record, news, both error
// slots. The run ID bump detaches any in-flight news goroutine.
func (s *Session) clearResultsLocked() {
	s.record = nil
	s.recordID = uuid.Nil
	s.extractionError = ""
	s.newsData = nil
	s.newsError = ""
	s.newsPhase = NewsIdle
	s.newsRunID++
}
