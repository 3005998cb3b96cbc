package service

import (
	"context"
	"fmt"

	"github.com/mattiafranchi89-debug/Mattia-UW/models"
)

// ContentGenerator is the model call surface the news fetcher depends on.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}

// NewsFetcher retrieves recent public information about an insured entity
// through a search-grounded model call.
type NewsFetcher struct {
	gen ContentGenerator
}

// NewNewsFetcher builds a fetcher on top of the given generator.
func NewNewsFetcher(gen ContentGenerator) *NewsFetcher {
	return &NewsFetcher{gen: gen}
}

// FetchNews asks the model for a grounded summary of recent news about the
// entity. An empty entity name short-circuits to (nil, nil) without any
// network call, and a reply with neither summary nor sources also yields nil.
// Transport and API errors are returned as-is so callers can classify them.
func (f *NewsFetcher) FetchNews(ctx context.Context, entityName string) (*models.NewsData, error) {
	if entityName == "" {
		return nil, nil
	}

	prompt := fmt.Sprintf("Summarize the latest news and relevant web information about %q.", entityName)
	resp, err := f.gen.GenerateContent(ctx, &GenerateRequest{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
		Tools:    []Tool{{GoogleSearch: &GoogleSearch{}}},
	})
	if err != nil {
		return nil, err
	}

	summary := resp.Text()
	citations := collectCitations(resp)
	if summary == "" && len(citations) == 0 {
		return nil, nil
	}

	news := &models.NewsData{Citations: citations}
	if summary != "" {
		news.Summary = &summary
	}
	return news, nil
}

// collectCitations flattens the grounding chunks of every candidate into a
// citation list, deduplicated by URI.
func collectCitations(resp *GenerateResponse) []models.Citation {
	citations := []models.Citation{}
	seen := make(map[string]bool)
	for _, candidate := range resp.Candidates {
		if candidate.GroundingMetadata == nil {
			continue
		}
		for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
			if chunk.Web == nil || chunk.Web.URI == "" || seen[chunk.Web.URI] {
				continue
			}
			seen[chunk.Web.URI] = true
			citations = append(citations, models.Citation{
				Title: chunk.Web.Title,
				URI:   chunk.Web.URI,
			})
		}
	}
	return citations
}
