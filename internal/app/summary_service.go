package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Sentinel values persisted when a pipeline step fails. The row is saved
// either way.
const (
	SummaryFetchFailed = "Could not access this URL (Privacy or Security restriction)."
	TagsFetchFailed    = "error"
	SummaryAIFailed    = "AI generation failed."
	TagsAIFailed       = "ai-error"

	defaultSummary = "No summary available."
)

type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type SummaryResult struct {
	Summary string `json:"summary"`
	Tags    string `json:"tags"`
}

// SummaryService turns a URL into a summary/tags pair. It never fails:
// every error degrades to a sentinel result.
type SummaryService struct {
	fetcher Fetcher
	llm     TextGenerator
}

func NewSummaryService(fetcher Fetcher, llm TextGenerator) *SummaryService {
	return &SummaryService{
		fetcher: fetcher,
		llm:     llm,
	}
}

func (s *SummaryService) Summarize(ctx context.Context, url string) SummaryResult {
	content, err := s.fetcher.FetchText(ctx, url)
	if err != nil || content == "" {
		if err != nil {
			log.Printf("scrape %s failed: %v", url, err)
		}
		return SummaryResult{Summary: SummaryFetchFailed, Tags: TagsFetchFailed}
	}

	raw, err := s.llm.GenerateContent(ctx, buildPrompt(content))
	if err != nil {
		log.Printf("gemini call failed: %v", err)
		return SummaryResult{Summary: SummaryAIFailed, Tags: TagsAIFailed}
	}

	result, err := parseSummaryJSON(stripCodeFences(raw))
	if err != nil {
		log.Printf("parse gemini reply failed: %v", err)
		return SummaryResult{Summary: SummaryAIFailed, Tags: TagsAIFailed}
	}
	return result
}

func buildPrompt(content string) string {
	return fmt.Sprintf(
		"Here is the text content of a website:\n\n%s\n\n"+
			"Please perform two tasks:\n"+
			"1. Write a concise summary (max 2 sentences).\n"+
			"2. Generate up to 5 relevant keywords/tags.\n"+
			"Return the response ONLY as a raw JSON object with keys 'summary' and 'tags'. "+
			"Tags should be a single string separated by commas."+
			"Example: {\"summary\": \"This is a news site...\", \"tags\": \"news, world, politics\"}",
		content,
	)
}

// Models tend to wrap the JSON object in a markdown code fence despite the
// prompt saying not to.
func stripCodeFences(input string) string {
	cleaned := strings.ReplaceAll(input, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

func parseSummaryJSON(input string) (SummaryResult, error) {
	var payload struct {
		Summary string `json:"summary"`
		Tags    string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		return SummaryResult{}, fmt.Errorf("unmarshal summary json failed: %w", err)
	}

	// A well-formed object with a missing key falls back silently, same as
	// reading it with a default.
	if payload.Summary == "" {
		payload.Summary = defaultSummary
	}
	return SummaryResult{Summary: payload.Summary, Tags: payload.Tags}, nil
}
