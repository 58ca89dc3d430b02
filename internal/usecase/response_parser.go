package usecase

import (
	"fmt"
	"regexp"
	"strings"
)

// SectionSeparator is the literal token the prompt contract places between
// the summary and the detailed answer.
const SectionSeparator = "---SECTION_SEPARATOR---"

const (
	placeholderSummary   = "A summary could not be generated for this answer."
	underOneMinuteLabel  = "under 1 minute"
	wordsPerMinute       = 200
	maxDerivedSummaryLen = 500
)

var partLabelPattern = regexp.MustCompile(`(?i)^(?:\*\*)?part\s*[12](?:\*\*)?\s*[:.\-]*\s*`)

// ParsedResponse is a completion split into its displayable pieces.
type ParsedResponse struct {
	Summary            string
	Answer             string
	SummaryReadingTime string
	AnswerReadingTime  string
}

// ParseResponse splits a raw completion into summary and answer on the
// separator token. Malformed output degrades to best-effort display: the
// whole text becomes the answer and the first paragraph stands in as a
// summary when it is short enough. This path never fails.
func ParseResponse(raw string) ParsedResponse {
	text := strings.TrimSpace(raw)

	var summary, answer string
	if parts := strings.SplitN(text, SectionSeparator, 2); len(parts) >= 2 {
		summary = stripPartLabel(parts[0])
		answer = stripPartLabel(parts[1])
	} else {
		answer = text
		summary = deriveSummary(text)
	}

	return ParsedResponse{
		Summary:            summary,
		Answer:             answer,
		SummaryReadingTime: ReadingTime(summary),
		AnswerReadingTime:  ReadingTime(answer),
	}
}

func stripPartLabel(part string) string {
	trimmed := strings.TrimSpace(part)
	return strings.TrimSpace(partLabelPattern.ReplaceAllString(trimmed, ""))
}

func deriveSummary(text string) string {
	firstParagraph := text
	if idx := strings.Index(text, "\n\n"); idx >= 0 {
		firstParagraph = strings.TrimSpace(text[:idx])
	}
	if firstParagraph == "" || len(firstParagraph) >= maxDerivedSummaryLen {
		return placeholderSummary
	}
	return firstParagraph
}

// ReadingTime estimates display time at 200 words per minute, rounded up
// to whole minutes.
func ReadingTime(text string) string {
	words := len(strings.Fields(text))
	if words < wordsPerMinute {
		return underOneMinuteLabel
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
