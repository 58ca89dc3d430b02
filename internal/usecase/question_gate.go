package usecase

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	minQuestionLen = 5
	maxQuestionLen = 5000
)

// Validation failures for incoming questions. All of them are recovered
// locally into user-facing failure results before any retrieval spend.
var (
	ErrQuestionTooShort   = errors.New("question is too short")
	ErrQuestionTooLong    = errors.New("question is too long")
	ErrDisallowedQuestion = errors.New("question matches a disallowed pattern")
	ErrOffTopicQuestion   = errors.New("question matches an off-topic keyword")
)

// QuestionGate rejects questions before the pipeline makes any retrieval
// or completion call.
type QuestionGate struct {
	disallowed []*regexp.Regexp
	offTopic   []string
}

// NewQuestionGate compiles the disallowed-content patterns and keeps the
// off-topic keyword list. Invalid patterns are rejected at wiring time.
func NewQuestionGate(disallowedPatterns, offTopicKeywords []string) (*QuestionGate, error) {
	compiled := make([]*regexp.Regexp, 0, len(disallowedPatterns))
	for _, pattern := range disallowedPatterns {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid disallowed pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}

	keywords := make([]string, 0, len(offTopicKeywords))
	for _, keyword := range offTopicKeywords {
		if trimmed := strings.ToLower(strings.TrimSpace(keyword)); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}

	return &QuestionGate{disallowed: compiled, offTopic: keywords}, nil
}

// Validate checks a trimmed question against the length bounds and the
// content filters.
func (g *QuestionGate) Validate(question string) error {
	length := len([]rune(question))
	if length < minQuestionLen {
		return ErrQuestionTooShort
	}
	if length > maxQuestionLen {
		return ErrQuestionTooLong
	}

	for _, re := range g.disallowed {
		if re.MatchString(question) {
			return ErrDisallowedQuestion
		}
	}

	lower := strings.ToLower(question)
	for _, keyword := range g.offTopic {
		if strings.Contains(lower, keyword) {
			return ErrOffTopicQuestion
		}
	}
	return nil
}
