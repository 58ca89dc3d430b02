package retrieval

import (
	"fmt"
	"regexp"
	"strings"
)

var introPattern = regexp.MustCompile(`\b(explain|simple|basic|basics|beginner|beginners|introduction|overview)\b`)

// Filler words stripped when deriving a bare topic from an
// explain-style question.
var connectorWords = map[string]struct{}{
	"explain": {}, "what": {}, "is": {}, "are": {}, "the": {}, "a": {},
	"an": {}, "in": {}, "of": {}, "to": {}, "for": {}, "me": {},
	"about": {}, "please": {}, "simple": {}, "terms": {}, "basic": {},
	"basics": {}, "beginner": {}, "beginners": {}, "introduction": {},
	"overview": {}, "how": {}, "does": {}, "do": {}, "can": {}, "you": {},
}

// ExpandQuestion derives the ordered search variants for one question
// (Stage 1). The original question is always variant 0 and the output is
// deterministic for identical input. Variants are not deduplicated here;
// duplicate hits collapse at chunk level after search.
func ExpandQuestion(question, domainContext string) []string {
	variants := []string{question}
	lower := strings.ToLower(question)

	if introPattern.MatchString(lower) {
		if topic := stripConnectorWords(lower); topic != "" {
			variants = append(variants,
				"introduction to "+topic,
				topic+" basics",
				"what is "+topic,
				topic+" for beginners",
				topic+" overview",
			)
		}
	}

	variants = append(variants, fmt.Sprintf("%s in %s context", question, domainContext))

	if strings.Contains(lower, "what is") {
		variants = append(variants,
			strings.Replace(lower, "what is", "meaning of", 1),
			strings.Replace(lower, "what is", "introduction to", 1),
		)
	}
	if strings.Contains(lower, "how to") {
		variants = append(variants,
			strings.Replace(lower, "how to", "practice of", 1),
			strings.Replace(lower, "how to", "method for", 1),
		)
	}
	if strings.Contains(lower, "why") {
		variants = append(variants,
			strings.Replace(lower, "why", "reason for", 1),
			strings.Replace(lower, "why", "purpose of", 1),
		)
	}

	return variants
}

func stripConnectorWords(lower string) string {
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !isWordRune(r)
	})

	kept := make([]string, 0, len(fields))
	for _, word := range fields {
		if _, skip := connectorWords[word]; skip {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}

func isWordRune(r rune) bool {
	return r == '-' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
