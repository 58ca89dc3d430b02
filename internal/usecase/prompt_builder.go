package usecase

import (
	"errors"
	"fmt"
	"strings"

	"qa-orchestrator/internal/domain"
)

// PromptInput contains the pieces that feed into the prompt builder.
type PromptInput struct {
	Question string
	Contexts []domain.EnrichedChunk
}

// PromptPair is one system/user prompt pair. The source numbering in the
// system prompt defines the citation order for the whole request.
type PromptPair struct {
	System string `json:"system"`
	User   string `json:"user"`
}

// PromptBuilder builds the grounding prompt sent to the completion
// service.
type PromptBuilder interface {
	Build(input PromptInput) (PromptPair, error)
}

// GroundedPromptBuilder renders the grounding instructions, the two-part
// response contract, and the enumerated source passages.
type GroundedPromptBuilder struct {
	additionalInstructions []string
}

// NewGroundedPromptBuilder creates a prompt builder with optional extra
// instructions appended after the standard ones.
func NewGroundedPromptBuilder(additionalInstructions ...string) PromptBuilder {
	return &GroundedPromptBuilder{
		additionalInstructions: additionalInstructions,
	}
}

// Build renders the system and user prompts.
func (b *GroundedPromptBuilder) Build(input PromptInput) (PromptPair, error) {
	if strings.TrimSpace(input.Question) == "" {
		return PromptPair{}, errors.New("question is required")
	}
	if len(input.Contexts) == 0 {
		return PromptPair{}, errors.New("at least one source passage is required")
	}

	instructions := []string{
		"You are an assistant that answers questions using ONLY the numbered sources below.",
		"Base every statement on the sources. Never invent facts, titles, quotes, or page numbers.",
		"If the sources do not cover part of the question, say so plainly instead of guessing.",
		"Reference sources in your text as [Source N], matching the numbering below.",
		"Respond in exactly two parts separated by a line containing only " + SectionSeparator + ".",
		"PART 1: a summary of the answer in at most three sentences.",
		"PART 2: the detailed answer, structured as:",
		"  1. Overview of the topic",
		"  2. Key points, each backed by its [Source N] reference",
		"  3. Closing summary of the main takeaways",
		"Do not repeat the part labels in your output beyond this structure.",
	}
	instructions = append(instructions, b.additionalInstructions...)

	var sys strings.Builder
	for _, line := range instructions {
		sys.WriteString(line)
		sys.WriteString("\n")
	}
	sys.WriteString("\nSources:\n\n")

	for i, chunk := range input.Contexts {
		sys.WriteString(fmt.Sprintf("[Source %d] %s", i+1, chunk.DocumentTitle))
		if chunk.ProviderName != "" {
			sys.WriteString(fmt.Sprintf(" (%s)", chunk.ProviderName))
		}
		if chunk.PageNumber != nil {
			sys.WriteString(fmt.Sprintf(", page %d", *chunk.PageNumber))
		}
		sys.WriteString("\n")
		sys.WriteString(strings.TrimSpace(chunk.Content))
		sys.WriteString("\n\n")
	}

	user := fmt.Sprintf("Question: %s\n\nAnswer the question using only the sources above.", strings.TrimSpace(input.Question))

	return PromptPair{System: sys.String(), User: user}, nil
}
