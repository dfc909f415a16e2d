package rag

import (
	"fmt"
	"strings"
)

// DefaultComplexityThreshold is the raw-query length (in bytes) above which
// the expert template is selected.
const DefaultComplexityThreshold = 150

// expertTemplate targets long, technical questions. Slots: conversation
// history, retrieved context, current question.
const expertTemplate = `You are an expert AI assistant with deep technical knowledge.

Previous Conversation:
%s

Context from Document:
%s

Current Question: %s

Instructions:
- Provide detailed, technical responses with specific terminology
- Include relevant technical details, specifications, and explanations
- Reference specific sections or data points from the context
- Use technical language appropriate for advanced users
- Provide comprehensive answers that cover edge cases and nuances
- If you don't know, say so clearly

Expert Answer:`

// simpleTemplate targets short questions with concise, plain-language answers.
const simpleTemplate = `You are a helpful AI assistant that explains things clearly and simply.

Previous Conversation:
%s

Context from Document:
%s

Current Question: %s

Instructions:
- Keep answers concise, clear and as direct as possible
- Use simple language and examples where helpful
- Avoid technical jargon unless necessary
- Focus on the most important information
- Use analogies or examples to clarify concepts
- If you don't know, say so clearly

Helpful Answer:`

// PromptComposer selects a template by query complexity and fills its slots.
type PromptComposer struct {
	// ComplexityThreshold is the raw-query length above which the expert
	// template is used. Zero means DefaultComplexityThreshold.
	ComplexityThreshold int
}

// Compose renders the prompt for one turn. Template selection is a pure
// function of the raw query's length (strictly greater than the threshold
// selects the expert template); the question slot receives the rewritten query.
func (c PromptComposer) Compose(rawQuery, question, historyText, contextText string) string {
	threshold := c.ComplexityThreshold
	if threshold == 0 {
		threshold = DefaultComplexityThreshold
	}

	template := simpleTemplate
	if len(rawQuery) > threshold {
		template = expertTemplate
	}
	return fmt.Sprintf(template, historyText, contextText, question)
}

// BuildContext concatenates the candidates' text in their final order. A
// candidate with empty text contributes an empty segment rather than being
// dropped, keeping positions aligned with candidate metadata.
func BuildContext(candidates []Candidate) string {
	if len(candidates) == 0 {
		return ""
	}
	parts := make([]string, len(candidates))
	for i, c := range candidates {
		parts[i] = c.Text
	}
	return strings.Join(parts, "\n\n")
}
