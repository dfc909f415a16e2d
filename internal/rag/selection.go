package rag

import "strings"

// fastIntentKeywords mark a query as wanting a fast, cheap reply. The same set
// drives both the rewrite-skip decision and model selection so the two checks
// can never disagree.
var fastIntentKeywords = []string{
	"asap",
	"fast",
	"quick",
	"quickly",
	"short answer",
	"brief",
	"in short",
}

// WantsFastReply reports whether the raw query contains a fast-intent keyword.
// Matching is case-insensitive substring containment.
func WantsFastReply(query string) bool {
	if query == "" {
		return false
	}
	lower := strings.ToLower(query)
	for _, kw := range fastIntentKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ModelSelector picks the generation model for a turn. The decision is a pure
// function of the raw query; it governs the final answer only, while
// rewriting always uses the fast model.
type ModelSelector struct {
	FastModel    string
	CapableModel string
}

// Select returns the model identifier to use for answering the raw query.
func (s ModelSelector) Select(rawQuery string) string {
	if WantsFastReply(rawQuery) {
		return s.FastModel
	}
	return s.CapableModel
}
