package rag

import "fmt"

// ValidationError represents invalid turn input. Surfaced immediately,
// never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// UpstreamError represents a failure of an external provider during a pipeline
// step. Rerank and hybrid-search failures are recovered locally and never
// surface as UpstreamError; rewrite, embedding, vector-search and generation
// failures do.
type UpstreamError struct {
	Step string // pipeline step that failed: "rewrite", "retrieve", "generate"
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream failure during %s: %v", e.Step, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
