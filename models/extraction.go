package models

// ExtractionErrorKind classifies why the language model produced no usable text.
type ExtractionErrorKind string

const (
	ExtractionErrUpstream ExtractionErrorKind = "upstream" // network/API failure
	ExtractionErrEmpty    ExtractionErrorKind = "empty"    // model returned no candidates
)

// ExtractionError describes a failed language-model call.
type ExtractionError struct {
	Kind    ExtractionErrorKind `json:"kind"`
	Message string              `json:"message"`
}

// ExtractionResult is the tagged outcome of an extraction attempt: either the
// model's raw text or a structured error, never both. It is passed down the
// pipeline as a value, not thrown.
type ExtractionResult struct {
	Text string           `json:"text,omitempty"`
	Err  *ExtractionError `json:"error,omitempty"`
}

// OK reports whether the extraction succeeded.
func (r ExtractionResult) OK() bool {
	return r.Err == nil
}
