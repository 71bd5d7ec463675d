package model

// ViolationReason classifies why a submission (or one of its answers) was
// rejected.
type ViolationReason string

const (
	ReasonMissingRequired ViolationReason = "missing_required"
	ReasonUnknownField    ViolationReason = "unknown_field"
	ReasonTypeMismatch    ViolationReason = "type_mismatch"
	ReasonPatternMismatch ViolationReason = "pattern_mismatch"
	ReasonFormClosed      ViolationReason = "form_closed"
)

// Violation is one structured validation failure. FieldID is empty for
// form-level failures (form closed).
type Violation struct {
	FieldID string          `json:"fieldId,omitempty"`
	Reason  ViolationReason `json:"reason"`
	Message string          `json:"message"`
}

// ValidationResult is either an acceptance carrying normalized answers or a
// rejection carrying at least one violation, never both.
type ValidationResult struct {
	Accepted          bool        `json:"accepted"`
	NormalizedAnswers []Answer    `json:"normalizedAnswers,omitempty"`
	Violations        []Violation `json:"violations,omitempty"`
}

// Accept builds an accepted result.
func Accept(answers []Answer) ValidationResult {
	return ValidationResult{Accepted: true, NormalizedAnswers: answers}
}

// Reject builds a rejected result.
func Reject(violations []Violation) ValidationResult {
	return ValidationResult{Violations: violations}
}
