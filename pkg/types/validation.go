package types

import "strings"

// Violation describes one violated rule: the wire-format field path it
// applies to and a human-readable message.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Message
	}
	return v.Field + ": " + v.Message
}

// ValidationResult is the outcome of validating one candidate record.
// Violations are hard rejections; Warnings record soft-invariant breaches on
// records that are still accepted. Every violated rule is reported, not just
// the first, so ingestion tooling can surface all problems at once.
type ValidationResult struct {
	Violations []Violation `json:"violations"`
	Warnings   []Violation `json:"warnings"`
}

// OK reports whether the record is acceptable. A record with warnings is
// still OK.
func (r ValidationResult) OK() bool {
	return len(r.Violations) == 0
}

// Err returns a *ValidationError carrying the result, or nil when OK.
func (r ValidationResult) Err() error {
	if r.OK() {
		return nil
	}
	return &ValidationError{Result: r}
}

// ValidationError is returned by write operations when a candidate record
// violates the contract. It is always recoverable: the caller corrects the
// input and retries.
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Result.Violations))
	for i, v := range e.Result.Violations {
		msgs[i] = v.String()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
