package model

// SubmissionRequest is the payload sent to the admissions backend when a
// session terminates. Answers holds one entry per answered question, keyed by
// question ID in string form; unanswered questions are absent, never empty.
type SubmissionRequest struct {
	SessionID        string            `json:"session_id"`
	Answers          map[string]string `json:"answers"`
	IsAutoSubmitted  bool              `json:"is_auto_submitted"`
	AutoSubmitReason string            `json:"auto_submit_reason,omitempty"`
}

// SubmissionResult mirrors the upstream grading response. The upstream is the
// sole source of truth for scoring; this service only relays it.
type SubmissionResult struct {
	Success             bool     `json:"success"`
	Message             string   `json:"message"`
	Score               *float64 `json:"score,omitempty"`
	Passed              *bool    `json:"passed,omitempty"`
	ProctoringViolation bool     `json:"proctoring_violation,omitempty"`
}
