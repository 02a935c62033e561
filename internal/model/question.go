package model

// QuestionKind enumerates the supported question formats.
type QuestionKind string

const (
	QuestionKindMultipleChoice QuestionKind = "MULTIPLE_CHOICE"
	QuestionKindFreeText       QuestionKind = "FREE_TEXT"
	QuestionKindTrueFalse      QuestionKind = "TRUE_FALSE"
)

// Question is a single exam question as delivered by the admissions backend.
// Immutable once loaded; the session freezes its own shuffled copy.
type Question struct {
	ID      int          `json:"id"`
	Text    string       `json:"text"`
	Kind    QuestionKind `json:"kind"`
	Options []string     `json:"options,omitempty"`
	// CorrectAnswer is opaque to this service and must never reach the
	// applicant's browser. Grading belongs to the upstream.
	CorrectAnswer string `json:"correct_answer,omitempty"`
}

// ClientQuestion is a question with the correct answer stripped, safe to
// forward to the applicant.
type ClientQuestion struct {
	ID      int          `json:"id"`
	Text    string       `json:"text"`
	Kind    QuestionKind `json:"kind"`
	Options []string     `json:"options,omitempty"`
}

// ForClient strips server-only fields.
func (q Question) ForClient() ClientQuestion {
	return ClientQuestion{
		ID:      q.ID,
		Text:    q.Text,
		Kind:    q.Kind,
		Options: q.Options,
	}
}
