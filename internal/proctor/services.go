package proctor

import (
	"context"

	"github.com/uniadmit/proctor-gateway/internal/model"
)

// QuestionSet is the ordered paper for one session, as delivered upstream.
type QuestionSet struct {
	Questions    []model.Question `json:"questions"`
	Instructions string           `json:"instructions"`
}

// QuestionService supplies the question paper. Owned by the admissions
// backend; this service only consumes the contract.
type QuestionService interface {
	LoadQuestions(ctx context.Context, sessionID string) (*QuestionSet, error)
}

// SubmissionService delivers final answers upstream. The upstream grades;
// the gateway never computes pass/fail.
type SubmissionService interface {
	SubmitAnswers(ctx context.Context, req model.SubmissionRequest) (*model.SubmissionResult, error)
}

// Recorder receives best-effort proctoring telemetry. Implementations must
// not block for long and must never fail the session.
type Recorder interface {
	Record(ev model.ProctorEvent)
}

// NopRecorder discards all events.
type NopRecorder struct{}

func (NopRecorder) Record(model.ProctorEvent) {}
