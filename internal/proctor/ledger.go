package proctor

import (
	"strconv"
	"strings"

	"github.com/uniadmit/proctor-gateway/internal/model"
)

// answerLedger holds the applicant's latest input per question. Entries are
// overwritten on edit and never deleted during the session; an unanswered
// question is represented by absence, not a sentinel.
type answerLedger struct {
	answers map[string]string
}

func newLedger() answerLedger {
	return answerLedger{answers: make(map[string]string)}
}

func (l *answerLedger) set(questionID, value string) {
	l.answers[questionID] = value
}

func (l *answerLedger) get(questionID string) string {
	return l.answers[questionID]
}

// forSubmission walks the frozen question order (not the ledger) and emits
// one entry per question with a non-empty answer, so the upstream receives a
// deterministic payload regardless of edit order.
func (l *answerLedger) forSubmission(frozen []model.Question) map[string]string {
	out := make(map[string]string, len(l.answers))
	for _, q := range frozen {
		key := strconv.Itoa(q.ID)
		if ans, ok := l.answers[key]; ok && strings.TrimSpace(ans) != "" {
			out[key] = ans
		}
	}
	return out
}

// snapshot copies the raw ledger for state reads.
func (l *answerLedger) snapshot() map[string]string {
	out := make(map[string]string, len(l.answers))
	for k, v := range l.answers {
		out[k] = v
	}
	return out
}
