package proctor

import (
	"math/rand"

	"github.com/uniadmit/proctor-gateway/internal/model"
)

// shuffleQuestions returns a fresh Fisher–Yates permutation of qs. The input
// slice is never mutated; every session start draws a new order.
func shuffleQuestions(qs []model.Question, rng *rand.Rand) []model.Question {
	out := make([]model.Question, len(qs))
	copy(out, qs)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
