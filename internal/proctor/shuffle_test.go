package proctor

import (
	"math/rand"
	"testing"

	"github.com/uniadmit/proctor-gateway/internal/model"
)

func TestShuffleIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, n := range []int{0, 1, 2, 17, 100} {
		in := make([]model.Question, n)
		for i := range in {
			in[i] = model.Question{ID: i + 1}
		}

		out := shuffleQuestions(in, rng)
		if len(out) != n {
			t.Fatalf("n=%d: length changed to %d", n, len(out))
		}

		seen := make(map[int]bool, n)
		for _, q := range out {
			if seen[q.ID] {
				t.Fatalf("n=%d: duplicate question %d", n, q.ID)
			}
			seen[q.ID] = true
		}
		for _, q := range in {
			if !seen[q.ID] {
				t.Fatalf("n=%d: question %d lost", n, q.ID)
			}
		}
	}
}

func TestShuffleLeavesInputAlone(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	in := []model.Question{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}

	shuffleQuestions(in, rng)

	for i, q := range in {
		if q.ID != i+1 {
			t.Fatalf("input mutated at %d: %d", i, q.ID)
		}
	}
}

func TestShuffleVariesAcrossDraws(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	in := make([]model.Question, 30)
	for i := range in {
		in[i] = model.Question{ID: i + 1}
	}

	a := shuffleQuestions(in, rng)
	b := shuffleQuestions(in, rng)

	same := true
	for i := range a {
		if a[i].ID != b[i].ID {
			same = false
			break
		}
	}
	if same {
		t.Fatal("two draws produced the identical order for 30 questions")
	}
}
