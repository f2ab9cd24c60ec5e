package quiz

import "math/rand"

// shuffleQuestions is an in-place Fisher-Yates shuffle.
func shuffleQuestions(qs []Question, r *rand.Rand) {
	for i := len(qs) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}

// ShuffleOptions returns a copy of q with its options permuted and the
// correct letter moved along with its option.
func ShuffleOptions(q Question, r *rand.Rand) Question {
	perm := r.Perm(len(q.Options)) // perm[new] = old
	out := q
	out.Options = make([]string, len(q.Options))
	out.Images = append([]string(nil), q.Images...)
	correct := LetterIndex(q.CorrectAnswer)
	for newIdx, oldIdx := range perm {
		out.Options[newIdx] = q.Options[oldIdx]
		if oldIdx == correct {
			out.CorrectAnswer = LetterAt(newIdx)
		}
	}
	return out
}

// ShuffleAllOptions applies ShuffleOptions to every question.
func ShuffleAllOptions(qs []Question, r *rand.Rand) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = ShuffleOptions(q, r)
	}
	return out
}
