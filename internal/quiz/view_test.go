package quiz_test

import (
	"math/rand"
	"testing"

	"github.com/mind-engage/radioquiz/internal/quiz"
)

func TestViews_PracticeFeedbackAfterAnswer(t *testing.T) {
	s, _, _ := newSession(t, 1)
	_ = s.Load(makeQuestions(2), 0, quiz.Mode{})
	_, _ = s.SelectAnswer(1, "c") // q1 expects a

	vs := s.Views()
	if len(vs) != 2 || !vs[0].Current || vs[0].Position != 1 {
		t.Fatalf("unexpected views: %+v", vs)
	}
	opts := vs[0].Options
	if !opts[2].Selected || !opts[2].Wrong || opts[2].Correct {
		t.Fatalf("selected option flags wrong: %+v", opts[2])
	}
	if !opts[0].Correct || opts[0].Selected {
		t.Fatalf("correct option flags wrong: %+v", opts[0])
	}
	for _, o := range vs[1].Options {
		if o.Correct || o.Wrong || o.Selected {
			t.Fatalf("unanswered question leaks flags: %+v", o)
		}
	}
	if vs[1].Images == nil {
		t.Fatalf("images should render as an empty list")
	}
}

func TestViews_RevealShowsCorrectOption(t *testing.T) {
	s, _, _ := newSession(t, 1)
	_ = s.Load(makeQuestions(2), 0, quiz.Mode{})
	letter, ok := s.Reveal(2)
	if !ok || letter != "b" {
		t.Fatalf("reveal = %q, %v", letter, ok)
	}
	v, _ := s.View(1)
	if !v.Revealed || !v.Feedback || !v.Options[1].Correct {
		t.Fatalf("revealed view = %+v", v)
	}
}

func TestViews_ExamHidesUntilFinish(t *testing.T) {
	s, _, _ := newSession(t, 1)
	_ = s.Load(makeQuestions(2), 1, quiz.Mode{Exam: true})
	_, _ = s.SelectAnswer(1, "b")

	v, _ := s.View(0)
	if v.Feedback || v.Options[0].Correct || v.Options[1].Wrong {
		t.Fatalf("exam view leaks feedback: %+v", v)
	}
	if cells := s.Progress(); cells[0].State != quiz.CellAnswered || cells[1].State != quiz.CellUnanswered {
		t.Fatalf("exam progress = %+v", cells)
	}

	_, _ = s.Finish()
	v, _ = s.View(0)
	if !v.Feedback || !v.Options[0].Correct || !v.Options[1].Wrong {
		t.Fatalf("finished view = %+v", v)
	}
	if cells := s.Progress(); cells[0].State != quiz.CellWrong {
		t.Fatalf("finished progress = %+v", cells)
	}
}

func TestProgress_PracticeStates(t *testing.T) {
	s, _, _ := newSession(t, 1)
	_ = s.Load(makeQuestions(3), 0, quiz.Mode{})
	_, _ = s.SelectAnswer(1, "a")
	_, _ = s.SelectAnswer(2, "a")
	s.GoTo(2)

	cells := s.Progress()
	want := []quiz.CellState{quiz.CellCorrect, quiz.CellWrong, quiz.CellUnanswered}
	for i, c := range cells {
		if c.State != want[i] {
			t.Fatalf("cell %d = %s, want %s", i, c.State, want[i])
		}
	}
	if !cells[2].Current || cells[0].Current {
		t.Fatalf("current marker wrong: %+v", cells)
	}
}

func TestShuffleOptions_KeepsCorrectText(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	q := quiz.Question{Number: 7, Options: []string{"one", "two", "three", "four"}, CorrectAnswer: "c"}
	for i := 0; i < 50; i++ {
		out := quiz.ShuffleOptions(q, r)
		idx := quiz.LetterIndex(out.CorrectAnswer)
		if idx < 0 || out.Options[idx] != "three" {
			t.Fatalf("correct letter %q points at %v", out.CorrectAnswer, out.Options)
		}
		seen := map[string]bool{}
		for _, o := range out.Options {
			seen[o] = true
		}
		if len(seen) != 4 {
			t.Fatalf("options lost: %v", out.Options)
		}
	}
	if q.Options[2] != "three" || q.CorrectAnswer != "c" {
		t.Fatalf("input question was modified")
	}
}
