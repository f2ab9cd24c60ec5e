package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mind-engage/radioquiz/internal/app"
	"github.com/mind-engage/radioquiz/internal/quiz"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		in   string
		want app.Event
		quit bool
		err  bool
	}{
		{"2", app.KeyEvent{Key: "2"}, false, false},
		{"n", app.KeyEvent{Key: "ArrowRight"}, false, false},
		{"prev", app.KeyEvent{Key: "ArrowLeft"}, false, false},
		{" ", app.KeyEvent{Key: " "}, false, false},
		{"r", app.KeyEvent{Key: " "}, false, false},
		{"g 3", app.GoToEvent{Index: 2}, false, false},
		{"R", app.RestartEvent{}, false, false},
		{"f", app.FinishEvent{}, false, false},
		{"v", app.ReviewEvent{}, false, false},
		{"", nil, false, false},
		{"q", nil, true, false},
		{"g 0", nil, false, true},
		{"g", nil, false, true},
		{"zzz", nil, false, true},
	}
	for _, c := range cases {
		ev, quit, err := parseCommand(c.in)
		if ev != c.want || quit != c.quit || (err != nil) != c.err {
			t.Errorf("parseCommand(%q) = %#v, %v, %v", c.in, ev, quit, err)
		}
	}
}

func TestRenderer_NoColorOutput(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	r := renderer{out: &buf, now: func() time.Time { return now }}

	snap := app.Snapshot{
		CategoryName: "Radio rules",
		ThemeName:    "exam",
		Mode:         quiz.Mode{Exam: true},
		PassScore:    1,
		Total:        2,
		Progress: []quiz.Cell{
			{Number: 1, Position: 1, Current: true, State: quiz.CellWrong},
			{Number: 2, Position: 2, State: quiz.CellUnanswered},
		},
		Current: &quiz.QuestionView{
			Number: 1, Text: "Which band?",
			Options: []quiz.OptionView{
				{Letter: "a", Text: "HF", Correct: true},
				{Letter: "b", Text: "VHF", Selected: true, Wrong: true},
			},
		},
		Result: &quiz.Result{Correct: 0, Answered: 1, Total: 2, PassScore: 1, Exam: true, Elapsed: 2 * time.Minute},
	}
	r.snapshot(snap)
	out := buf.String()

	for _, want := range []string{"Radio rules / exam", "[x].", "question 1 of 2", "#1 Which band?", "2) VHF  <", "0 of 2 correct (0%)", "not passed", "took 2 minutes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Fatalf("colour codes emitted with color=false")
	}
}

func TestRenderer_LoadingAndMessage(t *testing.T) {
	var buf bytes.Buffer
	r := renderer{out: &buf, now: time.Now}
	r.snapshot(app.Snapshot{Loading: true, Message: "failed to load questions: boom"})
	if out := buf.String(); !strings.Contains(out, "failed to load questions: boom") || !strings.Contains(out, "loading") {
		t.Fatalf("out = %q", out)
	}
}
