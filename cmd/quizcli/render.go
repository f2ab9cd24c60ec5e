package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mind-engage/radioquiz/internal/app"
	"github.com/mind-engage/radioquiz/internal/quiz"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
)

type renderer struct {
	out   io.Writer
	color bool
	now   func() time.Time
}

func (r renderer) colorize(s, color string) string {
	if !r.color || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r renderer) snapshot(s app.Snapshot) {
	if s.Message != "" {
		fmt.Fprintln(r.out, r.colorize(s.Message, colorRed))
	}
	if s.Loading {
		fmt.Fprintln(r.out, "loading questions...")
		return
	}
	if !s.Loaded() {
		return
	}
	title := s.CategoryName
	if s.ThemeName != "" {
		title += " / " + s.ThemeName
	}
	fmt.Fprintln(r.out, r.colorize(title, colorBold+colorCyan))
	fmt.Fprintln(r.out, r.progress(s.Progress))
	fmt.Fprintln(r.out, r.status(s))
	if s.Current != nil {
		r.question(*s.Current)
	}
	if s.Result != nil {
		r.result(*s.Result)
	}
}

func (r renderer) progress(cells []quiz.Cell) string {
	var b strings.Builder
	for _, c := range cells {
		mark := "."
		color := ""
		switch c.State {
		case quiz.CellAnswered:
			mark, color = "*", colorYellow
		case quiz.CellCorrect:
			mark, color = "+", colorGreen
		case quiz.CellWrong:
			mark, color = "x", colorRed
		}
		if c.Current {
			mark = "[" + mark + "]"
		}
		b.WriteString(r.colorize(mark, color))
	}
	return b.String()
}

func (r renderer) status(s app.Snapshot) string {
	parts := []string{fmt.Sprintf("question %d of %d", s.Index+1, s.Total)}
	if s.Mode.Exam {
		parts = append(parts, fmt.Sprintf("exam, pass %d", s.PassScore))
		if s.Result == nil && s.ElapsedMS > 0 {
			started := r.now().Add(-time.Duration(s.ElapsedMS) * time.Millisecond)
			parts = append(parts, "started "+humanize.Time(started))
		}
	} else if s.Stats.Answered > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d correct (%.0f%%)", s.Stats.Correct, s.Stats.Answered, s.Stats.Percentage))
	}
	return strings.Join(parts, " | ")
}

func (r renderer) question(v quiz.QuestionView) {
	fmt.Fprintf(r.out, "\n%s\n", r.colorize(fmt.Sprintf("#%d %s", v.Number, v.Text), colorBold))
	for _, img := range v.Images {
		fmt.Fprintf(r.out, "  (image: %s)\n", img)
	}
	for i, o := range v.Options {
		line := fmt.Sprintf("  %d) %s", i+1, o.Text)
		color := ""
		switch {
		case o.Correct:
			color = colorGreen
		case o.Wrong:
			color = colorRed
		case o.Selected:
			color = colorYellow
		}
		if o.Selected {
			line += "  <"
		}
		fmt.Fprintln(r.out, r.colorize(line, color))
	}
}

func (r renderer) result(res quiz.Result) {
	verdict := r.colorize("not passed", colorRed+colorBold)
	if res.Passed {
		verdict = r.colorize("passed", colorGreen+colorBold)
	}
	line := fmt.Sprintf("\nfinished: %d of %d correct (%d%%), %d answered", res.Correct, res.Total, res.Percentage, res.Answered)
	if res.PassScore > 0 {
		line += fmt.Sprintf(", pass score %d, %s", res.PassScore, verdict)
	}
	if res.Elapsed > 0 {
		line += ", took " + strings.TrimSuffix(humanize.RelTime(r.now().Add(-res.Elapsed), r.now(), "", ""), " ")
	}
	fmt.Fprintln(r.out, line)
}

func (r renderer) help() {
	fmt.Fprintln(r.out, r.colorize("1-4 answer, n/p next/prev, space or r reveal, g N go to, s shuffle, f finish, v review, R restart, q quit", colorYellow))
}
