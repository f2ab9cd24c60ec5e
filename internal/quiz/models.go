package quiz

import (
	"strings"
	"time"
)

// Letters are the option letters in display order.
const Letters = "abcd"

// OptionCount is the number of options every question carries.
const OptionCount = 4

type Question struct {
	Number        int      `json:"number"`
	Category      string   `json:"category"`
	Text          string   `json:"text"`
	Images        []string `json:"images"`
	Options       []string `json:"options"`        // always OptionCount entries, a..d
	CorrectAnswer string   `json:"correct_answer"` // a|b|c|d
}

type Mode struct {
	Exam             bool `json:"exam"`
	ShuffleAnswers   bool `json:"shuffle_answers"`
	ShuffleQuestions bool `json:"shuffle_questions"`

	// TimeLimit ends an exam on the first tick past it. Zero means no limit.
	TimeLimit time.Duration `json:"time_limit,omitempty"`
}

type Stats struct {
	Correct    int     `json:"correct"`
	Answered   int     `json:"answered"`
	Percentage float64 `json:"percentage"`
}

type Result struct {
	Correct    int           `json:"correct"`
	Answered   int           `json:"answered"`
	Total      int           `json:"total"`
	Percentage int           `json:"percentage"` // correct over total, rounded
	PassScore  int           `json:"pass_score"`
	Passed     bool          `json:"passed"`
	Exam       bool          `json:"exam"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Feedback is what SelectAnswer reports back. Graded is false in exam mode.
type Feedback struct {
	Number        int    `json:"number"`
	Letter        string `json:"letter"`
	Graded        bool   `json:"graded"`
	Correct       bool   `json:"correct"`
	CorrectLetter string `json:"correct_letter,omitempty"`
}

// normLetter lowercases and validates an option letter.
func normLetter(s string) (string, bool) {
	l := strings.ToLower(strings.TrimSpace(s))
	if len(l) != 1 || !strings.Contains(Letters, l) {
		return "", false
	}
	return l, true
}

// LetterAt returns the option letter for a zero-based option index.
func LetterAt(i int) string {
	if i < 0 || i >= len(Letters) {
		return ""
	}
	return Letters[i : i+1]
}

// LetterIndex is the inverse of LetterAt; -1 when l is not a valid letter.
func LetterIndex(l string) int {
	n, ok := normLetter(l)
	if !ok {
		return -1
	}
	return strings.Index(Letters, n)
}
