package quiz

type OptionView struct {
	Letter   string `json:"letter"`
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
	Correct  bool   `json:"correct"` // only set when feedback is shown
	Wrong    bool   `json:"wrong"`   // selected and not correct, same rule
}

type QuestionView struct {
	Number   int          `json:"number"`
	Position int          `json:"position"` // 1-based
	Category string       `json:"category"`
	Text     string       `json:"text"`
	Images   []string     `json:"images"`
	Current  bool         `json:"current"`
	Answer   string       `json:"answer,omitempty"`
	Revealed bool         `json:"revealed"`
	Feedback bool         `json:"feedback"`
	Options  []OptionView `json:"options"`
}

type CellState string

const (
	CellUnanswered CellState = "unanswered"
	CellAnswered   CellState = "answered" // exam in progress: no correctness yet
	CellCorrect    CellState = "correct"
	CellWrong      CellState = "wrong"
)

// Cell is one entry of the progress grid.
type Cell struct {
	Number   int       `json:"number"`
	Position int       `json:"position"`
	Current  bool      `json:"current"`
	State    CellState `json:"state"`
}

// feedback reports whether correctness of q may be shown right now.
func (s *Session) feedback(number int) bool {
	if s.result != nil {
		return true
	}
	if s.mode.Exam {
		return false
	}
	_, answered := s.answers[number]
	return answered || s.revealed[number]
}

// Views renders every question in current order.
func (s *Session) Views() []QuestionView {
	out := make([]QuestionView, 0, len(s.questions))
	for i := range s.questions {
		out = append(out, s.view(i))
	}
	return out
}

// View renders the question at index i.
func (s *Session) View(i int) (QuestionView, bool) {
	if i < 0 || i >= len(s.questions) {
		return QuestionView{}, false
	}
	return s.view(i), true
}

func (s *Session) view(i int) QuestionView {
	q := s.questions[i]
	ans := s.answers[q.Number]
	fb := s.feedback(q.Number)
	v := QuestionView{
		Number:   q.Number,
		Position: i + 1,
		Category: q.Category,
		Text:     q.Text,
		Images:   append([]string{}, q.Images...),
		Current:  i == s.index,
		Answer:   ans,
		Revealed: s.revealed[q.Number],
		Feedback: fb,
		Options:  make([]OptionView, len(q.Options)),
	}
	for j, text := range q.Options {
		l := LetterAt(j)
		ov := OptionView{Letter: l, Text: text, Selected: l == ans}
		if fb {
			ov.Correct = l == q.CorrectAnswer
			ov.Wrong = ov.Selected && !ov.Correct
		}
		v.Options[j] = ov
	}
	return v
}

// Progress builds the progress grid in current order.
func (s *Session) Progress() []Cell {
	out := make([]Cell, len(s.questions))
	for i, q := range s.questions {
		c := Cell{Number: q.Number, Position: i + 1, Current: i == s.index, State: CellUnanswered}
		if l, ok := s.answers[q.Number]; ok {
			switch {
			case s.mode.Exam && s.result == nil:
				c.State = CellAnswered
			case l == q.CorrectAnswer:
				c.State = CellCorrect
			default:
				c.State = CellWrong
			}
		}
		out[i] = c
	}
	return out
}
