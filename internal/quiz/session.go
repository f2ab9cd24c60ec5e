// Package quiz holds the in-memory quiz session: question order, the current
// position, recorded answers, exam timing and scoring.
//
// A Session is not safe for concurrent use. It is meant to be owned by a
// single event loop (see internal/app) that serializes every call.
package quiz

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotLoaded        = errors.New("no questions loaded")
	ErrUnknownQuestion  = errors.New("question not in session")
	ErrInvalidLetter    = errors.New("answer letter must be one of a, b, c, d")
	ErrFinished         = errors.New("session already finished")
	ErrInvalidQuestions = errors.New("invalid question set")
	ErrNotExam          = errors.New("not an exam session")
	ErrExamInProgress   = errors.New("exam in progress")
	ErrNotFinished      = errors.New("exam not finished")
)

type Session struct {
	id    uuid.UUID
	epoch uint64

	questions []Question // current order
	original  []Question // order captured at load time
	byNumber  map[int]Question
	index     int
	answers   map[int]string // question number -> letter
	revealed  map[int]bool

	mode      Mode
	passScore int
	startedAt time.Time // zero unless an exam is running
	ticker    Ticker
	result    *Result

	now       func() time.Time
	rng       *rand.Rand
	newTicker TickerFunc
}

type Option func(*Session)

func WithClock(now func() time.Time) Option { return func(s *Session) { s.now = now } }
func WithRand(r *rand.Rand) Option           { return func(s *Session) { s.rng = r } }
func WithTicker(f TickerFunc) Option         { return func(s *Session) { s.newTicker = f } }

// NewSession returns an empty session. Call Load before anything else.
func NewSession(opts ...Option) *Session {
	s := &Session{
		now:       time.Now,
		newTicker: newStdTicker,
	}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(s.now().UnixNano()))
	}
	return s
}

// Load replaces the whole session state with qs. On a validation error the
// previous state is kept.
func (s *Session) Load(qs []Question, passScore int, mode Mode) error {
	if err := validateQuestions(qs); err != nil {
		return err
	}
	s.stopTimer()

	s.id = uuid.New()
	s.epoch++
	s.original = cloneQuestions(qs)
	s.questions = cloneQuestions(qs)
	s.byNumber = make(map[int]Question, len(qs))
	for _, q := range s.original {
		s.byNumber[q.Number] = q
	}
	s.mode = mode
	s.passScore = passScore
	s.reset()
	return nil
}

// reset clears per-run state and starts the exam clock when needed.
func (s *Session) reset() {
	s.index = 0
	s.answers = map[int]string{}
	s.revealed = map[int]bool{}
	s.result = nil
	if s.mode.Exam {
		s.startedAt = s.now()
		s.ticker = s.newTicker(TickInterval)
	}
}

func (s *Session) stopTimer() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	s.startedAt = time.Time{}
}

// Close stops the exam clock without finishing the session.
func (s *Session) Close() { s.stopTimer() }

func (s *Session) ID() uuid.UUID  { return s.id }
func (s *Session) Epoch() uint64  { return s.epoch }
func (s *Session) Loaded() bool   { return len(s.questions) > 0 }
func (s *Session) Len() int       { return len(s.questions) }
func (s *Session) Index() int     { return s.index }
func (s *Session) Mode() Mode     { return s.mode }
func (s *Session) PassScore() int { return s.passScore }

// Current returns the question at the current index.
func (s *Session) Current() (int, Question, bool) {
	if !s.Loaded() {
		return -1, Question{}, false
	}
	return s.index, s.questions[s.index], true
}

// Questions returns the questions in their current order.
func (s *Session) Questions() []Question { return cloneQuestions(s.questions) }

// Answer returns the recorded letter for a question number.
func (s *Session) Answer(number int) (string, bool) {
	l, ok := s.answers[number]
	return l, ok
}

// Finished reports the cached result once Finish has run.
func (s *Session) Finished() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// SelectAnswer records letter for the question with the given number. The
// most recent selection wins. Correctness is only reported outside exam mode.
func (s *Session) SelectAnswer(number int, letter string) (Feedback, error) {
	if !s.Loaded() {
		return Feedback{}, ErrNotLoaded
	}
	if s.result != nil {
		return Feedback{}, ErrFinished
	}
	l, ok := normLetter(letter)
	if !ok {
		return Feedback{}, fmt.Errorf("%w: %q", ErrInvalidLetter, letter)
	}
	q, ok := s.byNumber[number]
	if !ok {
		return Feedback{}, fmt.Errorf("%w: %d", ErrUnknownQuestion, number)
	}
	s.answers[number] = l

	fb := Feedback{Number: number, Letter: l}
	if !s.mode.Exam {
		fb.Graded = true
		fb.Correct = l == q.CorrectAnswer
		fb.CorrectLetter = q.CorrectAnswer
	}
	return fb, nil
}

// Reveal marks the correct option of a question as shown. Exams give no
// feedback until finished, so ok is false there.
func (s *Session) Reveal(number int) (letter string, ok bool) {
	q, known := s.byNumber[number]
	if !known {
		return "", false
	}
	if s.mode.Exam && s.result == nil {
		return "", false
	}
	s.revealed[number] = true
	return q.CorrectAnswer, true
}

// Shuffle permutes the question order uniformly and keeps the current
// question current. It returns the new index of that question. A running
// exam keeps the order the backend sampled.
func (s *Session) Shuffle() (int, error) {
	if !s.Loaded() {
		return -1, ErrNotLoaded
	}
	if s.mode.Exam && s.result == nil {
		return s.index, ErrExamInProgress
	}
	cur := s.questions[s.index].Number
	shuffleQuestions(s.questions, s.rng)
	s.index = s.indexOf(cur)
	return s.index, nil
}

func (s *Session) indexOf(number int) int {
	for i, q := range s.questions {
		if q.Number == number {
			return i
		}
	}
	return -1
}

// Navigate moves one step in the direction of delta, clamped to the bounds.
// In exam mode stepping past the last question finishes the exam and
// finished is true.
func (s *Session) Navigate(delta int) (res Result, finished bool) {
	if !s.Loaded() || delta == 0 {
		return Result{}, false
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	target := s.index + step
	switch {
	case target < 0:
		return Result{}, false
	case target >= len(s.questions):
		if s.mode.Exam && s.result == nil {
			r, _ := s.Finish()
			return r, true
		}
		return Result{}, false
	}
	s.index = target
	return Result{}, false
}

// GoTo jumps to a zero-based index, e.g. from the progress grid. Invalid
// indexes are ignored.
func (s *Session) GoTo(index int) bool {
	if index < 0 || index >= len(s.questions) {
		return false
	}
	s.index = index
	return true
}

// Finish scores an exam against the pass score and stops the exam clock.
// Calling it again returns the same result. Practice sessions have nothing
// to finish.
func (s *Session) Finish() (Result, error) {
	if !s.Loaded() {
		return Result{}, ErrNotLoaded
	}
	if !s.mode.Exam {
		return Result{}, ErrNotExam
	}
	if s.result != nil {
		return *s.result, nil
	}
	st := s.Score()
	var elapsed time.Duration
	if !s.startedAt.IsZero() {
		elapsed = s.now().Sub(s.startedAt)
	}
	s.stopTimer()
	s.result = &Result{
		Correct:    st.Correct,
		Answered:   st.Answered,
		Total:      len(s.questions),
		PassScore:  s.passScore,
		Passed:     s.passScore > 0 && st.Correct >= s.passScore,
		Percentage: int(math.Round(float64(st.Correct) * 100 / float64(len(s.questions)))),
		Exam:       s.mode.Exam,
		Elapsed:    elapsed,
	}
	return *s.result, nil
}

// Score counts answered questions only.
func (s *Session) Score() Stats {
	var st Stats
	for num, l := range s.answers {
		q, ok := s.byNumber[num]
		if !ok {
			continue
		}
		st.Answered++
		if l == q.CorrectAnswer {
			st.Correct++
		}
	}
	if st.Answered > 0 {
		st.Percentage = float64(st.Correct) * 100 / float64(st.Answered)
	}
	return st
}

// Restart begins the same question set again. With ShuffleQuestions outside
// an exam the order is reshuffled, otherwise the load-time order comes back.
func (s *Session) Restart() error {
	if !s.Loaded() {
		return ErrNotLoaded
	}
	s.stopTimer()
	s.epoch++
	s.questions = cloneQuestions(s.original)
	if s.ShufflesQuestions() {
		shuffleQuestions(s.questions, s.rng)
	}
	s.reset()
	return nil
}

// ShufflesQuestions reports whether the question order is shuffled on load
// and restart. Exams never are.
func (s *Session) ShufflesQuestions() bool {
	return s.mode.ShuffleQuestions && !s.mode.Exam
}

// Review moves a finished exam back to its first question so the answers
// can be walked through with feedback shown.
func (s *Session) Review() error {
	if !s.Loaded() {
		return ErrNotLoaded
	}
	if s.result == nil {
		return ErrNotFinished
	}
	s.index = 0
	return nil
}

// Elapsed is the running exam time, or the final time once finished.
func (s *Session) Elapsed() time.Duration {
	if !s.startedAt.IsZero() {
		return s.now().Sub(s.startedAt)
	}
	if s.result != nil {
		return s.result.Elapsed
	}
	return 0
}

// Expired reports whether a running exam has used up its time limit.
func (s *Session) Expired() bool {
	return s.mode.TimeLimit > 0 && !s.startedAt.IsZero() && s.Elapsed() >= s.mode.TimeLimit
}

// Tick is the exam clock channel; nil while no exam is running, which
// blocks forever in a select.
func (s *Session) Tick() <-chan time.Time {
	if s.ticker == nil {
		return nil
	}
	return s.ticker.C()
}

func validateQuestions(qs []Question) error {
	if len(qs) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidQuestions)
	}
	seen := make(map[int]bool, len(qs))
	for _, q := range qs {
		if seen[q.Number] {
			return fmt.Errorf("%w: duplicate question number %d", ErrInvalidQuestions, q.Number)
		}
		seen[q.Number] = true
		if len(q.Options) != OptionCount {
			return fmt.Errorf("%w: question %d has %d options", ErrInvalidQuestions, q.Number, len(q.Options))
		}
		if _, ok := normLetter(q.CorrectAnswer); !ok {
			return fmt.Errorf("%w: question %d has correct answer %q", ErrInvalidQuestions, q.Number, q.CorrectAnswer)
		}
	}
	return nil
}

func cloneQuestions(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		q.Options = append([]string(nil), q.Options...)
		q.Images = append([]string(nil), q.Images...)
		if l, ok := normLetter(q.CorrectAnswer); ok {
			q.CorrectAnswer = l
		}
		out[i] = q
	}
	return out
}
