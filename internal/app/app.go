// Package app is the presentation adapter core: one goroutine owns the quiz
// session and every input (keys, clicks, ticks, network responses) reaches it
// as an event on a channel.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/mind-engage/radioquiz/internal/fetch"
	"github.com/mind-engage/radioquiz/internal/quiz"
)

var (
	ErrStopped      = errors.New("dispatcher stopped")
	ErrNoCategory   = errors.New("category required")
	ErrUnknownEvent = errors.New("unknown event")
)

type Config struct {
	// RevealDelay is how long a wrong practice answer stays on screen before
	// the correct option is shown. Zero reveals immediately.
	RevealDelay time.Duration
	// AdvanceDelay is the pause before moving on after an answer. On the last
	// exam question it finishes the exam instead. Zero turns it off.
	AdvanceDelay time.Duration
	// TimeLimit is applied to exam loads. Zero means untimed.
	TimeLimit time.Duration
	// ShuffleAnswersLocally asks the backend for unshuffled options and
	// shuffles them here instead.
	ShuffleAnswersLocally bool
}

// Stopper is satisfied by *time.Timer.
type Stopper interface{ Stop() bool }

// Scheduler runs f once after d, on a goroutine of its choosing.
type Scheduler func(d time.Duration, f func()) Stopper

func timeAfter(d time.Duration, f func()) Stopper { return time.AfterFunc(d, f) }

type Option func(*App)

func WithScheduler(s Scheduler) Option           { return func(a *App) { a.after = s } }
func WithSessionOptions(o ...quiz.Option) Option { return func(a *App) { a.sessionOpts = o } }
func WithRand(r *rand.Rand) Option               { return func(a *App) { a.rng = r } }

type App struct {
	cfg     Config
	fetcher fetch.Fetcher
	after   Scheduler
	rng     *rand.Rand

	sessionOpts []quiz.Option
	session     *quiz.Session

	inbox chan envelope
	done  chan struct{}

	// owned by the Run goroutine
	runCtx      context.Context
	token       uint64
	cancelFetch context.CancelFunc
	loading     bool
	message     string
	meta        meta
	feedback    *quiz.Feedback
	timers      map[uint64]Stopper
	timerSeq    uint64
}

type meta struct {
	request      LoadRequest
	categoryName string
	themeName    string
}

type envelope struct {
	ev    Event
	reply chan reply
}

type reply struct {
	snap Snapshot
	err  error
}

func New(f fetch.Fetcher, cfg Config, opts ...Option) *App {
	a := &App{
		cfg:     cfg,
		fetcher: f,
		after:   timeAfter,
		inbox:   make(chan envelope, 16),
		timers:  map[uint64]Stopper{},
		done:    make(chan struct{}),
	}
	for _, o := range opts {
		o(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	a.session = quiz.NewSession(a.sessionOpts...)
	return a
}

// Run is the event loop. It returns when ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.runCtx = ctx
	defer a.shutdown()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env := <-a.inbox:
			err := a.handle(env.ev)
			if env.reply != nil {
				env.reply <- reply{snap: a.snapshot(), err: err}
			}
		case <-a.session.Tick():
			a.onTick()
		}
	}
}

func (a *App) shutdown() {
	if a.cancelFetch != nil {
		a.cancelFetch()
	}
	a.stopTimers()
	a.session.Close()
	close(a.done)
}

// Dispatch hands ev to the loop and waits for the resulting snapshot.
func (a *App) Dispatch(ctx context.Context, ev Event) (Snapshot, error) {
	env := envelope{ev: ev, reply: make(chan reply, 1)}
	select {
	case a.inbox <- env:
	case <-a.done:
		return Snapshot{}, ErrStopped
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
	select {
	case r := <-env.reply:
		return r.snap, r.err
	case <-a.done:
		return Snapshot{}, ErrStopped
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Snapshot returns the current view state.
func (a *App) Snapshot(ctx context.Context) (Snapshot, error) {
	return a.Dispatch(ctx, snapshotEvent{})
}

// post queues an internal event without waiting for it to be handled.
func (a *App) post(ev Event) {
	select {
	case a.inbox <- envelope{ev: ev}:
	case <-a.done:
	}
}

func (a *App) handle(ev Event) error {
	switch e := ev.(type) {
	case snapshotEvent:
		return nil
	case LoadEvent:
		return a.load(e.Request)
	case fetchDone:
		a.onFetched(e)
		return nil
	case KeyEvent:
		return a.key(e.Key)
	case AnswerEvent:
		return a.answer(e.Number, e.Letter)
	case NavigateEvent:
		a.navigate(e.Delta)
		return nil
	case GoToEvent:
		if a.session.GoTo(e.Index) {
			a.feedback = nil
		}
		return nil
	case ShuffleEvent:
		_, err := a.session.Shuffle()
		return err
	case FinishEvent:
		return a.finish()
	case ReviewEvent:
		a.feedback = nil
		return a.session.Review()
	case RestartEvent:
		a.stopTimers()
		a.feedback = nil
		return a.session.Restart()
	case ResetEvent:
		a.reset()
		return nil
	case timerDue:
		a.onTimerDue(e)
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}
}

func (a *App) load(req LoadRequest) error {
	if req.Category == "" {
		return ErrNoCategory
	}
	if a.cancelFetch != nil {
		a.cancelFetch()
	}
	a.token++
	token := a.token
	ctx, cancel := context.WithCancel(a.runCtx)
	a.cancelFetch = cancel
	a.loading = true
	a.message = ""

	freq := fetch.Request{
		Category: req.Category,
		Theme:    req.Theme,
		Exam:     req.Exam,
		Shuffle:  req.ShuffleAnswers && !a.cfg.ShuffleAnswersLocally,
	}
	go func() {
		resp, err := a.fetcher.Fetch(ctx, freq)
		a.post(fetchDone{token: token, req: req, resp: resp, err: err})
	}()
	return nil
}

func (a *App) onFetched(d fetchDone) {
	if d.token != a.token {
		log.Printf("dropping stale questions response %d (latest %d)", d.token, a.token)
		return
	}
	a.cancelFetch()
	a.cancelFetch = nil
	a.loading = false

	if d.err != nil {
		log.Printf("fetch questions %s: %v", d.req.Category, d.err)
		a.message = "failed to load questions: " + d.err.Error()
		return
	}
	qs := d.resp.Questions
	if d.req.ShuffleAnswers && a.cfg.ShuffleAnswersLocally {
		qs = quiz.ShuffleAllOptions(qs, a.rng)
	}
	mode := quiz.Mode{
		Exam:             d.req.Exam,
		ShuffleAnswers:   d.req.ShuffleAnswers,
		ShuffleQuestions: d.req.ShuffleQuestions,
	}
	if mode.Exam {
		mode.TimeLimit = a.cfg.TimeLimit
	}
	if err := a.session.Load(qs, d.resp.PassScore, mode); err != nil {
		log.Printf("load questions %s: %v", d.req.Category, err)
		a.message = "failed to load questions: " + err.Error()
		return
	}
	a.stopTimers()
	a.feedback = nil
	if a.session.ShufflesQuestions() {
		_, _ = a.session.Shuffle()
	}
	a.meta = meta{request: d.req, categoryName: d.resp.CategoryName, themeName: d.resp.ThemeName}
	log.Printf("session %s: loaded %d questions (category=%s exam=%v)", a.session.ID(), a.session.Len(), d.req.Category, mode.Exam)
}

func (a *App) key(k string) error {
	act, ok := ParseKey(k)
	if !ok {
		return nil
	}
	_, q, loaded := a.session.Current()
	if !loaded {
		return nil
	}
	switch act.Action {
	case ActionSelect:
		return a.answer(q.Number, act.Letter)
	case ActionNavigate:
		a.navigate(act.Delta)
	case ActionReveal:
		a.session.Reveal(q.Number)
	}
	return nil
}

func (a *App) answer(number int, letter string) error {
	fb, err := a.session.SelectAnswer(number, letter)
	if err != nil {
		return err
	}
	a.feedback = &fb
	if fb.Graded && !fb.Correct {
		if a.cfg.RevealDelay <= 0 {
			a.session.Reveal(number)
		} else {
			a.schedule(a.cfg.RevealDelay, timerReveal, number)
		}
	}
	if a.cfg.AdvanceDelay > 0 {
		a.schedule(a.cfg.AdvanceDelay, timerAdvance, number)
	}
	return nil
}

func (a *App) navigate(delta int) {
	if delta != 0 {
		a.feedback = nil
	}
	if res, finished := a.session.Navigate(delta); finished {
		a.logResult(res)
	}
}

func (a *App) finish() error {
	res, err := a.session.Finish()
	if err != nil {
		return err
	}
	a.logResult(res)
	return nil
}

// schedule posts a timerDue for number after d. The event only applies to
// the session run that was current when it was scheduled.
func (a *App) schedule(d time.Duration, kind timerKind, number int) {
	a.timerSeq++
	due := timerDue{
		seq:    a.timerSeq,
		kind:   kind,
		id:     a.session.ID(),
		epoch:  a.session.Epoch(),
		number: number,
	}
	a.timers[due.seq] = a.after(d, func() { a.post(due) })
}

func (a *App) onTimerDue(e timerDue) {
	delete(a.timers, e.seq)
	if e.id != a.session.ID() || e.epoch != a.session.Epoch() {
		return
	}
	switch e.kind {
	case timerReveal:
		a.session.Reveal(e.number)
	case timerAdvance:
		// the user may have moved on already
		idx, q, ok := a.session.Current()
		if !ok || q.Number != e.number {
			return
		}
		if _, done := a.session.Finished(); done {
			return
		}
		if !a.session.Mode().Exam && idx == a.session.Len()-1 {
			return
		}
		// past the last exam question this finishes the exam
		a.navigate(1)
	}
}

func (a *App) stopTimers() {
	for seq, t := range a.timers {
		t.Stop()
		delete(a.timers, seq)
	}
}

func (a *App) onTick() {
	if a.session.Expired() {
		res, err := a.session.Finish()
		if err == nil {
			log.Printf("session %s: time limit reached", a.session.ID())
			a.logResult(res)
		}
	}
}

func (a *App) reset() {
	if a.cancelFetch != nil {
		a.cancelFetch()
		a.cancelFetch = nil
	}
	a.token++ // anything still in flight is now stale
	a.loading = false
	a.message = ""
	a.feedback = nil
	a.meta = meta{}
	a.stopTimers()
	a.session.Close()
	a.session = quiz.NewSession(a.sessionOpts...)
}

func (a *App) logResult(res quiz.Result) {
	log.Printf("session %s: finished %d/%d correct (pass %d, passed=%v, elapsed %s)",
		a.session.ID(), res.Correct, res.Total, res.PassScore, res.Passed, res.Elapsed.Round(time.Second))
}
