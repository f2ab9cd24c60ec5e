package app

import (
	"github.com/google/uuid"

	"github.com/mind-engage/radioquiz/internal/fetch"
)

// Event is anything the loop can handle.
type Event interface{ event() }

type LoadRequest struct {
	Category         string `json:"category"`
	Theme            string `json:"theme,omitempty"`
	Exam             bool   `json:"exam"`
	ShuffleAnswers   bool   `json:"shuffle_answers"`
	ShuffleQuestions bool   `json:"shuffle_questions"`
}

// LoadEvent starts a fetch. The reply comes back before the questions do.
type LoadEvent struct{ Request LoadRequest }

type KeyEvent struct{ Key string }

type AnswerEvent struct {
	Number int
	Letter string
}

type NavigateEvent struct{ Delta int }

type GoToEvent struct{ Index int }

type ShuffleEvent struct{}

type FinishEvent struct{}

type RestartEvent struct{}

// ResetEvent drops the session and anything in flight.
type ResetEvent struct{}

type snapshotEvent struct{}

type fetchDone struct {
	token uint64
	req   LoadRequest
	resp  fetch.Response
	err   error
}

// ReviewEvent walks a finished exam from the first question.
type ReviewEvent struct{}

type timerKind int

const (
	timerReveal timerKind = iota
	timerAdvance
)

type timerDue struct {
	seq    uint64
	kind   timerKind
	id     uuid.UUID
	epoch  uint64
	number int
}

func (LoadEvent) event()     {}
func (KeyEvent) event()      {}
func (AnswerEvent) event()   {}
func (NavigateEvent) event() {}
func (GoToEvent) event()     {}
func (ShuffleEvent) event()  {}
func (FinishEvent) event()   {}
func (RestartEvent) event()  {}
func (ReviewEvent) event()   {}
func (ResetEvent) event()    {}
func (snapshotEvent) event() {}
func (fetchDone) event()     {}
func (timerDue) event()      {}
