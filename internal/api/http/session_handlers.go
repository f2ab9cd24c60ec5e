// internal/api/http/session_handlers.go
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/radioquiz/internal/app"
	"github.com/mind-engage/radioquiz/internal/quiz"
)

// Dispatcher is the part of *app.App the handlers use.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev app.Event) (app.Snapshot, error)
	Snapshot(ctx context.Context) (app.Snapshot, error)
}

// MountSession registers the session routes under the given router.
func MountSession(r chi.Router, d Dispatcher) {
	r.Get("/", GetSessionHandler(d))
	r.Delete("/", ResetSessionHandler(d))
	r.Post("/load", LoadHandler(d))
	r.Post("/answer", decodeThen(d, func(in struct {
		Number int    `json:"number"`
		Letter string `json:"letter"`
	}) app.Event {
		return app.AnswerEvent{Number: in.Number, Letter: in.Letter}
	}))
	r.Post("/key", decodeThen(d, func(in struct {
		Key string `json:"key"`
	}) app.Event {
		return app.KeyEvent{Key: in.Key}
	}))
	r.Post("/navigate", decodeThen(d, func(in struct {
		Delta int `json:"delta"`
	}) app.Event {
		return app.NavigateEvent{Delta: in.Delta}
	}))
	r.Post("/goto", decodeThen(d, func(in struct {
		Index int `json:"index"`
	}) app.Event {
		return app.GoToEvent{Index: in.Index}
	}))
	r.Post("/shuffle", EventHandler(d, app.ShuffleEvent{}))
	r.Post("/finish", EventHandler(d, app.FinishEvent{}))
	r.Post("/restart", EventHandler(d, app.RestartEvent{}))
	r.Post("/review", EventHandler(d, app.ReviewEvent{}))
}

func GetSessionHandler(d Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := d.Snapshot(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func ResetSessionHandler(d Dispatcher) http.HandlerFunc {
	return EventHandler(d, app.ResetEvent{})
}

// LoadHandler starts a fetch and answers 202 with the request token; the
// questions show up in a later GET once the backend replies.
func LoadHandler(d Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in app.LoadRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		snap, err := d.Dispatch(r.Context(), app.LoadEvent{Request: in})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]any{"token": snap.Token, "loading": snap.Loading})
	}
}

// EventHandler dispatches a body-less event.
func EventHandler(d Dispatcher, ev app.Event) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := d.Dispatch(r.Context(), ev)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func decodeThen[T any](d Dispatcher, toEvent func(T) app.Event) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in T
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		EventHandler(d, toEvent(in))(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quiz.ErrNotLoaded):
		http.Error(w, "no session loaded", http.StatusNotFound)
	case errors.Is(err, quiz.ErrInvalidLetter),
		errors.Is(err, quiz.ErrUnknownQuestion),
		errors.Is(err, quiz.ErrFinished),
		errors.Is(err, quiz.ErrNotExam),
		errors.Is(err, quiz.ErrExamInProgress),
		errors.Is(err, quiz.ErrNotFinished),
		errors.Is(err, app.ErrNoCategory):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, app.ErrStopped),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
