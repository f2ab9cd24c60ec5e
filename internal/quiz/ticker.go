package quiz

import "time"

// Ticker is the recurring exam clock. The session owns it and stops it when
// the exam ends or another question set is loaded.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc starts a ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type stdTicker struct{ t *time.Ticker }

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()              { s.t.Stop() }

func newStdTicker(d time.Duration) Ticker { return stdTicker{t: time.NewTicker(d)} }

// TickInterval is the exam clock resolution.
const TickInterval = time.Second
