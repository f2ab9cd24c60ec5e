package app

import (
	"strconv"

	"github.com/mind-engage/radioquiz/internal/quiz"
)

type Action int

const (
	ActionNone Action = iota
	ActionSelect
	ActionNavigate
	ActionReveal
)

type KeyAction struct {
	Action Action
	Letter string // ActionSelect
	Delta  int    // ActionNavigate
}

// ParseKey maps a key name (DOM KeyboardEvent.key style) to an action:
// digits 1-4 pick an option, ArrowLeft/ArrowRight move, Space reveals.
func ParseKey(key string) (KeyAction, bool) {
	switch key {
	case "ArrowLeft", "Left":
		return KeyAction{Action: ActionNavigate, Delta: -1}, true
	case "ArrowRight", "Right":
		return KeyAction{Action: ActionNavigate, Delta: 1}, true
	case " ", "Space", "Spacebar":
		return KeyAction{Action: ActionReveal}, true
	}
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 || n > quiz.OptionCount {
		return KeyAction{}, false
	}
	return KeyAction{Action: ActionSelect, Letter: quiz.LetterAt(n - 1)}, true
}
