// Package commandline implements the modal command-input state machine.
// It is a pure reducer over key events: every (state, key) pair yields
// exactly one next state and nothing else happens here.
package commandline

import (
	"unicode/utf8"
)

// Marker is the mode-entry character. Typing content always starts with it.
const Marker = ":"

// State is one of Empty, Typing or Error.
type State interface {
	isState()
}

// Empty means no input is in progress; navigation keys are live.
type Empty struct{}

// Typing holds the buffer being edited. Content always begins with
// Marker and is never empty.
type Typing struct {
	Content string
}

// Error holds a backend failure message to display. It is cleared only
// by Marker or escape.
type Error struct {
	Message string
}

func (Empty) isState()  {}
func (Typing) isState() {}
func (Error) isState()  {}

// Key names match bubbletea's KeyMsg.String() values.
const (
	keyEscape    = "esc"
	keyEnter     = "enter"
	keyBackspace = "backspace"
	keyDelete    = "delete"
)

// Next returns the state after one key event. It is total: any key
// string in any state produces a valid next state. On enter the typed
// content is expected to have been handed to dispatch already; the
// buffer is simply cleared.
func Next(s State, key string) State {
	switch st := s.(type) {
	case Typing:
		switch key {
		case keyEscape, keyEnter:
			return Empty{}
		case keyBackspace, keyDelete:
			trimmed := trimLastRune(st.Content)
			if trimmed == "" {
				return Empty{}
			}
			return Typing{Content: trimmed}
		default:
			if printable(key) {
				return Typing{Content: st.Content + key}
			}
			return st
		}
	case Empty, Error, nil:
		switch key {
		case Marker:
			return Typing{Content: Marker}
		case keyEscape:
			return Empty{}
		default:
			if s == nil {
				return Empty{}
			}
			return s
		}
	default:
		return s
	}
}

// Render maps a state to the text shown in the commandline bar.
func Render(s State) string {
	switch st := s.(type) {
	case Typing:
		return st.Content + "|"
	case Error:
		return st.Message
	default:
		return ""
	}
}

// printable reports whether the key event carries a single printable
// character rather than a named control key.
func printable(key string) bool {
	return utf8.RuneCountInString(key) == 1
}

func trimLastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
