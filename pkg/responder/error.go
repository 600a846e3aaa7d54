package responder

import (
	"errors"
	"fmt"
)

// Error is the single failure type all responders return. Message is written
// for end users; the wrapped transport error stays in logs only.
type Error struct {
	Op      string // "text-chat", "stt", "tts", "file", "translate"
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(op, message string, err error) *Error {
	return &Error{Op: op, Message: message, Err: err}
}

// AsError unwraps err into *Error when possible.
func AsError(err error) (*Error, bool) {
	var re *Error
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
