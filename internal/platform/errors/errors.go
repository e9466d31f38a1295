package apperrors

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrSequenceActive = errors.New("prediction already in progress")
	ErrNotRevealed    = errors.New("no prediction to reset")
	ErrClosed         = errors.New("oracle is closed")
	ErrBadTransition  = errors.New("invalid state transition")
)
