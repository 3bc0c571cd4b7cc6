package model

import (
	"errors"
	"fmt"
)

var (
	ErrMissingKey   = errors.New("missing key")
	ErrTypeMismatch = errors.New("type mismatch")
)

// Kind classifies every failure a poll cycle can produce.
type Kind int

const (
	KindUnknown Kind = iota
	KindMissingCredential
	KindTransportFailure
	KindNoAnswer
	KindMalformedResponse
	KindUnrecognizedStatus
	KindDeliveryFailure
)

func (k Kind) String() string {
	switch k {
	case KindMissingCredential:
		return "missing credential"
	case KindTransportFailure:
		return "transport failure"
	case KindNoAnswer:
		return "no answer from endpoint"
	case KindMalformedResponse:
		return "malformed response"
	case KindUnrecognizedStatus:
		return "unrecognized status"
	case KindDeliveryFailure:
		return "message delivery failure"
	default:
		return "unknown"
	}
}

// Error is the error returned by every stage of the notifier.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
