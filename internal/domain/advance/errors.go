package advance

import "errors"

// Kind classifies a domain failure so the transport adapter can pick a
// status code without parsing messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindBusinessRule
	KindNotFound
	KindInvalidState
)

type Error struct {
	Kind    Kind
	Field   string // offending field for invalid-argument errors, "" otherwise
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

func InvalidArgument(field, message string) *Error {
	return &Error{Kind: KindInvalidArgument, Field: field, Message: message}
}

func BusinessRule(message string) *Error {
	return &Error{Kind: KindBusinessRule, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func InvalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

// KindOf returns the classification of err, or KindUnknown for
// infrastructure failures the domain does not interpret.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
