package command

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies the failures the dispatcher knows how to report to a user.
type ErrorKind int

const (
	KindGuildOnly ErrorKind = iota + 1
	KindFeatureDisabled
	KindCooldown
	KindPermissionDenied
	KindMissingArgument
	KindBadArgument
	KindUnknownVerb
)

func (k ErrorKind) String() string {
	switch k {
	case KindGuildOnly:
		return "guild_only"
	case KindFeatureDisabled:
		return "feature_disabled"
	case KindCooldown:
		return "cooldown"
	case KindPermissionDenied:
		return "permission_denied"
	case KindMissingArgument:
		return "missing_argument"
	case KindBadArgument:
		return "bad_argument"
	case KindUnknownVerb:
		return "unknown_verb"
	default:
		return "unknown"
	}
}

// Error is returned by checks, argument parsing and handlers to request a specific
// user-facing notice. Any other error is treated as an unexpected failure.
type Error struct {
	Kind       ErrorKind
	Message    string
	RetryAfter time.Duration
	Err        error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsError extracts a classified *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var cmdErr *Error
	if errors.As(err, &cmdErr) {
		return cmdErr, true
	}
	return nil, false
}

func IsKind(err error, kind ErrorKind) bool {
	cmdErr, ok := AsError(err)
	return ok && cmdErr.Kind == kind
}
