// Package errors provides structured error types for parley.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindConfig
	KindProtocol
	KindAccount
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindConfig:
		return "configuration error"
	case KindProtocol:
		return "protocol error"
	case KindAccount:
		return "account error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for parley.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Domain errors

func ConversationNotFound(id string) error {
	return E(Op("im.Conversation"), KindNotFound, fmt.Sprintf("conversation %s not found", id))
}

func ContactNotFound(id string) error {
	return E(Op("im.Contact"), KindNotFound, fmt.Sprintf("contact %s not found", id))
}

func InstanceNotFound(instance int64) error {
	return E(Op("im.Instance"), KindNotFound, fmt.Sprintf("protocol instance %d not found", instance))
}

func CommandUnknown(name string) error {
	return E(Op("im.Command"), KindNotFound, fmt.Sprintf("unknown command /%s", name))
}

// Protocol errors

func ProtocolUnknown(signature string) error {
	return E(Op("protocol.New"), KindProtocol, fmt.Sprintf("no protocol registered for %q", signature))
}

func ProtocolFailed(signature string, err error) error {
	return E(Op("protocol.Run"), KindProtocol, fmt.Sprintf("protocol %s stopped", signature), err)
}

// Config errors

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// Account errors

func AccountLoadFailed(path string, err error) error {
	return E(Op("config.LoadAccounts"), KindAccount, fmt.Sprintf("failed to load accounts from %s", path), err)
}

func AccountInvalid(reason string) error {
	return E(Op("config.ValidateAccounts"), KindAccount, reason)
}
