package class

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration = errors.New("class configuration error")
	ErrAbstractCall  = errors.New("abstract method cannot be called")
	ErrNoSuper       = errors.New("method has no shadowed implementation")
	ErrUnknownMember = errors.New("unknown member")
	ErrNotCallable   = errors.New("member is not callable")
)

// ConfigurationError reports an invalid specification. It is raised while a class, trait
// or decorator is being defined or applied, never at call time.
type ConfigurationError struct {
	// Subject names the class, trait or member being defined.
	Subject string
	// Reason is the human-readable description.
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Subject == "" {
		return e.Reason
	}

	return e.Subject + ": " + e.Reason
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

func configErrorf(subject, format string, args ...any) error {
	return &ConfigurationError{Subject: subject, Reason: fmt.Sprintf(format, args...)}
}

// AbstractCallError is returned by AbstractMethod.
type AbstractCallError struct {
	Method string
}

func (e *AbstractCallError) Error() string {
	if e.Method == "" {
		return ErrAbstractCall.Error()
	}

	return fmt.Sprintf("%s: %s", e.Method, ErrAbstractCall)
}

func (e *AbstractCallError) Unwrap() error { return ErrAbstractCall }
