// Package failure classifies acquisition errors into network, filesystem and
// extraction failures so callers can branch with errors.Is.
package failure

import (
	"errors"
	"fmt"
)

// Kind identifies which stage of an acquisition failed.
type Kind int

// Failure kinds.
const (
	Network Kind = iota + 1
	Filesystem
	Extraction
)

// Sentinels matched by errors.Is against any *Error of the same Kind.
var (
	ErrNetwork    = errors.New("network error")
	ErrFilesystem = errors.New("filesystem error")
	ErrExtraction = errors.New("extraction error")
)

func (k Kind) String() string {
	switch k {
	case Network:
		return "network"
	case Filesystem:
		return "filesystem"
	case Extraction:
		return "extraction"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case Network:
		return ErrNetwork
	case Filesystem:
		return ErrFilesystem
	case Extraction:
		return ErrExtraction
	default:
		return nil
	}
}

// Error carries the failed operation, its target (path or URL) and the cause.
type Error struct {
	Kind   Kind
	Op     string
	Target string
	Err    error
}

func (e *Error) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// NetworkErr wraps err as a network failure.
func NetworkErr(op, target string, err error) error {
	return &Error{Kind: Network, Op: op, Target: target, Err: err}
}

// FilesystemErr wraps err as a filesystem failure.
func FilesystemErr(op, target string, err error) error {
	return &Error{Kind: Filesystem, Op: op, Target: target, Err: err}
}

// ExtractionErr wraps err as an extraction failure.
func ExtractionErr(op, target string, err error) error {
	return &Error{Kind: Extraction, Op: op, Target: target, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
