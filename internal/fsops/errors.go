package fsops

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Kind classifies an operation failure so callers can distinguish
// "permission denied" from "already exists" instead of a single opaque false.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindPermissionDenied Kind = "permission_denied"
	KindAlreadyExists    Kind = "already_exists"
	KindNotEmpty         Kind = "not_empty"
	KindIoFailure        Kind = "io_failure"
	KindInvalidArgument  Kind = "invalid_argument"
	KindArchiveFailure   Kind = "archive_failure"
)

// OpError is the error type returned by every engine operation.
type OpError struct {
	Op   string
	Path string
	Kind Kind
	Err  error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fsops: %s %s: %s", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("fsops: %s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// TreeError aggregates per-child failures of a best-effort tree operation.
// The operation attempted every remaining node; these are the ones that failed.
type TreeError struct {
	Op   string
	Path string
	Errs []error
}

func (e *TreeError) Error() string {
	return fmt.Sprintf("fsops: %s %s: %d node(s) failed, first: %v", e.Op, e.Path, len(e.Errs), e.Errs[0])
}

func (e *TreeError) Unwrap() []error { return e.Errs }

// classify maps an underlying os/syscall error to a Kind.
func classify(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	// syscall.Errno.Is reports ENOTEMPTY as fs.ErrExist, so the
	// not-empty check must come first.
	case errors.Is(err, syscall.ENOTEMPTY):
		return KindNotEmpty
	case errors.Is(err, fs.ErrExist):
		return KindAlreadyExists
	default:
		return KindIoFailure
	}
}

// wrap builds an OpError around an underlying failure, classifying its kind.
func wrap(op, path string, err error) *OpError {
	return &OpError{Op: op, Path: path, Kind: classify(err), Err: err}
}

// errKind builds an OpError with an explicit kind.
func errKind(op, path string, kind Kind, err error) *OpError {
	return &OpError{Op: op, Path: path, Kind: kind, Err: err}
}

// KindOf extracts the Kind from an engine error. For aggregate tree failures
// it surfaces the kind of the first underlying failure.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var op *OpError
	if errors.As(err, &op) {
		return op.Kind
	}
	return classify(err)
}
