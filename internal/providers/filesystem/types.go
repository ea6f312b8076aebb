package filesystem

import (
	"fmt"

	"github.com/filedeck/filedeck/internal/fsops"
	"github.com/filedeck/filedeck/internal/shared/types"
)

// Notifier receives change notifications after mutating operations succeed.
type Notifier interface {
	NotifyChange(op string, path string)
}

// FilesystemOps provides common filesystem operation helpers
type FilesystemOps struct {
	Root     string
	Notifier Notifier
}

// notify reports a successful mutation. Safe with a nil Notifier.
func (ops *FilesystemOps) notify(op, path string) {
	if ops.Notifier != nil {
		ops.Notifier.NotifyChange(op, path)
	}
}

// Success helper
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure helper
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// FailureErr reports an engine error and surfaces its kind so callers can
// tell already_exists from permission_denied without parsing the message.
func FailureErr(message string, err error) (*types.Result, error) {
	msg := fmt.Sprintf("%s: %v", message, err)
	return &types.Result{
		Success: false,
		Error:   &msg,
		Data:    map[string]interface{}{"error_kind": string(fsops.KindOf(err))},
	}, nil
}
