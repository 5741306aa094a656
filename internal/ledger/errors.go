package ledger

import (
	"errors"
	"fmt"

	"github.com/Tiliavir/ride-ledger/internal/model"
	"github.com/Tiliavir/ride-ledger/internal/storage"
)

// Errors surfaced by the service. Validation errors come from the model.
var (
	ErrInvalidAmount   = model.ErrInvalidAmount
	ErrIncompleteFuel  = model.ErrIncompleteFuel
	ErrIncompleteShift = model.ErrIncompleteShift
	ErrNotFound        = storage.ErrRecordNotFound

	ErrNoActiveShift = errors.New("no shift is running")
	ErrShiftActive   = errors.New("a shift is already running")
	ErrAlreadyPaused = errors.New("the shift is already paused")
	ErrNotPaused     = errors.New("the shift is not paused")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
