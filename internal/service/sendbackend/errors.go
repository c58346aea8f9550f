package sendbackend

import (
	"errors"
	"fmt"
)

// AntiSpamError is returned when a sender's rolling rate envelope is full.
// The scheduler treats it like any other terminal send failure.
type AntiSpamError struct {
	SenderID string
	Window   string
}

// Error implements the error interface
func (e *AntiSpamError) Error() string {
	return fmt.Sprintf("anti-spam limit reached for sender %s (%s window)", e.SenderID, e.Window)
}

// IsAntiSpam reports whether err is an anti-spam rejection.
func IsAntiSpam(err error) bool {
	var ase *AntiSpamError
	return errors.As(err, &ase)
}

// Simulated remote failure modes. Messages are distinct so job error
// records stay diagnosable.
var (
	ErrMailboxFull      = errors.New("recipient mailbox is full")
	ErrTransientServer  = errors.New("transient server error, try again later")
	ErrInvalidRecipient = errors.New("invalid recipient address")
	ErrSpamBlocked      = errors.New("message blocked by spam filter")
)
