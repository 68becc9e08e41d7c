package blaseball

import (
	"errors"
	"fmt"
)

// NotFoundError reports a missing roster entity.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*NotFoundError)
	return ok
}

// ReconstructionError wraps a fatal mismatch detected while replaying one
// game's feed: an unknown event code, a parser failure, an expectation-flag
// violation, a name/nickname mismatch, or an invariant violation. It carries
// enough context to locate which event and which game broke.
type ReconstructionError struct {
	GameID    string
	EventID   string
	EventType int
	Reason    string
	Cause     error
}

func (e *ReconstructionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("game %s event %s (type %d): %s: %v", e.GameID, e.EventID, e.EventType, e.Reason, e.Cause)
	}
	return fmt.Sprintf("game %s event %s (type %d): %s", e.GameID, e.EventID, e.EventType, e.Reason)
}

func (e *ReconstructionError) Unwrap() error { return e.Cause }

func NewReconstructionError(gameID, eventID string, eventType int, reason string, cause error) error {
	return &ReconstructionError{GameID: gameID, EventID: eventID, EventType: eventType, Reason: reason, Cause: cause}
}

func IsReconstructionError(err error) bool {
	if err == nil {
		return false
	}
	var re *ReconstructionError
	return errors.As(err, &re)
}
