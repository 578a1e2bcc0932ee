package hullbreach

import "errors"

// Sentinel errors for the referential and resource error kinds named in the
// error taxonomy. InvalidAction is the catch-all for phase gates, card
// vetoes, and ad-hoc rule violations and always carries a message.
var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrRoomNotFound   = errors.New("room not found")
	ErrInvalidItem    = errors.New("invalid item")
	ErrNotEnoughAP    = errors.New("not enough AP")
	ErrInvalidMove    = errors.New("invalid move")
	ErrRoomBlocked    = errors.New("room blocked by hazard")
	ErrSilenced       = errors.New("silenced")
	ErrInventoryFull  = errors.New("inventory full")
)

// InvalidActionError is the catch-all descriptive error used for phase-gate
// rejections, card vetoes, and rule violations that don't have a dedicated
// sentinel.
type InvalidActionError struct {
	Message string
}

func (e *InvalidActionError) Error() string { return e.Message }

// NewInvalidAction builds an InvalidActionError with a formatted message.
func NewInvalidAction(msg string) error {
	return &InvalidActionError{Message: msg}
}
