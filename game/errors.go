package game

import "errors"

var (
	ErrInvalidPhase    = errors.New("operation not allowed in this phase")
	ErrNotCurrentActor = errors.New("not the current actor")
	ErrUnknownPlayer   = errors.New("unknown player")
	ErrUnknownCard     = errors.New("card not in player's hand")
	ErrIllegalPlay     = errors.New("illegal play")
	ErrBidOutOfRange   = errors.New("bid out of range")

	ErrTooFewPlayers  = errors.New("minimum of 3 players required")
	ErrTooManyPlayers = errors.New("maximum of 6 players allowed")
	ErrInvalidConfig  = errors.New("invalid game config")
	ErrEmptyTrick     = errors.New("trick has no plays")
)

var errorKinds = []struct {
	err  error
	kind string
}{
	{ErrInvalidPhase, "InvalidPhase"},
	{ErrNotCurrentActor, "NotCurrentActor"},
	{ErrUnknownPlayer, "UnknownPlayer"},
	{ErrUnknownCard, "UnknownCard"},
	{ErrIllegalPlay, "IllegalPlay"},
	{ErrBidOutOfRange, "BidOutOfRange"},
	{ErrTooFewPlayers, "InvalidConfig"},
	{ErrTooManyPlayers, "InvalidConfig"},
	{ErrInvalidConfig, "InvalidConfig"},
}

// ErrorKind names the rule an engine error violated, or "" for anything else.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	for _, ek := range errorKinds {
		if errors.Is(err, ek.err) {
			return ek.kind
		}
	}
	return ""
}
