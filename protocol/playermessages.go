package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/minaorangina/wizard/game"
)

// InboundMessage is a message from the UI to the game
type InboundMessage struct {
	Command  Cmd    `json:"command"`
	PlayerID string `json:"playerID"`
	Amount   int    `json:"amount,omitempty"`
	CardID   string `json:"cardID,omitempty"`
}

// OutboundMessage is a message from the game to the UI
type OutboundMessage struct {
	Command   Cmd            `json:"command"`
	State     *game.Snapshot `json:"state,omitempty"`
	CardIDs   []string       `json:"cardIDs,omitempty"`
	Winners   []string       `json:"winners,omitempty"`
	Error     string         `json:"error,omitempty"`
	ErrorKind string         `json:"errorKind,omitempty"`
}

type Cmd int

const (
	Null Cmd = iota
	BeginRound
	AdvancePregame
	Bid
	Play
	AdvanceTrick
	State
	LegalPlays
	Winners
	Error
)

var CmdNames = map[Cmd]string{
	Null:           "Null",
	BeginRound:     "BeginRound",
	AdvancePregame: "AdvancePregame",
	Bid:            "Bid",
	Play:           "Play",
	AdvanceTrick:   "AdvanceTrick",
	State:          "State",
	LegalPlays:     "LegalPlays",
	Winners:        "Winners",
	Error:          "Error",
}

var NameToCmd = map[string]Cmd{
	"Null":           Null,
	"BeginRound":     BeginRound,
	"AdvancePregame": AdvancePregame,
	"Bid":            Bid,
	"Play":           Play,
	"AdvanceTrick":   AdvanceTrick,
	"State":          State,
	"LegalPlays":     LegalPlays,
	"Winners":        Winners,
	"Error":          Error,
}

func (c Cmd) String() string {
	if name, ok := CmdNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Cmd(%d)", int(c))
}

// ParseCmd converts a command name to a Cmd
func ParseCmd(name string) (Cmd, error) {
	c, ok := NameToCmd[name]
	if !ok {
		return Null, fmt.Errorf("unknown command %q", name)
	}
	return c, nil
}

// Commands travel by name so the UI never depends on their numbering.
func (c Cmd) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Cmd) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseCmd(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ErrorMessage reports a failed command, tagging it with the rule it broke.
func ErrorMessage(err error) OutboundMessage {
	return OutboundMessage{
		Command:   Error,
		Error:     err.Error(),
		ErrorKind: game.ErrorKind(err),
	}
}

// StateMessage carries a snapshot back in reply to cmd.
func StateMessage(cmd Cmd, s game.Snapshot) OutboundMessage {
	return OutboundMessage{Command: cmd, State: &s}
}
