package game

import (
	"fmt"
	"strings"
)

// Phase represents the stages a game moves through
type Phase int

const (
	Setup Phase = iota
	Pregame
	PregameResult
	Bidding
	Playing
	TrickComplete
	Scoring
	Finished
)

var phaseNames = []string{
	"setup",
	"pregame",
	"pregame-result",
	"bidding",
	"playing",
	"trick-complete",
	"scoring",
	"finished",
}

func (p Phase) String() string {
	if p < Setup || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for i, n := range phaseNames {
		if n == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Tier is the skill level of an automated player
type Tier int

const (
	Easy Tier = iota
	Medium
	Hard
)

var tierNames = []string{"easy", "medium", "hard"}

func (t Tier) String() string {
	if t < Easy || int(t) >= len(tierNames) {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierNames[t]
}

// ParseTier converts a tier name (any case) to a Tier
func ParseTier(name string) (Tier, error) {
	for i, n := range tierNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Tier(i), nil
		}
	}
	return Medium, fmt.Errorf("%w: unknown tier %q", ErrInvalidConfig, name)
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Decode lets envdecode read a Tier straight from the environment.
func (t *Tier) Decode(repl string) error {
	return t.UnmarshalText([]byte(repl))
}

type ActorKind int

const (
	Human ActorKind = iota
	Automated
)

func (k ActorKind) String() string {
	if k == Human {
		return "human"
	}
	return "automated"
}

func (k ActorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ActorKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "human":
		*k = Human
	case "automated":
		*k = Automated
	default:
		return fmt.Errorf("unknown actor %q", text)
	}
	return nil
}

// Actor says who makes a player's decisions. Tier only matters when Kind is Automated.
type Actor struct {
	Kind ActorKind `json:"kind"`
	Tier Tier      `json:"tier"`
}

func (a Actor) IsHuman() bool {
	return a.Kind == Human
}
