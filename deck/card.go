package deck

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinRank = 1
	MaxRank = 13

	// SpecialsPerKind is the number of HighSpecial (and of LowSpecial) cards in a deck.
	SpecialsPerKind = 4
)

// Suit represents a suit in a deck of cards.
// NoSuit is carried by special cards, and doubles as "no trump".
type Suit int

const (
	NoSuit Suit = iota
	Blue
	Red
	Yellow
	Green
)

var (
	suitNames  = []string{"none", "blue", "red", "yellow", "green"}
	suitTitles = []string{"None", "Blue", "Red", "Yellow", "Green"}
)

// Suits lists the four real suits in deck order.
var Suits = []Suit{Blue, Red, Yellow, Green}

func (s Suit) String() string {
	if s < NoSuit || int(s) >= len(suitNames) {
		return fmt.Sprintf("Suit(%d)", int(s))
	}
	return suitNames[s]
}

// ParseSuit converts a suit name back to a Suit
func ParseSuit(name string) (Suit, error) {
	for i, n := range suitNames {
		if strings.EqualFold(n, name) {
			return Suit(i), nil
		}
	}
	return NoSuit, fmt.Errorf("unknown suit %q", name)
}

func (s Suit) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Suit) UnmarshalText(text []byte) error {
	parsed, err := ParseSuit(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Kind distinguishes numbered cards from the two kinds of special card.
type Kind int

const (
	Numbered Kind = iota
	// HighSpecial always wins a trick (the first one played does).
	HighSpecial
	// LowSpecial always loses a trick.
	LowSpecial
)

var kindNames = []string{"numbered", "wizard", "jester"}

func (k Kind) String() string {
	if k < Numbered || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind converts a kind name back to a Kind
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), nil
		}
	}
	return Numbered, fmt.Errorf("unknown card kind %q", name)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Card is an immutable playing card.
type Card struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`
	Suit Suit   `json:"suit"`
	Rank int    `json:"rank"`
}

var ErrCardOutOfRange = errors.New("card arguments out of range")

// NewNumberedCard constructs a numbered card
func NewNumberedCard(suit Suit, rank int) (Card, error) {
	if suit == NoSuit || suit > Green || rank < MinRank || rank > MaxRank {
		return Card{}, ErrCardOutOfRange
	}
	return Card{
		ID:   fmt.Sprintf("%s-%d", suit, rank),
		Kind: Numbered,
		Suit: suit,
		Rank: rank,
	}, nil
}

// NewSpecialCard constructs the n-th (1-based) card of a special kind
func NewSpecialCard(kind Kind, n int) (Card, error) {
	if kind == Numbered || kind > LowSpecial || n < 1 || n > SpecialsPerKind {
		return Card{}, ErrCardOutOfRange
	}
	return Card{
		ID:   fmt.Sprintf("%s-%d", kind, n),
		Kind: kind,
		Suit: NoSuit,
	}, nil
}

// MustCard is NewNumberedCard for callers holding known-good arguments.
func MustCard(suit Suit, rank int) Card {
	c, err := NewNumberedCard(suit, rank)
	if err != nil {
		panic(err)
	}
	return c
}

// MustSpecial is NewSpecialCard for callers holding known-good arguments.
func MustSpecial(kind Kind, n int) Card {
	c, err := NewSpecialCard(kind, n)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Card) IsSpecial() bool {
	return c.Kind != Numbered
}

// TurnOrderValue orders cards for the pregame draw:
// HighSpecial beats every rank, LowSpecial loses to every rank.
func (c Card) TurnOrderValue() int {
	switch c.Kind {
	case HighSpecial:
		return MaxRank + 2
	case LowSpecial:
		return 0
	}
	return c.Rank
}

func (c Card) String() string {
	switch c.Kind {
	case HighSpecial:
		return "Wizard"
	case LowSpecial:
		return "Jester"
	}
	return fmt.Sprintf("%d of %s", c.Rank, suitTitles[c.Suit])
}
