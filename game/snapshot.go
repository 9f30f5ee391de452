package game

import "github.com/minaorangina/wizard/deck"

// Player is a seat at the table along with its round and game tallies.
// Bid is nil until the player has bid this round.
type Player struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Actor     Actor       `json:"actor"`
	Hand      []deck.Card `json:"hand"`
	Bid       *int        `json:"bid"`
	TricksWon int         `json:"tricksWon"`
	Score     int         `json:"score"`
}

func (p Player) copy() Player {
	c := p
	c.Hand = copyCards(p.Hand)
	if p.Bid != nil {
		bid := *p.Bid
		c.Bid = &bid
	}
	return c
}

// Play is a card played into a trick. Order counts from 0 within the trick.
type Play struct {
	PlayerID string    `json:"playerId"`
	Card     deck.Card `json:"card"`
	Order    int       `json:"order"`
}

// Trick numbers start at 1 each round. Leader is a seat index.
type Trick struct {
	Number int       `json:"number"`
	Leader int       `json:"leader"`
	Plays  []Play    `json:"plays"`
	Winner string    `json:"winner"`
	Trump  deck.Suit `json:"trump"`
}

func (t Trick) copy() Trick {
	c := t
	c.Plays = make([]Play, len(t.Plays))
	copy(c.Plays, t.Plays)
	return c
}

// RoundHistory records a scored round.
type RoundHistory struct {
	Round       int            `json:"round"`
	TrumpCard   *deck.Card     `json:"trumpCard"`
	Trump       deck.Suit      `json:"trump"`
	Bids        map[string]int `json:"bids"`
	TricksWon   map[string]int `json:"tricksWon"`
	ScoreDeltas map[string]int `json:"scoreDeltas"`
	Tricks      []Trick        `json:"tricks"`
}

func (h RoundHistory) copy() RoundHistory {
	c := h
	c.TrumpCard = copyCardPtr(h.TrumpCard)
	c.Bids = copyIntMap(h.Bids)
	c.TricksWon = copyIntMap(h.TricksWon)
	c.ScoreDeltas = copyIntMap(h.ScoreDeltas)
	c.Tricks = copyTricks(h.Tricks)
	return c
}

// Snapshot is a detached copy of the game state.
// Changing it has no effect on the engine it came from.
type Snapshot struct {
	GameID          string                 `json:"gameId"`
	Round           int                    `json:"round"`
	MaxRounds       int                    `json:"maxRounds"`
	Phase           Phase                  `json:"phase"`
	Players         []Player               `json:"players"`
	CurrentActor    int                    `json:"currentActor"`
	TrumpCard       *deck.Card             `json:"trumpCard"`
	Trump           deck.Suit              `json:"trump"`
	DeckCount       int                    `json:"deckCount"`
	Bids            map[string]int         `json:"bids"`
	BiddingComplete bool                   `json:"biddingComplete"`
	TrickCompleted  bool                   `json:"trickCompleted"`
	CurrentTrick    *Trick                 `json:"currentTrick"`
	CompletedTricks []Trick                `json:"completedTricks"`
	History         []RoundHistory         `json:"history"`
	PregameCards    map[string][]deck.Card `json:"pregameCards"`
	TurnOrderWinner string                 `json:"turnOrderWinner"`
}

// SeatOf returns the seat index of a player, or -1.
func (s Snapshot) SeatOf(playerID string) int {
	for i, p := range s.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

func (s Snapshot) Player(playerID string) (Player, bool) {
	seat := s.SeatOf(playerID)
	if seat < 0 {
		return Player{}, false
	}
	return s.Players[seat], true
}

// CurrentPlayer is the player whose bid or play is awaited, if any.
func (s Snapshot) CurrentPlayer() (Player, bool) {
	if s.Phase != Bidding && s.Phase != Playing {
		return Player{}, false
	}
	if s.CurrentActor < 0 || s.CurrentActor >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[s.CurrentActor], true
}

// Plays returns the plays of the trick in progress.
func (s Snapshot) Plays() []Play {
	if s.CurrentTrick == nil {
		return nil
	}
	return s.CurrentTrick.Plays
}

// LastTrick is the most recently completed trick of the round.
func (s Snapshot) LastTrick() (Trick, bool) {
	if len(s.CompletedTricks) == 0 {
		return Trick{}, false
	}
	return s.CompletedTricks[len(s.CompletedTricks)-1], true
}

func copyCards(cards []deck.Card) []deck.Card {
	if cards == nil {
		return nil
	}
	c := make([]deck.Card, len(cards))
	copy(c, cards)
	return c
}

func copyCardPtr(card *deck.Card) *deck.Card {
	if card == nil {
		return nil
	}
	c := *card
	return &c
}

func copyIntMap(m map[string]int) map[string]int {
	c := make(map[string]int, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func copyTricks(tricks []Trick) []Trick {
	c := make([]Trick, 0, len(tricks))
	for _, t := range tricks {
		c = append(c, t.copy())
	}
	return c
}
