package game

import (
	"fmt"
	"math/rand"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/minaorangina/wizard/deck"
)

// Engine runs one game. It owns all game state and applies every operation
// atomically: a rejected operation leaves the state untouched.
// Engine is not safe for concurrent use.
type Engine struct {
	id        string
	rng       *rand.Rand
	players   []*Player
	round     int
	maxRounds int
	phase     Phase

	currentSeat     int
	turnOrderWinner int

	deck      deck.Deck
	newDeck   func() deck.Deck
	trumpCard *deck.Card
	trump     deck.Suit

	bids            map[string]int
	currentTrick    *Trick
	completedTricks []Trick
	history         []RoundHistory
	pregameCards    map[string][]deck.Card
}

// NewEngine sets up a game in the Setup phase.
func NewEngine(cfg Config) (*Engine, error) {
	players, err := cfg.players()
	if err != nil {
		return nil, err
	}

	fullGame := RoundsForPlayers(len(players))
	maxRounds := cfg.MaxRounds
	if maxRounds < 0 || maxRounds > fullGame {
		return nil, fmt.Errorf("%w: max rounds %d (at most %d for %d players)",
			ErrInvalidConfig, maxRounds, fullGame, len(players))
	}
	if maxRounds == 0 {
		maxRounds = fullGame
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &Engine{
		id:              uuid.NewV4().String(),
		rng:             rng,
		players:         players,
		round:           1,
		maxRounds:       maxRounds,
		phase:           Setup,
		turnOrderWinner: -1,
		bids:            map[string]int{},
		completedTricks: []Trick{},
		history:         []RoundHistory{},
		pregameCards:    map[string][]deck.Card{},
	}
	e.newDeck = e.shuffledDeck
	return e, nil
}

func (e *Engine) shuffledDeck() deck.Deck {
	return deck.New().Shuffle(e.rng)
}

func (e *Engine) ID() string {
	return e.id
}

// BeginRound deals each player one card to decide who acts first.
// Ties are re-dealt to the tied players only, until one is highest.
func (e *Engine) BeginRound() (Snapshot, error) {
	if e.phase != Setup {
		return Snapshot{}, fmt.Errorf("%w: cannot begin from %s", ErrInvalidPhase, e.phase)
	}

	e.deck = e.newDeck()
	e.phase = Pregame

	contenders := make([]int, len(e.players))
	for seat := range e.players {
		contenders[seat] = seat
	}
	e.turnOrderWinner = e.resolveTurnOrder(contenders)
	e.currentSeat = e.turnOrderWinner
	e.phase = PregameResult

	return e.State(), nil
}

func (e *Engine) resolveTurnOrder(contenders []int) int {
	for {
		for _, seat := range contenders {
			card, ok := e.deck.Draw()
			if !ok {
				return contenders[0]
			}
			id := e.players[seat].ID
			e.pregameCards[id] = append(e.pregameCards[id], card)
		}

		best := -1
		leaders := []int{}
		for _, seat := range contenders {
			cards := e.pregameCards[e.players[seat].ID]
			value := cards[len(cards)-1].TurnOrderValue()
			switch {
			case value > best:
				best = value
				leaders = []int{seat}
			case value == best:
				leaders = append(leaders, seat)
			}
		}

		if len(leaders) == 1 {
			return leaders[0]
		}
		if len(e.deck) < len(leaders) {
			return leaders[0]
		}
		contenders = leaders
	}
}

// AdvancePastPregameResult deals the first round.
func (e *Engine) AdvancePastPregameResult() (Snapshot, error) {
	if e.phase != PregameResult {
		return Snapshot{}, fmt.Errorf("%w: no pregame result to advance from in %s", ErrInvalidPhase, e.phase)
	}

	e.pregameCards = map[string][]deck.Card{}
	e.startRound()

	return e.State(), nil
}

// startRound deals a fresh deck for the current round and opens bidding.
func (e *Engine) startRound() {
	e.bids = map[string]int{}
	e.currentTrick = nil
	e.completedTricks = []Trick{}
	e.trumpCard = nil
	e.trump = deck.NoSuit
	for _, p := range e.players {
		p.Hand = []deck.Card{}
		p.Bid = nil
		p.TricksWon = 0
	}

	e.deck = e.newDeck()
	for i := 0; i < e.round; i++ {
		for _, p := range e.players {
			card, _ := e.deck.Draw()
			p.Hand = append(p.Hand, card)
		}
	}

	// In the last round the whole deck is dealt and nothing is trump.
	if card, ok := e.deck.Draw(); ok {
		e.trumpCard = &card
		if card.Kind == deck.Numbered {
			e.trump = card.Suit
		}
	}

	e.currentSeat = e.turnOrderWinner
	e.phase = Bidding
}

// SubmitBid records a player's bid for the round.
func (e *Engine) SubmitBid(playerID string, amount int) (Snapshot, error) {
	if e.phase != Bidding {
		return Snapshot{}, fmt.Errorf("%w: cannot bid in %s", ErrInvalidPhase, e.phase)
	}
	seat, err := e.seatOf(playerID)
	if err != nil {
		return Snapshot{}, err
	}
	if amount < 0 || amount > e.round {
		return Snapshot{}, fmt.Errorf("%w: %d not in [0, %d]", ErrBidOutOfRange, amount, e.round)
	}
	if seat != e.currentSeat {
		return Snapshot{}, fmt.Errorf("%w: %s bids out of turn", ErrNotCurrentActor, playerID)
	}

	bid := amount
	e.players[seat].Bid = &bid
	e.bids[playerID] = amount

	if len(e.bids) == len(e.players) {
		e.currentSeat = e.turnOrderWinner
		e.openTrick(e.turnOrderWinner)
		e.phase = Playing
	} else {
		e.turn()
	}

	return e.State(), nil
}

// SubmitPlay moves a card from the player's hand into the current trick.
// The last play of a trick decides its winner.
func (e *Engine) SubmitPlay(playerID, cardID string) (Snapshot, error) {
	if e.phase != Playing {
		return Snapshot{}, fmt.Errorf("%w: cannot play in %s", ErrInvalidPhase, e.phase)
	}
	seat, err := e.seatOf(playerID)
	if err != nil {
		return Snapshot{}, err
	}
	player := e.players[seat]
	idx := indexOfCard(player.Hand, cardID)
	if idx < 0 {
		return Snapshot{}, fmt.Errorf("%w: %s does not hold %q", ErrUnknownCard, playerID, cardID)
	}
	if seat != e.currentSeat {
		return Snapshot{}, fmt.Errorf("%w: %s plays out of turn", ErrNotCurrentActor, playerID)
	}
	if !containsCard(LegalPlays(player.Hand, e.currentTrick.Plays), cardID) {
		return Snapshot{}, fmt.Errorf("%w: %s must follow suit", ErrIllegalPlay, cardID)
	}

	card := player.Hand[idx]
	player.Hand = removeCard(player.Hand, idx)
	e.currentTrick.Plays = append(e.currentTrick.Plays, Play{
		PlayerID: playerID,
		Card:     card,
		Order:    len(e.currentTrick.Plays),
	})

	if len(e.currentTrick.Plays) < len(e.players) {
		e.turn()
		return e.State(), nil
	}

	winnerID, err := ResolveWinner(e.currentTrick.Plays, e.currentTrick.Trump)
	if err != nil {
		return Snapshot{}, err
	}
	winnerSeat, _ := e.seatOf(winnerID)
	e.currentTrick.Winner = winnerID
	e.players[winnerSeat].TricksWon++
	e.completedTricks = append(e.completedTricks, *e.currentTrick)
	e.currentTrick = nil
	e.currentSeat = winnerSeat
	e.phase = TrickComplete

	return e.State(), nil
}

// AdvancePastTrickComplete opens the next trick, or scores the round once every
// trick is played. Scoring either finishes the game or deals the next round.
func (e *Engine) AdvancePastTrickComplete() (Snapshot, error) {
	if e.phase != TrickComplete {
		return Snapshot{}, fmt.Errorf("%w: no completed trick to advance from in %s", ErrInvalidPhase, e.phase)
	}

	if len(e.completedTricks) < e.round {
		e.openTrick(e.currentSeat)
		e.phase = Playing
		return e.State(), nil
	}

	e.scoreRound()
	if e.round >= e.maxRounds {
		e.phase = Finished
		return e.State(), nil
	}

	e.round++
	e.startRound()
	return e.State(), nil
}

func (e *Engine) scoreRound() {
	e.phase = Scoring

	record := RoundHistory{
		Round:       e.round,
		TrumpCard:   copyCardPtr(e.trumpCard),
		Trump:       e.trump,
		Bids:        copyIntMap(e.bids),
		TricksWon:   map[string]int{},
		ScoreDeltas: map[string]int{},
		Tricks:      copyTricks(e.completedTricks),
	}
	for _, p := range e.players {
		delta := ScoreDelta(e.bids[p.ID], p.TricksWon)
		p.Score += delta
		record.TricksWon[p.ID] = p.TricksWon
		record.ScoreDeltas[p.ID] = delta
	}
	e.history = append(e.history, record)
}

func (e *Engine) openTrick(leader int) {
	e.currentTrick = &Trick{
		Number: len(e.completedTricks) + 1,
		Leader: leader,
		Plays:  []Play{},
		Trump:  e.trump,
	}
}

// turn passes the action to the next seat clockwise
func (e *Engine) turn() {
	e.currentSeat = (e.currentSeat + 1) % len(e.players)
}

func (e *Engine) seatOf(playerID string) (int, error) {
	for i, p := range e.players {
		if p.ID == playerID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownPlayer, playerID)
}

// State returns a deep copy of the game state.
func (e *Engine) State() Snapshot {
	s := Snapshot{
		GameID:          e.id,
		Round:           e.round,
		MaxRounds:       e.maxRounds,
		Phase:           e.phase,
		Players:         make([]Player, 0, len(e.players)),
		CurrentActor:    e.currentSeat,
		TrumpCard:       copyCardPtr(e.trumpCard),
		Trump:           e.trump,
		DeckCount:       len(e.deck),
		Bids:            copyIntMap(e.bids),
		BiddingComplete: len(e.bids) == len(e.players),
		TrickCompleted:  e.phase == TrickComplete,
		CompletedTricks: copyTricks(e.completedTricks),
		History:         make([]RoundHistory, 0, len(e.history)),
		PregameCards:    make(map[string][]deck.Card, len(e.pregameCards)),
	}
	for _, p := range e.players {
		s.Players = append(s.Players, p.copy())
	}
	if e.currentTrick != nil {
		t := e.currentTrick.copy()
		s.CurrentTrick = &t
	}
	for _, h := range e.history {
		s.History = append(s.History, h.copy())
	}
	for id, cards := range e.pregameCards {
		s.PregameCards[id] = copyCards(cards)
	}
	if e.turnOrderWinner >= 0 {
		s.TurnOrderWinner = e.players[e.turnOrderWinner].ID
	}
	return s
}

// Player returns a copy of one player.
func (e *Engine) Player(playerID string) (Player, error) {
	seat, err := e.seatOf(playerID)
	if err != nil {
		return Player{}, err
	}
	return e.players[seat].copy(), nil
}

// LegalPlaysFor lists the IDs of the cards the player may play into the
// current trick. Outside the Playing phase nothing is playable.
func (e *Engine) LegalPlaysFor(playerID string) ([]string, error) {
	seat, err := e.seatOf(playerID)
	if err != nil {
		return nil, err
	}
	if e.phase != Playing {
		return []string{}, nil
	}
	return cardIDs(LegalPlays(e.players[seat].Hand, e.currentTrick.Plays)), nil
}

// IsCurrentActor reports whether a bid or play is awaited from the player.
func (e *Engine) IsCurrentActor(playerID string) bool {
	if e.phase != Bidding && e.phase != Playing {
		return false
	}
	seat, err := e.seatOf(playerID)
	return err == nil && seat == e.currentSeat
}

// Winners returns every player on the top score, in seat order.
func (e *Engine) Winners() ([]string, error) {
	if e.phase != Finished {
		return nil, fmt.Errorf("%w: game is not finished", ErrInvalidPhase)
	}
	best := e.players[0].Score
	for _, p := range e.players[1:] {
		if p.Score > best {
			best = p.Score
		}
	}
	winners := []string{}
	for _, p := range e.players {
		if p.Score == best {
			winners = append(winners, p.ID)
		}
	}
	return winners, nil
}
