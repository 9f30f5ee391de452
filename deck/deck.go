package deck

const numSuits = 4

// Size is the number of cards in a full deck.
const Size = numSuits*MaxRank + 2*SpecialsPerKind

// Intner is the entropy source used for shuffling. *rand.Rand satisfies it.
type Intner interface {
	Intn(n int) int
}

// Deck represents a deck of cards
type Deck []Card

// New creates a full deck in a fixed order:
// numbered cards suit by suit, then the HighSpecials, then the LowSpecials.
func New() Deck {
	cards := make(Deck, 0, Size)
	for _, suit := range Suits {
		for rank := MinRank; rank <= MaxRank; rank++ {
			cards = append(cards, MustCard(suit, rank))
		}
	}
	for _, kind := range []Kind{HighSpecial, LowSpecial} {
		for n := 1; n <= SpecialsPerKind; n++ {
			cards = append(cards, MustSpecial(kind, n))
		}
	}
	return cards
}

// Shuffle returns a uniformly shuffled copy of the deck (Fisher-Yates).
func (d Deck) Shuffle(rng Intner) Deck {
	shuffled := make(Deck, len(d))
	copy(shuffled, d)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Deal deals n cards from the top of the deck.
// It returns nothing if the deck holds fewer than n cards.
func (d *Deck) Deal(n int) []Card {
	numCardsInDeck := len(*d)
	if n < 0 || n > numCardsInDeck {
		return []Card{}
	}
	startingIndex := numCardsInDeck - n
	dealt := make([]Card, n)
	copy(dealt, (*d)[startingIndex:])
	*d = (*d)[:startingIndex]
	return dealt
}

// Draw takes the top card of the deck
func (d *Deck) Draw() (Card, bool) {
	cards := d.Deal(1)
	if len(cards) == 0 {
		return Card{}, false
	}
	return cards[0], true
}
