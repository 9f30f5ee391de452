package game

import "github.com/minaorangina/wizard/deck"

func containsCard(cards []deck.Card, cardID string) bool {
	return indexOfCard(cards, cardID) >= 0
}

func indexOfCard(cards []deck.Card, cardID string) int {
	for i, c := range cards {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}

// removeCard returns a new slice without the card at i.
func removeCard(cards []deck.Card, i int) []deck.Card {
	out := make([]deck.Card, 0, len(cards)-1)
	out = append(out, cards[:i]...)
	return append(out, cards[i+1:]...)
}

func cardIDs(cards []deck.Card) []string {
	ids := make([]string, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}
	return ids
}
