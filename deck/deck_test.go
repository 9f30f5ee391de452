package deck

import (
	"math/rand"
	"testing"

	utils "github.com/minaorangina/wizard/internal"
	"github.com/stretchr/testify/assert"
)

func TestDeck(t *testing.T) {
	t.Run("new deck has every card once", func(t *testing.T) {
		d := New()
		utils.AssertEqual(t, len(d), 60)
		utils.AssertEqual(t, Size, 60)

		seen := map[string]struct{}{}
		counts := map[Kind]int{}
		for _, c := range d {
			seen[c.ID] = struct{}{}
			counts[c.Kind]++
		}
		assert.Len(t, seen, 60)
		assert.Equal(t, 52, counts[Numbered])
		assert.Equal(t, 4, counts[HighSpecial])
		assert.Equal(t, 4, counts[LowSpecial])
	})

	t.Run("construction is deterministic", func(t *testing.T) {
		assert.Equal(t, New(), New())
	})

	t.Run("shuffle is seedable and leaves the input alone", func(t *testing.T) {
		original := New()
		a := original.Shuffle(rand.New(rand.NewSource(42)))
		b := original.Shuffle(rand.New(rand.NewSource(42)))

		assert.Equal(t, a, b)
		assert.Equal(t, New(), original)
		assert.NotEqual(t, original, a)
		assert.ElementsMatch(t, original, a)
	})

	t.Run("deal takes from the top", func(t *testing.T) {
		d := New()
		top := d[len(d)-3:]
		want := append([]Card{}, top...)

		dealt := d.Deal(3)
		assert.Equal(t, want, dealt)
		assert.Len(t, d, 57)

		assert.Empty(t, d.Deal(58))
		assert.Empty(t, d.Deal(-1))
		assert.Len(t, d, 57)
	})

	t.Run("draw empties the deck", func(t *testing.T) {
		d := Deck{MustCard(Blue, 1)}
		c, ok := d.Draw()
		assert.True(t, ok)
		assert.Equal(t, "blue-1", c.ID)

		_, ok = d.Draw()
		assert.False(t, ok)
	})
}
