package terminal

import (
	"bytes"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/minaorangina/wizard/game"
	"github.com/minaorangina/wizard/session"
)

// TestBuffer is used in tests for io
type TestBuffer struct {
	buf bytes.Buffer
	m   sync.Mutex
}

func NewTestBuffer() *TestBuffer {
	return &TestBuffer{}
}

func (tb *TestBuffer) Write(p []byte) (int, error) {
	tb.m.Lock()
	defer tb.m.Unlock()
	return tb.buf.Write(p)
}

func (tb *TestBuffer) String() string {
	tb.m.Lock()
	defer tb.m.Unlock()
	return tb.buf.String()
}

func newTestSession(t *testing.T, maxRounds int) *session.Session {
	t.Helper()

	sess, err := session.New(game.Config{
		PlayerCount: 3,
		HumanName:   "Ada",
		Tiers:       []game.Tier{game.Easy, game.Easy},
		MaxRounds:   maxRounds,
		Rand:        rand.New(rand.NewSource(1)),
	}, nil)
	require.NoError(t, err)

	return sess
}
