// Package terminal plays a game of Wizard against bots over a text stream.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/minaorangina/wizard/game"
	"github.com/minaorangina/wizard/session"
)

var ErrNoInput = errors.New("input closed before the game finished")

// Table connects one human at a terminal to a session.
type Table struct {
	session *session.Session
	in      *bufio.Scanner
	out     io.Writer
}

func NewTable(sess *session.Session, in io.Reader, out io.Writer) *Table {
	return &Table{
		session: sess,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Play runs the game to the end, prompting whenever the human must act
// and pausing after the turn-order draw and every trick.
func (t *Table) Play() error {
	if t.session.HumanID() == "" {
		return fmt.Errorf("%w: no human seat", game.ErrInvalidConfig)
	}

	state := t.session.State()
	human, _ := state.Player(t.session.HumanID())
	SendText(t.out, welcomeText, human.Name, state.MaxRounds, len(state.Players)-1)

	for {
		state, err := t.session.Advance()
		if err != nil {
			return err
		}

		switch state.Phase {
		case game.Setup:
			err = t.beginRound()
		case game.PregameResult:
			err = t.deal()
		case game.Bidding:
			err = t.bid(state)
		case game.Playing:
			err = t.play(state)
		case game.TrickComplete:
			err = t.finishTrick(state)
		case game.Finished:
			return t.finish(state)
		default:
			err = fmt.Errorf("%w: %s", game.ErrInvalidPhase, state.Phase)
		}
		if err != nil {
			return err
		}
	}
}

func (t *Table) beginRound() error {
	state, err := t.session.BeginRound()
	if err != nil {
		return err
	}
	SendText(t.out, buildPregameText(state))
	return t.pause()
}

func (t *Table) deal() error {
	state, err := t.session.AdvancePregame()
	if err != nil {
		return err
	}
	t.showRound(state)
	return nil
}

func (t *Table) showRound(state game.Snapshot) {
	SendText(t.out, roundText, state.Round, state.MaxRounds)
	SendText(t.out, buildTrumpText(state)+"\n")
}

func (t *Table) bid(state game.Snapshot) error {
	human, _ := state.Player(t.session.HumanID())
	SendText(t.out, "\n"+buildBidsText(state))
	SendText(t.out, buildHandText(human.Hand, nil))

	for {
		SendText(t.out, bidPromptText, state.Round)
		amount, ok, err := t.readNumber()
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if _, err := t.session.Bid(human.ID, amount); err != nil {
			if errors.Is(err, game.ErrBidOutOfRange) {
				SendText(t.out, "You can bid between 0 and %d.\n", state.Round)
				continue
			}
			return err
		}
		return nil
	}
}

func (t *Table) play(state game.Snapshot) error {
	human, _ := state.Player(t.session.HumanID())
	legal, err := t.session.LegalPlays(human.ID)
	if err != nil {
		return err
	}

	SendText(t.out, "\n"+buildTrickText(state, state.Plays()))
	SendText(t.out, buildHandText(human.Hand, legal))

	for {
		SendText(t.out, playPromptText, len(human.Hand))
		choice, ok, err := t.readNumber()
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if choice < 1 || choice > len(human.Hand) {
			SendText(t.out, "Please choose a card between 1 and %d.\n", len(human.Hand))
			continue
		}

		card := human.Hand[choice-1]
		if _, err := t.session.Play(human.ID, card.ID); err != nil {
			if errors.Is(err, game.ErrIllegalPlay) {
				SendText(t.out, "You must follow suit if you can.\n")
				continue
			}
			return err
		}
		return nil
	}
}

func (t *Table) finishTrick(state game.Snapshot) error {
	if trick, ok := state.LastTrick(); ok {
		SendText(t.out, "\n"+buildTrickText(state, trick.Plays))
		SendText(t.out, trickWinnerText, nameOf(state, trick.Winner))
	}
	if err := t.pause(); err != nil {
		return err
	}

	next, err := t.session.AdvanceTrick()
	if err != nil {
		return err
	}
	if next.Round != state.Round || next.Phase == game.Finished {
		if n := len(next.History); n > 0 {
			SendText(t.out, buildRoundSummaryText(next, next.History[n-1]))
		}
		if next.Phase != game.Finished {
			t.showRound(next)
		}
	}
	return nil
}

func (t *Table) finish(state game.Snapshot) error {
	winners, err := t.session.Winners()
	if err != nil {
		return err
	}
	SendText(t.out, buildScoresText(state))
	SendText(t.out, buildWinnersText(state, winners))
	return nil
}

func (t *Table) pause() error {
	SendText(t.out, continueText)
	_, err := t.readLine()
	return err
}

func (t *Table) readLine() (string, error) {
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", ErrNoInput
	}
	return strings.TrimSpace(t.in.Text()), nil
}

// readNumber reports false, after telling the user, when the line is not a number.
func (t *Table) readNumber() (int, bool, error) {
	line, err := t.readLine()
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		SendText(t.out, retryNumberText)
		return 0, false, nil
	}
	return n, true, nil
}
