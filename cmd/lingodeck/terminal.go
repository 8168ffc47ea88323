package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/conorfennell/lingodeck/internal/domain"
)

// terminal renders session notifications as plain text.
type terminal struct {
	out io.Writer
}

func (t *terminal) CardReady(label, text string) {
	fmt.Fprintf(t.out, "\n%s: %s\n", label, text)
}

func (t *terminal) CardRevealed(label, text string) {
	fmt.Fprintf(t.out, "%s: %s\n", label, text)
}

func (t *terminal) DeckExhausted() {
	fmt.Fprintln(t.out, "\nGood job! You learned all sentences!!")
}

func (t *terminal) ResetConfirmed(didReset bool) {
	if didReset {
		fmt.Fprintln(t.out, "All progress reset.")
		return
	}
	fmt.Fprintln(t.out, "All progress has already been reset.")
}

func (t *terminal) UndoResult(restored bool) {
	if restored {
		fmt.Fprintln(t.out, "Last card has been restored.")
		return
	}
	fmt.Fprintln(t.out, "Nothing to undo.")
}

func (t *terminal) prompt(remaining int) {
	fmt.Fprintf(t.out, "(%d left) > ", remaining)
}

func (t *terminal) help() {
	fmt.Fprintln(t.out, "Commands: [l]earned  [s]kip  [u]ndo  [r]eset  [q]uit")
}

func (t *terminal) failure(err error) {
	switch {
	case errors.Is(err, domain.ErrPersistenceWrite):
		fmt.Fprintf(t.out, "Warning: progress could not be saved: %v\n", err)
	case errors.Is(err, domain.ErrInvalidOperation):
		fmt.Fprintln(t.out, "There is no card to answer.")
	default:
		fmt.Fprintf(t.out, "Error: %v\n", err)
	}
}
