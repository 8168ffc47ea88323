package domain

import "time"

// SentencePair is a single source/target entry forming one flashcard.
// Pairs have no identity beyond their content: two pairs with the same
// Source and Target are the same card.
type SentencePair struct {
	Source string
	Target string
}

// Equal reports whether p and other hold exactly the same text.
func (p SentencePair) Equal(other SentencePair) bool {
	return p.Source == other.Source && p.Target == other.Target
}

// Face is the visible side of the card currently on screen.
// Every draw starts a card Hidden; arming the reveal moves it to Revealing
// and the reveal firing moves it to Revealed.
type Face int

const (
	Hidden Face = iota
	Revealing
	Revealed
)

func (f Face) String() string {
	switch f {
	case Hidden:
		return "hidden"
	case Revealing:
		return "revealing"
	case Revealed:
		return "revealed"
	}
	return "unknown"
}

// EventKind names a decision recorded in the review journal.
type EventKind string

const (
	EventLearned EventKind = "learned"
	EventSkipped EventKind = "skipped"
	EventUndo    EventKind = "undo"
	EventReset   EventKind = "reset"
)

// Event records a single session decision.
type Event struct {
	SessionID string
	Language  string
	Kind      EventKind
	CardHash  string
	Pair      SentencePair
	Timestamp time.Time
}
