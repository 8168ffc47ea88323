// Package session owns the state of one training run: the remaining deck,
// the card on screen, and the history of learned cards that can be undone.
//
// A Session is not safe for concurrent use. All methods, including reveal
// callbacks delivered by the scheduler, must run on a single goroutine.
package session

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/conorfennell/lingodeck/internal/deck"
	"github.com/conorfennell/lingodeck/internal/domain"
	"github.com/conorfennell/lingodeck/internal/knol"
	"github.com/conorfennell/lingodeck/internal/reveal"
)

// Listener is the UI collaborator notified of every visible change.
type Listener interface {
	CardReady(sourceLabel, sourceText string)
	CardRevealed(targetLabel, targetText string)
	DeckExhausted()
	ResetConfirmed(didReset bool)
	UndoResult(restored bool)
}

// Store persists the remaining deck. *deck.Store implements it.
type Store interface {
	Save(d *deck.Deck) error
	Clear() (removed bool, err error)
	LoadMaster() (*deck.Deck, error)
}

// Journal records decisions for later review. Failures are logged and never
// fail the operation that produced the event.
type Journal interface {
	RecordEvent(ev domain.Event) error
}

// Session is a single learner's run over one language pair.
type Session struct {
	id      string
	profile domain.Profile
	deck    *deck.Deck
	store   Store
	sched   reveal.Scheduler
	ui      Listener
	journal Journal
	log     *slog.Logger
	rng     *rand.Rand
	delay   time.Duration

	current    domain.SentencePair
	hasCurrent bool
	face       domain.Face
	pending    reveal.Handle
	history    []domain.SentencePair
}

// Option configures a Session.
type Option func(*Session)

// WithDelay sets how long a card stays hidden before it is revealed.
func WithDelay(d time.Duration) Option {
	return func(s *Session) { s.delay = d }
}

// WithRand sets the source used to pick cards.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithJournal records every decision in j.
func WithJournal(j Journal) Option {
	return func(s *Session) { s.journal = j }
}

// New creates a session over d. No card is drawn until Draw is called.
func New(d *deck.Deck, store Store, sched reveal.Scheduler, ui Listener, profile domain.Profile, opts ...Option) *Session {
	s := &Session{
		id:      uuid.NewString(),
		profile: profile,
		deck:    d,
		store:   store,
		sched:   sched,
		ui:      ui,
		log:     slog.Default(),
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		delay:   reveal.DefaultDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("session", s.id, "language", profile.Language.String())
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Current returns the card on screen, if any.
func (s *Session) Current() (domain.SentencePair, bool) {
	return s.current, s.hasCurrent
}

// Face returns which side of the current card is showing.
func (s *Session) Face() domain.Face { return s.face }

// Remaining returns the number of cards left to learn.
func (s *Session) Remaining() int { return s.deck.Len() }

// UndoDepth returns how many learned cards can be restored.
func (s *Session) UndoDepth() int { return len(s.history) }

// Deck returns a copy of the remaining cards.
func (s *Session) Deck() []domain.SentencePair { return s.deck.Pairs() }

// Draw shows a card chosen uniformly at random from the deck, without
// removing it, and arms its reveal. Any reveal still pending for the previous
// card is canceled first. With an empty deck it reports false and signals
// DeckExhausted.
func (s *Session) Draw() (domain.SentencePair, bool) {
	s.cancelReveal()

	if s.deck.Len() == 0 {
		s.current, s.hasCurrent = domain.SentencePair{}, false
		s.face = domain.Hidden
		s.log.Info("Deck exhausted")
		s.ui.DeckExhausted()
		return domain.SentencePair{}, false
	}

	card := s.deck.At(s.rng.IntN(s.deck.Len()))
	s.current, s.hasCurrent = card, true
	s.face = domain.Hidden
	s.ui.CardReady(s.profile.SourceLabel, card.Source)

	s.pending = s.sched.Arm(s.delay, s.reveal)
	s.face = domain.Revealing
	s.log.Debug("Card drawn", "remaining", s.deck.Len())
	return card, true
}

// MarkLearned removes the current card from the deck, remembers it for
// Undo, saves progress and draws the next card. If saving fails the card
// stays learned in memory and the error wraps domain.ErrPersistenceWrite.
func (s *Session) MarkLearned() error {
	if !s.hasCurrent {
		return fmt.Errorf("%w: no card to mark learned", domain.ErrInvalidOperation)
	}

	card := s.current
	s.history = append(s.history, card)
	s.deck.Remove(card)
	s.record(domain.EventLearned, card)

	err := s.flush()
	s.Draw()
	return err
}

// MarkSkipped leaves the deck unchanged and draws again. The skipped card
// may come straight back.
func (s *Session) MarkSkipped() error {
	if !s.hasCurrent {
		return fmt.Errorf("%w: no card to skip", domain.ErrInvalidOperation)
	}
	s.record(domain.EventSkipped, s.current)
	s.Draw()
	return nil
}

// Undo puts the most recently learned card back into the deck, saves
// progress and draws. With nothing to undo it changes nothing and reports
// false without an error.
func (s *Session) Undo() (restored bool, err error) {
	if len(s.history) == 0 {
		s.log.Info("Nothing to undo")
		s.ui.UndoResult(false)
		return false, nil
	}

	last := len(s.history) - 1
	card := s.history[last]
	s.history = s.history[:last]
	s.deck.Add(card)
	s.record(domain.EventUndo, card)

	err = s.flush()
	s.Draw()
	s.ui.UndoResult(true)
	return true, err
}

// Reset deletes saved progress, reloads the full master deck, forgets the
// undo history and draws. didReset is false when there was no progress to
// discard.
func (s *Session) Reset() (didReset bool, err error) {
	// The master is read first so a failed reload leaves the snapshot on disk.
	master, err := s.store.LoadMaster()
	if err != nil {
		return false, err
	}

	removed, err := s.store.Clear()
	if err != nil {
		return false, err
	}

	didReset = removed || len(s.history) > 0 || s.deck.Len() != master.Len()
	s.deck = master
	s.history = nil
	if didReset {
		s.record(domain.EventReset, domain.SentencePair{})
		s.log.Info("Progress reset", "cards", master.Len())
	} else {
		s.log.Info("Progress already at baseline")
	}

	s.Draw()
	s.ui.ResetConfirmed(didReset)
	return didReset, nil
}

// Close cancels any pending reveal.
func (s *Session) Close() {
	s.cancelReveal()
}

func (s *Session) reveal() {
	s.pending = 0
	if !s.hasCurrent {
		return
	}
	s.face = domain.Revealed
	s.ui.CardRevealed(s.profile.TargetLabel, s.current.Target)
}

func (s *Session) cancelReveal() {
	if s.pending != 0 {
		s.sched.Cancel(s.pending)
		s.pending = 0
	}
}

func (s *Session) flush() error {
	if err := s.store.Save(s.deck); err != nil {
		s.log.Error("Failed to save progress", "error", err)
		return err
	}
	return nil
}

func (s *Session) record(kind domain.EventKind, card domain.SentencePair) {
	if s.journal == nil {
		return
	}
	ev := domain.Event{
		SessionID: s.id,
		Language:  s.profile.Language.String(),
		Kind:      kind,
		Pair:      card,
		Timestamp: time.Now(),
	}
	if kind != domain.EventReset {
		ev.CardHash = knol.Hash(card)
	}
	if err := s.journal.RecordEvent(ev); err != nil {
		s.log.Warn("Failed to record journal event", "kind", kind, "error", err)
	}
}
