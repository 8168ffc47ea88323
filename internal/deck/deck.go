// Package deck holds the set of cards still to be learned and the store that
// moves it between memory and the progress snapshot on disk.
package deck

import "github.com/conorfennell/lingodeck/internal/domain"

// Deck is the collection of not-yet-learned sentence pairs. Order carries
// no meaning. Duplicate rows from a dataset are kept as separate entries.
type Deck struct {
	pairs []domain.SentencePair
}

// New returns a deck holding a copy of pairs.
func New(pairs []domain.SentencePair) *Deck {
	d := &Deck{pairs: make([]domain.SentencePair, len(pairs))}
	copy(d.pairs, pairs)
	return d
}

// Len returns the number of cards in the deck.
func (d *Deck) Len() int {
	return len(d.pairs)
}

// At returns the i-th card. It panics if i is out of range.
func (d *Deck) At(i int) domain.SentencePair {
	return d.pairs[i]
}

// Contains reports whether p is in the deck.
func (d *Deck) Contains(p domain.SentencePair) bool {
	return d.index(p) >= 0
}

// Add inserts p into the deck.
func (d *Deck) Add(p domain.SentencePair) {
	d.pairs = append(d.pairs, p)
}

// Remove deletes the first entry equal to p and reports whether one was found.
// When the dataset holds duplicate rows only one copy is removed per call.
func (d *Deck) Remove(p domain.SentencePair) bool {
	i := d.index(p)
	if i < 0 {
		return false
	}
	d.pairs = append(d.pairs[:i], d.pairs[i+1:]...)
	return true
}

// Pairs returns a copy of the deck's contents.
func (d *Deck) Pairs() []domain.SentencePair {
	out := make([]domain.SentencePair, len(d.pairs))
	copy(out, d.pairs)
	return out
}

func (d *Deck) index(p domain.SentencePair) int {
	for i, q := range d.pairs {
		if q.Equal(p) {
			return i
		}
	}
	return -1
}
