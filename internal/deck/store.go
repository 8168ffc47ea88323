package deck

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/conorfennell/lingodeck/internal/domain"
	"github.com/conorfennell/lingodeck/internal/parser"
)

// DefaultRetries is how many times a failed snapshot write is retried before
// the failure is reported.
const DefaultRetries = 1

// Store loads decks from the master dataset and progress snapshot of one
// language pair and writes the snapshot back.
type Store struct {
	Profile domain.Profile
	Retries int
	Logger  *slog.Logger
}

// NewStore creates a store for the given profile with the default retry policy.
func NewStore(profile domain.Profile) *Store {
	return &Store{Profile: profile, Retries: DefaultRetries, Logger: slog.Default()}
}

// Load returns the deck to resume from. The progress snapshot wins when it
// holds at least one card; otherwise the master dataset is used.
func (s *Store) Load() (*Deck, error) {
	pairs, err := parser.ParseFile(s.Profile.ProgressPath, s.Profile.Labels())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.logger().Debug("No progress snapshot, starting from master", "path", s.Profile.ProgressPath)
	case err != nil:
		s.logger().Warn("Unreadable progress snapshot, starting from master", "path", s.Profile.ProgressPath, "error", err)
	case len(pairs) == 0:
		s.logger().Info("Empty progress snapshot, starting from master", "path", s.Profile.ProgressPath)
	default:
		s.logger().Info("Resuming from progress snapshot", "path", s.Profile.ProgressPath, "cards", len(pairs))
		return New(pairs), nil
	}
	return s.LoadMaster()
}

// LoadMaster returns the full master dataset. A missing, unreadable or empty
// master file is reported as domain.ErrDataUnavailable.
func (s *Store) LoadMaster() (*Deck, error) {
	pairs, err := parser.ParseFile(s.Profile.MasterPath, s.Profile.Labels())
	if err != nil {
		return nil, fmt.Errorf("%w: reading master %s: %v", domain.ErrDataUnavailable, s.Profile.MasterPath, err)
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: master %s has no rows", domain.ErrDataUnavailable, s.Profile.MasterPath)
	}
	return New(pairs), nil
}

// Save overwrites the progress snapshot with the full contents of d.
// A failed write is retried s.Retries times before an error wrapping
// domain.ErrPersistenceWrite is returned.
func (s *Store) Save(d *Deck) error {
	var err error
	for attempt := 0; attempt <= s.Retries; attempt++ {
		if err = s.write(d.Pairs()); err == nil {
			return nil
		}
		s.logger().Warn("Failed to write progress snapshot", "path", s.Profile.ProgressPath, "attempt", attempt+1, "error", err)
	}
	return fmt.Errorf("%w to %s: %v", domain.ErrPersistenceWrite, s.Profile.ProgressPath, err)
}

// Clear deletes the progress snapshot. A snapshot that does not exist is not
// an error; removed reports whether a file was actually deleted.
func (s *Store) Clear() (removed bool, err error) {
	err = os.Remove(s.Profile.ProgressPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: removing %s: %v", domain.ErrPersistenceWrite, s.Profile.ProgressPath, err)
	}
	return true, nil
}

// write replaces the snapshot through a temp file in the same directory so a
// failed write leaves the previous snapshot intact.
func (s *Store) write(pairs []domain.SentencePair) error {
	dir := filepath.Dir(s.Profile.ProgressPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".progress-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := parser.Write(tmp, s.Profile.Labels(), pairs); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Profile.ProgressPath)
}

func (s *Store) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
