package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/lingodeck/internal/config"
	"github.com/conorfennell/lingodeck/internal/deck"
	"github.com/conorfennell/lingodeck/internal/domain"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spanish_english.csv"),
		[]byte("Spanish,English\nhola,hello\nadiós,bye\ngracias,thanks\n"), 0o644))
	return &config.Config{
		Language: "spanish-english",
		Data:     config.DataConfig{Dir: dir},
		Reveal:   config.RevealConfig{Delay: time.Hour},
		Save:     config.SaveConfig{Retries: 1},
		Log:      config.LogConfig{Level: "error"},
		Journal:  config.JournalConfig{Path: filepath.Join(dir, "journal.db")},
	}
}

func TestRunTrainerPersistsProgress(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	err := runTrainer(context.Background(), cfg, domain.SpanishEnglish, strings.NewReader("l\ns\nl\nu\nq\n"), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Spanish: ")
	assert.Contains(t, out.String(), "Last card has been restored.")

	d, err := deck.NewStore(domain.SpanishEnglish.Profile(cfg.Data.Dir, cfg.Data.Dir)).Load()
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())

	var stats bytes.Buffer
	require.NoError(t, runStats(cfg, domain.SpanishEnglish, &stats))
	assert.Contains(t, stats.String(), "learned  2")
	assert.Contains(t, stats.String(), "skipped  1")
	assert.Contains(t, stats.String(), "undo     1")
}

func TestRunTrainerExhaustsDeck(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	err := runTrainer(context.Background(), cfg, domain.SpanishEnglish, strings.NewReader("l\nl\nl\nl\nu\nr\nr\n"), &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "You learned all sentences")
	assert.Contains(t, text, "There is no card to answer.")
	assert.Contains(t, text, "All progress reset.")
	assert.Contains(t, text, "All progress has already been reset.")
}

func TestRunTrainerMissingMaster(t *testing.T) {
	cfg := testConfig(t)
	cfg.Language = "english-turkish"

	err := runTrainer(context.Background(), cfg, domain.EnglishTurkish, strings.NewReader("q\n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}

func TestRunStatsNeedsJournal(t *testing.T) {
	cfg := testConfig(t)
	cfg.Journal.Path = ""

	assert.Error(t, runStats(cfg, domain.SpanishEnglish, &bytes.Buffer{}))
}

func TestReadLinesStopsWhenDone(t *testing.T) {
	lines := make(chan string)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		readLines(strings.NewReader("l\ns\nq\n"), lines, done)
		close(finished)
	}()

	require.Equal(t, "l", <-lines)
	close(done)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("reader did not stop after done was closed")
	}
	_, ok := <-lines
	assert.False(t, ok, "lines must be closed")
}
