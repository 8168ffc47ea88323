package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/pflag"

	"github.com/conorfennell/lingodeck/internal/config"
	"github.com/conorfennell/lingodeck/internal/dataset"
	"github.com/conorfennell/lingodeck/internal/deck"
	"github.com/conorfennell/lingodeck/internal/domain"
	"github.com/conorfennell/lingodeck/internal/reveal"
	"github.com/conorfennell/lingodeck/internal/session"
	"github.com/conorfennell/lingodeck/internal/storage"
)

func main() {
	// 1. Define and parse command-line flags
	flags := config.Flags("lingodeck")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lingodeck [stats] [flags]\n\n%s", flags.FlagUsages())
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lingodeck: %v\n", err)
		os.Exit(2)
	}
	setupLogger(cfg.Log.Level)

	lp, err := domain.ParseLanguagePair(cfg.Language)
	if err != nil {
		slog.Error("Invalid language pair", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch flags.Arg(0) {
	case "":
		err = runTrainer(ctx, cfg, lp, os.Stdin, os.Stdout)
	case "stats":
		err = runStats(cfg, lp, os.Stdout)
	default:
		flags.Usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error("lingodeck failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(handler))
}

// runTrainer loads the deck and runs the interactive loop until the user
// quits, input ends or ctx is canceled.
func runTrainer(ctx context.Context, cfg *config.Config, lp domain.LanguagePair, in io.Reader, out io.Writer) error {
	resolver := &dataset.Resolver{DataDir: cfg.Data.Dir, Repo: cfg.Dataset.Repo, Progress: os.Stderr}
	profile, err := resolver.Resolve(ctx, lp)
	if err != nil {
		return err
	}

	store := deck.NewStore(profile)
	store.Retries = cfg.Save.Retries
	d, err := store.Load()
	if err != nil {
		return err
	}
	slog.Info("Deck loaded", "language", lp.String(), "cards", d.Len())

	opts := []session.Option{session.WithDelay(cfg.Reveal.Delay)}
	if cfg.Journal.Path != "" {
		db, err := storage.Open(cfg.Journal.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		opts = append(opts, session.WithJournal(db))
	}

	clock := reveal.NewClock()
	defer clock.Close()

	term := &terminal{out: out}
	s := session.New(d, store, clock, term, profile, opts...)
	defer s.Close()

	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go readLines(in, lines, done)

	term.help()
	s.Draw()
	for {
		term.prompt(s.Remaining())
		select {
		case <-ctx.Done():
			return nil
		case fn := <-clock.Fired():
			fn()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := handleCommand(s, term, strings.TrimSpace(line)); quit {
				return nil
			}
		}
	}
}

// readLines sends each line of in to lines until input ends or done is
// closed. lines is closed on return.
func readLines(in io.Reader, lines chan<- string, done <-chan struct{}) {
	defer close(lines)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-done:
			return
		}
	}
}

// handleCommand applies one line of user input and reports whether to quit.
func handleCommand(s *session.Session, term *terminal, cmd string) bool {
	var err error
	switch strings.ToLower(cmd) {
	case "l", "learned", "right":
		err = s.MarkLearned()
	case "s", "skip", "wrong":
		err = s.MarkSkipped()
	case "u", "undo":
		_, err = s.Undo()
	case "r", "reset":
		_, err = s.Reset()
	case "q", "quit", "exit":
		return true
	case "", "h", "help", "?":
		term.help()
	default:
		fmt.Fprintf(term.out, "Unknown command %q\n", cmd)
		term.help()
	}
	if err != nil {
		term.failure(err)
	}
	return false
}

func runStats(cfg *config.Config, lp domain.LanguagePair, out io.Writer) error {
	if cfg.Journal.Path == "" {
		return errors.New("stats needs a journal; set --journal-path")
	}
	db, err := storage.Open(cfg.Journal.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	counts, err := db.CountEvents(lp.String())
	if err != nil {
		return err
	}
	recent, err := db.RecentEvents(lp.String(), 10)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Journal for %s:\n", lp)
	for _, kind := range []domain.EventKind{domain.EventLearned, domain.EventSkipped, domain.EventUndo, domain.EventReset} {
		fmt.Fprintf(out, "  %-8s %d\n", kind, counts[kind])
	}
	if len(recent) > 0 {
		fmt.Fprintln(out, "\nRecent:")
		for _, ev := range recent {
			fmt.Fprintf(out, "  %s  %-8s %s\n", ev.Timestamp.Local().Format("2006-01-02 15:04"), ev.Kind, ev.Pair.Source)
		}
	}
	return nil
}
