// Package parser reads and writes deck files: CSV with a header row naming
// the source and target columns, one sentence pair per row.
package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/conorfennell/lingodeck/internal/domain"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// ErrMissingColumn is returned when the header lacks one of the labels.
var ErrMissingColumn = errors.New("missing column")

// ParseFile reads a deck file from the given path.
func ParseFile(path string, labels [2]string) ([]domain.SentencePair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file, labels)
}

// Parse reads a deck from r. The header row must name both labels; it is
// matched case-insensitively and columns may appear in any order.
// Blank lines are skipped. A reader with no header at all yields io.EOF.
func Parse(r io.Reader, labels [2]string) ([]domain.SentencePair, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && bytes.Equal(head, bom) {
		br.Discard(len(bom))
	}

	cr := csv.NewReader(br)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, err
	}

	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	srcIdx, ok := idx[strings.ToLower(labels[0])]
	if !ok {
		return nil, fmt.Errorf("%w %q in header %v", ErrMissingColumn, labels[0], header)
	}
	dstIdx, ok := idx[strings.ToLower(labels[1])]
	if !ok {
		return nil, fmt.Errorf("%w %q in header %v", ErrMissingColumn, labels[1], header)
	}

	var pairs []domain.SentencePair
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, domain.SentencePair{Source: rec[srcIdx], Target: rec[dstIdx]})
	}
	return pairs, nil
}

// Write serialises pairs to w with a header row of labels.
func Write(w io.Writer, labels [2]string, pairs []domain.SentencePair) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(labels[:]); err != nil {
		return err
	}
	for _, p := range pairs {
		if err := cw.Write([]string{p.Source, p.Target}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
