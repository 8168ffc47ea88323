package knol

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/conorfennell/lingodeck/internal/domain"
)

// Normalize concatenates the pair's text after cleaning each side.
// It trims whitespace, lowercases, and normalizes line endings for each field
// before joining them.
func Normalize(pair domain.SentencePair) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.TrimSpace(p)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return p
	}

	// Joined with a newline so "ab"+"c" and "a"+"bc" stay distinct.
	return normalizePart(pair.Source) + "\n" + normalizePart(pair.Target)
}

// Hash takes a pair, normalizes it, and returns its SHA-256 hash as a hex string.
// Pairs that differ only in case or surrounding whitespace share a hash, so
// the journal can group them; deck membership still uses exact equality.
func Hash(pair domain.SentencePair) string {
	normalized := Normalize(pair)
	hashBytes := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", hashBytes)
}
