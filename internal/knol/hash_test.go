package knol

import (
	"testing"

	"github.com/conorfennell/lingodeck/internal/domain"
)

func TestNormalize(t *testing.T) {
	pair := domain.SentencePair{
		Source: "  ¿Dónde Está? \r\n",
		Target: "Where is it?\r\nNearby.",
	}
	expected := "¿dónde está?\nwhere is it?\nnearby."
	normalized := Normalize(pair)

	if normalized != expected {
		t.Errorf("Expected normalized string to be '%s', but got '%s'", expected, normalized)
	}
}

func TestHash(t *testing.T) {
	t.Run("generates correct hash", func(t *testing.T) {
		pair := domain.SentencePair{Source: "Hola", Target: "Hello"}
		// Hash for "hola\nhello"
		expectedHash := "92e67e7a90adeff76d8b0edb765f869a9e67ebc58a9f2d3f739e3fc4de77bdff"
		hash := Hash(pair)

		if hash != expectedHash {
			t.Errorf("Expected hash '%s', but got '%s'", expectedHash, hash)
		}
	})

	t.Run("hash is deterministic", func(t *testing.T) {
		a := domain.SentencePair{Source: "gracias"}
		b := domain.SentencePair{Source: "gracias"}
		if Hash(a) != Hash(b) {
			t.Error("Expected hashes for identical pairs to be the same")
		}
	})

	t.Run("normalization produces same hash", func(t *testing.T) {
		a := domain.SentencePair{Source: "  buenos días ", Target: "Good morning"}
		b := domain.SentencePair{Source: "Buenos Días", Target: "good morning"}
		if Hash(a) != Hash(b) {
			t.Error("Expected hashes to be the same after normalization, but they were different.")
		}
	})

	t.Run("sides do not bleed into each other", func(t *testing.T) {
		a := domain.SentencePair{Source: "ab", Target: "c"}
		b := domain.SentencePair{Source: "a", Target: "bc"}
		if Hash(a) == Hash(b) {
			t.Error("Expected hashes for different splits to be different")
		}
	})
}
