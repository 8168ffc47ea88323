package domain

import (
	"path/filepath"
	"testing"
)

func TestParseLanguagePair(t *testing.T) {
	testCases := []struct {
		input   string
		want    LanguagePair
		wantErr bool
	}{
		{input: "spanish-english", want: SpanishEnglish},
		{input: "English-Turkish", want: EnglishTurkish},
		{input: "  spanish-english ", want: SpanishEnglish},
		{input: "Spanish - English", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseLanguagePair(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Expected an error for %q, got %v", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLanguagePair(%q) returned an unexpected error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("Expected %v, but got %v", tc.want, got)
			}
		})
	}
}

func TestProfile(t *testing.T) {
	p := EnglishTurkish.Profile("master", "progress")

	if p.MasterPath != filepath.Join("master", "english_turkish.csv") {
		t.Errorf("Unexpected master path %q", p.MasterPath)
	}
	if p.ProgressPath != filepath.Join("progress", "to_learn_english_turkish.csv") {
		t.Errorf("Unexpected progress path %q", p.ProgressPath)
	}
	if p.SourceLabel != "English" || p.TargetLabel != "Turkish" {
		t.Errorf("Unexpected labels %q/%q", p.SourceLabel, p.TargetLabel)
	}

	es := SpanishEnglish.Profile("d", "d")
	if es.Labels() != [2]string{"Spanish", "English"} {
		t.Errorf("Unexpected labels %v", es.Labels())
	}
}

func TestSentencePairEqual(t *testing.T) {
	a := SentencePair{Source: "hola", Target: "hello"}
	if !a.Equal(SentencePair{Source: "hola", Target: "hello"}) {
		t.Error("Expected identical pairs to be equal")
	}
	if a.Equal(SentencePair{Source: "hola", Target: "hi"}) {
		t.Error("Expected pairs with different targets to differ")
	}
}
