package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// LanguagePair selects the dataset a session trains on.
type LanguagePair int

const (
	SpanishEnglish LanguagePair = iota
	EnglishTurkish
)

// Profile is everything a language pair resolves to: where its decks live
// and how their columns are labelled.
type Profile struct {
	Language     LanguagePair
	MasterPath   string
	ProgressPath string
	SourceLabel  string
	TargetLabel  string
}

// Labels returns the column labels in source, target order.
func (p Profile) Labels() [2]string {
	return [2]string{p.SourceLabel, p.TargetLabel}
}

type pairInfo struct {
	name   string
	file   string
	source string
	target string
}

var pairs = map[LanguagePair]pairInfo{
	SpanishEnglish: {name: "spanish-english", file: "spanish_english", source: "Spanish", target: "English"},
	EnglishTurkish: {name: "english-turkish", file: "english_turkish", source: "English", target: "Turkish"},
}

// LanguagePairNames lists the accepted names in enumeration order.
func LanguagePairNames() []string {
	return []string{pairs[SpanishEnglish].name, pairs[EnglishTurkish].name}
}

// ParseLanguagePair maps a configured name such as "spanish-english" to its
// LanguagePair. Matching ignores case and surrounding whitespace.
func ParseLanguagePair(s string) (LanguagePair, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for lp, info := range pairs {
		if info.name == name {
			return lp, nil
		}
	}
	return 0, fmt.Errorf("unknown language pair %q (want one of %s)", s, strings.Join(LanguagePairNames(), ", "))
}

func (lp LanguagePair) String() string {
	if info, ok := pairs[lp]; ok {
		return info.name
	}
	return fmt.Sprintf("LanguagePair(%d)", int(lp))
}

// Profile resolves the language pair against the directory holding the
// master datasets and the directory holding progress snapshots.
func (lp LanguagePair) Profile(masterDir, progressDir string) Profile {
	info := pairs[lp]
	return Profile{
		Language:     lp,
		MasterPath:   filepath.Join(masterDir, info.file+".csv"),
		ProgressPath: filepath.Join(progressDir, "to_learn_"+info.file+".csv"),
		SourceLabel:  info.source,
		TargetLabel:  info.target,
	}
}
