// Package extract holds the two line-level grammars that pull (title, due)
// candidates out of unstructured text: the user-typed shorthand and the
// [agenda] suggestion-line convention emitted by the completion service.
// Both matchers are stateless; due strings are validated downstream by the
// time codec, never here.
package extract

import (
	"regexp"
	"strings"
)

// Candidate is a proposed agenda item whose due string has not been parsed yet
type Candidate struct {
	Title  string
	DueRaw string
}

var (
	// "add agenda: <title> due: YYYY-MM-DD HH:mm", keywords case-insensitive,
	// title captured non-greedily up to the due clause
	shorthandPattern = regexp.MustCompile(`(?i)add\s+agenda:\s*(.+?)\s+due:\s*(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2})`)

	// "[agenda] <title> | YYYY-MM-DD HH:mm", whole line, tag case-insensitive,
	// title must not contain a pipe
	suggestionPattern = regexp.MustCompile(`(?i)^\[agenda\]\s*([^|]+?)\s*\|\s*(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2})\s*$`)
)

// MatchShorthand recognizes the deterministic capture phrase in raw user text.
// Returns nil when the text does not contain the phrase.
func MatchShorthand(text string) *Candidate {
	m := shorthandPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return &Candidate{
		Title:  strings.TrimSpace(m[1]),
		DueRaw: m[2],
	}
}

// MatchSuggestionLine recognizes a single suggestion line.
// Returns nil when the line does not follow the convention.
func MatchSuggestionLine(line string) *Candidate {
	m := suggestionPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return nil
	}
	return &Candidate{
		Title:  strings.TrimSpace(m[1]),
		DueRaw: m[2],
	}
}

// SuggestionCandidates scans every line of a multi-line reply top to bottom
// and returns the candidates in line order. A reply with no suggestion lines
// yields an empty slice.
func SuggestionCandidates(reply string) []Candidate {
	var candidates []Candidate
	for _, line := range strings.Split(reply, "\n") {
		if c := MatchSuggestionLine(line); c != nil {
			candidates = append(candidates, *c)
		}
	}
	return candidates
}
