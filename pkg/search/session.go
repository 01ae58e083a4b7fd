// Package search finds every occurrence of a term in one field's text and
// cycles a cursor through them.
//
// Offsets are rune offsets into the field text. Spans are half-open:
// [Start, End).
package search

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

type Span struct {
	Start int
	End   int
}

func (s Span) Len() int { return s.End - s.Start }

// Session holds the matches for one field. A closed session keeps nothing;
// SetTerm always rescans the text it is given.
type Session struct {
	fold    cases.Caser
	open    bool
	term    string
	matches []Span
	current int
}

func NewSession() *Session {
	return &Session{fold: cases.Fold(), current: -1}
}

// SetTerm scans text for non-overlapping, case-insensitive occurrences of
// term and moves the cursor to the first one.
func (s *Session) SetTerm(text, term string) (Span, bool) {
	s.open = true
	s.term = term
	s.matches = s.scan(text, term)
	s.current = -1
	if len(s.matches) == 0 {
		return Span{}, false
	}
	s.current = 0
	return s.matches[0], true
}

func (s *Session) scan(text, term string) []Span {
	if term == "" {
		return nil
	}
	hay := s.foldRunes(text)
	needle := s.foldRunes(term)
	if len(needle) > len(hay) {
		return nil
	}

	var out []Span
	for i := 0; i+len(needle) <= len(hay); {
		if equalAt(hay, needle, i) {
			out = append(out, Span{Start: i, End: i + len(needle)})
			i += len(needle)
			continue
		}
		i++
	}
	return out
}

// foldRunes case-folds each rune on its own so that folded positions line
// up with rune offsets in the original text.
func (s *Session) foldRunes(text string) []string {
	out := make([]string, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		out = append(out, s.fold.String(string(r)))
	}
	return out
}

func equalAt(hay, needle []string, at int) bool {
	for k := range needle {
		if hay[at+k] != needle[k] {
			return false
		}
	}
	return true
}

func (s *Session) Next() (Span, bool) {
	return s.step(1)
}

func (s *Session) Previous() (Span, bool) {
	return s.step(-1)
}

func (s *Session) step(delta int) (Span, bool) {
	n := len(s.matches)
	if n == 0 || s.current < 0 {
		return Span{}, false
	}
	s.current = (s.current + delta + n) % n
	return s.matches[s.current], true
}

// Current returns the active match and its index.
func (s *Session) Current() (Span, int, bool) {
	if s.current < 0 || s.current >= len(s.matches) {
		return Span{}, -1, false
	}
	return s.matches[s.current], s.current, true
}

func (s *Session) Matches() []Span {
	return append([]Span(nil), s.matches...)
}

func (s *Session) Len() int { return len(s.matches) }

func (s *Session) Term() string { return s.term }

func (s *Session) Open() bool { return s.open }

// Close drops the term, the matches and the cursor.
func (s *Session) Close() {
	s.open = false
	s.term = ""
	s.matches = nil
	s.current = -1
}

func (s *Session) Status() string {
	if _, i, ok := s.Current(); ok {
		return fmt.Sprintf("Match %d of %d", i+1, len(s.matches))
	}
	return "Matches: 0"
}

// ByteSpan converts a rune span of text to byte offsets. Offsets past the
// end of text clamp to len(text).
func ByteSpan(text string, sp Span) (int, int) {
	start, end := len(text), len(text)
	n := 0
	for i := range text {
		if n == sp.Start {
			start = i
		}
		if n == sp.End {
			end = i
			break
		}
		n++
	}
	if start > end {
		start = end
	}
	return start, end
}
