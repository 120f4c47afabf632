// Package pattern compiles SSID pattern files into matchers.
//
// A pattern file holds one rule per line. A trailing or leading `*` acts as
// a wildcard; `*` anywhere else is a literal character. Lines starting with
// `#` (after trimming) and blank lines carry no meaning — a blank line is
// always a separator, never a rule. The literal token `<empty>` is the only
// way to write a rule matching devices that broadcast no SSID.
//
// All matching is case-sensitive.
package pattern

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Kind discriminates the compiled pattern variants.
type Kind string

const (
	// KindExact matches an SSID equal to the pattern text.
	KindExact Kind = "exact"
	// KindPrefix matches SSIDs starting with the pattern text (`text*`).
	KindPrefix Kind = "prefix"
	// KindSuffix matches SSIDs ending with the pattern text (`*text`).
	KindSuffix Kind = "suffix"
	// KindContains matches SSIDs containing the pattern text (`*text*`).
	KindContains Kind = "contains"
	// KindEmpty matches only the empty SSID (`<empty>` token).
	KindEmpty Kind = "empty"
)

// emptyToken is the sentinel line for matching hidden networks. The token is
// recognized case-insensitively; everything else in a pattern is not.
const emptyToken = "<empty>"

// Pattern is a single compiled matching rule.
type Pattern struct {
	Kind Kind
	Text string
}

// Compile turns one raw pattern-file line into a Pattern. The second return
// is false for lines that produce no rule: blanks and `#` comments.
func Compile(line string) (Pattern, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Pattern{}, false
	}
	if strings.EqualFold(line, emptyToken) {
		return Pattern{Kind: KindEmpty}, true
	}

	leading := strings.HasPrefix(line, "*")
	trailing := strings.HasSuffix(line, "*")
	switch {
	case leading && trailing && len(line) > 1:
		return Pattern{Kind: KindContains, Text: line[1 : len(line)-1]}, true
	case leading:
		return Pattern{Kind: KindSuffix, Text: line[1:]}, true
	case trailing:
		return Pattern{Kind: KindPrefix, Text: line[:len(line)-1]}, true
	default:
		return Pattern{Kind: KindExact, Text: line}, true
	}
}

// Matches reports whether the pattern matches the given SSID.
//
// A wildcard pattern whose text is empty (the line was `*` or `**`) matches
// every non-empty SSID. That degenerate match-everything rule is intended,
// not filtered.
func (p Pattern) Matches(ssid string) bool {
	switch p.Kind {
	case KindEmpty:
		return ssid == ""
	case KindExact:
		return ssid == p.Text
	case KindPrefix:
		return ssid != "" && strings.HasPrefix(ssid, p.Text)
	case KindSuffix:
		return ssid != "" && strings.HasSuffix(ssid, p.Text)
	case KindContains:
		return ssid != "" && strings.Contains(ssid, p.Text)
	default:
		return false
	}
}

// Set is an ordered collection of patterns compiled from one file. Order
// only matters for deterministic iteration; the match result is "any rule
// matches".
type Set struct {
	patterns []Pattern
}

// NewSet compiles the given raw lines into a Set, dropping comments and
// blanks.
func NewSet(lines ...string) *Set {
	s := &Set{}
	for _, line := range lines {
		if p, ok := Compile(line); ok {
			s.patterns = append(s.patterns, p)
		}
	}
	return s
}

// LoadSet reads a pattern file and compiles it into a Set. A missing or
// unreadable file is an error; callers surface it before any classification
// starts.
func LoadSet(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pattern file %q: %w", path, err)
	}
	defer f.Close()

	s := &Set{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if p, ok := Compile(scanner.Text()); ok {
			s.patterns = append(s.patterns, p)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read pattern file %q: %w", path, err)
	}
	return s, nil
}

// Matches reports whether any pattern in the set matches the SSID.
// Short-circuits on the first hit.
func (s *Set) Matches(ssid string) bool {
	if s == nil {
		return false
	}
	for _, p := range s.patterns {
		if p.Matches(ssid) {
			return true
		}
	}
	return false
}

// Len returns the number of compiled patterns in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// Patterns returns the compiled rules in file order.
func (s *Set) Patterns() []Pattern {
	if s == nil {
		return nil
	}
	return s.patterns
}
