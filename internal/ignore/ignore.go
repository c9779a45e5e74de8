// Package ignore parses .claudeignore files and matches paths against them.
// Patterns follow gitignore conventions: a trailing slash names a directory,
// a leading "!" re-includes, and a pattern without a slash matches at any
// depth.
package ignore

import (
	"bufio"
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Rule is one pattern line.
type Rule struct {
	Line    int
	Pattern string // as written, without "!" or trailing "/"
	Negate  bool
	DirOnly bool
	glob    string
}

// Issue describes a line whose pattern is not a valid glob.
type Issue struct {
	Line    int
	Pattern string
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: invalid pattern %q", i.Line, i.Pattern)
}

// Matcher holds the valid rules of a file in order.
type Matcher struct {
	Rules  []Rule
	Issues []Issue
}

// Parse reads ignore content. Invalid patterns are collected as issues and
// left out of matching.
func Parse(content string) *Matcher {
	m := &Matcher{}
	sc := bufio.NewScanner(strings.NewReader(content))
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r := Rule{Line: n}
		if strings.HasPrefix(line, "!") {
			r.Negate = true
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			r.DirOnly = true
			line = strings.TrimRight(line, "/")
		}
		r.Pattern = line
		if line == "" || !doublestar.ValidatePattern(line) {
			m.Issues = append(m.Issues, Issue{Line: n, Pattern: sc.Text()})
			continue
		}
		r.glob = expand(line)
		m.Rules = append(m.Rules, r)
	}
	return m
}

func expand(p string) string {
	if strings.Contains(p, "/") {
		return strings.TrimPrefix(p, "/")
	}
	return "**/" + p
}

// Match reports whether the slash-separated relative path is ignored. The
// last matching rule wins. isDir marks path itself as a directory.
func (m *Matcher) Match(rel string, isDir bool) bool {
	rel = strings.TrimPrefix(path.Clean(rel), "./")
	ignored := false
	for _, r := range m.Rules {
		if r.matches(rel, isDir) {
			ignored = !r.Negate
		}
	}
	return ignored
}

// matches reports whether rel itself, or any directory containing it,
// matches the rule.
func (r Rule) matches(rel string, isDir bool) bool {
	if ok, _ := doublestar.Match(r.glob, rel); ok && (isDir || !r.DirOnly) {
		return true
	}
	for dir := path.Dir(rel); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if ok, _ := doublestar.Match(r.glob, dir); ok {
			return true
		}
	}
	return false
}
