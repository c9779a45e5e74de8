package engine

import (
	"fmt"
	"strings"
)

// Language is one of the supported project languages.
type Language int

const (
	Rust Language = iota + 1
	Go
	TypeScript
	JavaScript
	Python
	Java
	Elixir
	Erlang
)

type languageInfo struct {
	lang       Language
	name       string
	display    string
	aliases    []string
	markers    []string
	extensions []string
}

// languages is the detection priority order. Compiled languages come before
// scripting manifests so a repo with a nested web frontend still resolves to
// its primary language.
var languages = []languageInfo{
	{Rust, "rust", "Rust", []string{"rs"}, []string{"Cargo.toml", "Cargo.lock"}, []string{"rs"}},
	{Go, "go", "Go", []string{"golang"}, []string{"go.mod", "go.sum"}, []string{"go"}},
	{TypeScript, "typescript", "TypeScript", []string{"ts"}, []string{"tsconfig.json"}, []string{"ts", "tsx"}},
	{JavaScript, "javascript", "JavaScript", []string{"js"}, []string{"package.json"}, []string{"js", "jsx", "mjs", "cjs"}},
	{Python, "python", "Python", []string{"py"}, []string{"pyproject.toml", "setup.py", "requirements.txt"}, []string{"py"}},
	{Java, "java", "Java", nil, []string{"pom.xml", "build.gradle", "build.gradle.kts"}, []string{"java"}},
	{Elixir, "elixir", "Elixir", []string{"ex"}, []string{"mix.exs"}, []string{"ex", "exs"}},
	{Erlang, "erlang", "Erlang", []string{"erl"}, []string{"rebar.config", "rebar.lock"}, []string{"erl", "hrl"}},
}

// Languages returns every supported language in detection priority order.
func Languages() []Language {
	out := make([]Language, len(languages))
	for i, l := range languages {
		out[i] = l.lang
	}
	return out
}

func (l Language) info() (languageInfo, bool) {
	for _, li := range languages {
		if li.lang == l {
			return li, true
		}
	}
	return languageInfo{}, false
}

// String returns the lowercase identifier, e.g. "typescript".
func (l Language) String() string {
	if li, ok := l.info(); ok {
		return li.name
	}
	return fmt.Sprintf("Language(%d)", int(l))
}

// DisplayName returns the human-readable name, e.g. "TypeScript".
func (l Language) DisplayName() string {
	if li, ok := l.info(); ok {
		return li.display
	}
	return l.String()
}

// Markers returns the marker filenames checked at the project root.
func (l Language) Markers() []string {
	li, _ := l.info()
	return append([]string(nil), li.markers...)
}

// Extensions returns the source file extensions, without dots.
func (l Language) Extensions() []string {
	li, _ := l.info()
	return append([]string(nil), li.extensions...)
}

// ParseLanguage resolves a language name or alias, case-insensitively.
func ParseLanguage(s string) (Language, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, li := range languages {
		if key == li.name {
			return li.lang, nil
		}
		for _, a := range li.aliases {
			if key == a {
				return li.lang, nil
			}
		}
	}
	return 0, fmt.Errorf("unsupported language: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Language) MarshalText() ([]byte, error) {
	if _, ok := l.info(); !ok {
		return nil, fmt.Errorf("invalid language %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Language) UnmarshalText(b []byte) error {
	parsed, err := ParseLanguage(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
