package engine

import (
	"fmt"
	"strings"

	"github.com/chaz8081/claude-forge/internal/probe"
)

// ToolsHeading opens the generated tool-usage section of a memory document.
const ToolsHeading = "## 🚫 CLI Tool Usage (When Using Bash)"

const (
	bannerPrefix = "<!-- tools: "
	bannerSuffix = " -->"
)

// sectionOrder is the order tool blocks appear in the section.
var sectionOrder = []string{"eza", "dust", "bat", "fd", "rg"}

// Compose renders the tool-usage section for res and splices it into base,
// then prepends a status banner. Only the section and the banner line are
// touched; composing its own output again with the same result is a no-op.
func Compose(base string, res probe.Result) string {
	body := stripBanner(base)
	return Banner(res) + "\n" + Splice(body, RenderToolsSection(res))
}

// RenderToolsSection renders the tool-usage section, including the
// remediation block when any tool is missing.
func RenderToolsSection(res probe.Result) string {
	tools := probe.Tools()
	byName := make(map[string]probe.Tool, len(tools))
	for _, t := range tools {
		byName[t.Binary] = t
	}

	var b strings.Builder
	b.WriteString(ToolsHeading + "\n\n")
	b.WriteString("**IMPORTANT**: Claude Code has built-in tools (Grep, Glob, Read) that are already optimized.\n")
	b.WriteString("The rules below apply ONLY when Claude needs to use the Bash tool directly.\n")
	b.WriteString("\nWhen using the Bash tool for operations:\n")

	for _, name := range sectionOrder {
		writeToolBlock(&b, byName[name], res.Installed(name))
	}

	missing := res.Missing(tools)
	if len(missing) > 0 {
		b.WriteString("\n### 📦 Recommended Tools to Install\n")
		b.WriteString("\nRun this command to install missing tools:\n```bash\nclaude-forge tools install\n```\n")
		b.WriteString("\nOr install individually:\n```bash\n")
		for _, t := range missing {
			fmt.Fprintf(&b, "# %s\n%s\n", t.Description, t.InstallHint)
		}
		b.WriteString("```\n")
	}
	return b.String()
}

func writeToolBlock(b *strings.Builder, t probe.Tool, installed bool) {
	if installed {
		fmt.Fprintf(b, "\n**%s:**\n", t.InstalledHeading)
		fmt.Fprintf(b, "- ✅ ALWAYS: `%s`\n", t.Modern)
		fmt.Fprintf(b, "- ❌ NEVER: `%s`\n", strings.Join(t.Legacy, "` or `"))
		return
	}
	fmt.Fprintf(b, "\n**%s:**\n", t.Heading)
	fmt.Fprintf(b, "- ℹ️ Consider installing `%s` %s: `brew install %s`\n", t.Package, t.Purpose, t.Package)
	fmt.Fprintf(b, "- Current: Use `%s` (basic)\n", t.Legacy[0])
}

// Banner returns the single-line status comment for res.
func Banner(res probe.Result) string {
	return bannerPrefix + Status(res) + bannerSuffix
}

// Status summarises how many catalog tools are installed.
func Status(res probe.Result) string {
	tools := probe.Tools()
	n, total := res.Count(tools), len(tools)
	switch n {
	case total:
		return fmt.Sprintf("✅ All modern CLI tools installed (%d/%d)", n, total)
	case 0:
		return fmt.Sprintf("⚠️ No modern CLI tools installed (0/%d). Run `claude-forge tools install`", total)
	default:
		return fmt.Sprintf("ℹ️ %d/%d modern CLI tools installed. Run `claude-forge tools check` to see details", n, total)
	}
}

// stripBanner removes a leading status banner line, if present.
func stripBanner(doc string) string {
	line, rest, found := strings.Cut(doc, "\n")
	if strings.HasPrefix(line, bannerPrefix) && strings.HasSuffix(line, bannerSuffix) {
		if !found {
			return ""
		}
		return rest
	}
	return doc
}

// Splice replaces the section opened by ToolsHeading with section. The
// section runs to the next level one or two heading outside a fenced code
// block, or to the end of the document. When the heading is absent the
// section is appended after a blank line.
func Splice(doc, section string) string {
	start, end, ok := findSection(doc)
	if !ok {
		if doc == "" {
			return section
		}
		sep := "\n"
		if !strings.HasSuffix(doc, "\n") {
			sep = "\n\n"
		}
		return doc + sep + section
	}
	if end < len(doc) {
		section += "\n"
	}
	return doc[:start] + section + doc[end:]
}

// findSection returns the byte range of the tools section.
func findSection(doc string) (start, end int, ok bool) {
	start = -1
	var fence codeFence
	offset := 0
	for offset < len(doc) {
		next := strings.IndexByte(doc[offset:], '\n')
		lineEnd := len(doc)
		if next >= 0 {
			lineEnd = offset + next + 1
		}
		line := strings.TrimRight(doc[offset:lineEnd], "\r\n")

		switch {
		case fence.update(line):
		case start < 0 && strings.TrimRight(line, " \t") == ToolsHeading:
			start = offset
		case start >= 0 && isTopHeading(line):
			return start, offset, true
		}
		offset = lineEnd
	}
	if start < 0 {
		return 0, 0, false
	}
	return start, len(doc), true
}

// codeFence tracks the open fenced code block, if any. A block closes only
// on a run of the same character at least as long as the one that opened it.
type codeFence struct {
	char byte
	size int
}

// update consumes line and reports whether it belongs to a fenced block,
// delimiters included.
func (f *codeFence) update(line string) bool {
	char, size, rest := fenceRun(line)
	if f.size == 0 {
		if size == 0 {
			return false
		}
		f.char, f.size = char, size
		return true
	}
	if char == f.char && size >= f.size && strings.TrimSpace(rest) == "" {
		f.size = 0
	}
	return true
}

// fenceRun splits a fence delimiter line into its character, run length and
// trailing info string. size is zero when line is not a delimiter.
func fenceRun(line string) (char byte, size int, rest string) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || len(trimmed) < 3 {
		return 0, 0, ""
	}
	char = trimmed[0]
	if char != '`' && char != '~' {
		return 0, 0, ""
	}
	for size < len(trimmed) && trimmed[size] == char {
		size++
	}
	rest = trimmed[size:]
	if size < 3 || (char == '`' && strings.IndexByte(rest, '`') >= 0) {
		return 0, 0, ""
	}
	return char, size, rest
}

// isTopHeading reports whether line is an ATX heading of level one or two.
func isTopHeading(line string) bool {
	return strings.HasPrefix(line, "# ") || strings.HasPrefix(line, "## ") ||
		line == "#" || line == "##"
}
