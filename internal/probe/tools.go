package probe

// Tool describes one modern CLI tool and the legacy command it replaces.
type Tool struct {
	Binary      string // executable name looked up on PATH
	Package     string // display and Homebrew package name
	AptPackage  string
	CargoCrate  string
	Description string

	// Heading is the block label when the tool is missing; InstalledHeading
	// is used when it is present.
	Heading          string
	InstalledHeading string
	Purpose          string // completes "Consider installing `x` ..."

	Modern        string   // preferred invocation
	Legacy        []string // invocations to avoid when Modern is available
	LegacyCommand string   // legacy executable name
	InstallHint   string
}

var catalog = []Tool{
	{
		Binary:           "rg",
		Package:          "ripgrep",
		AptPackage:       "ripgrep",
		CargoCrate:       "ripgrep",
		Description:      "Fast text search",
		Heading:          "Text Search",
		InstalledHeading: "Text Search (if not using Grep tool)",
		Purpose:          "for faster text search",
		Modern:           "rg pattern",
		Legacy:           []string{"grep pattern"},
		LegacyCommand:    "grep",
		InstallHint:      "brew install ripgrep  # or: cargo install ripgrep",
	},
	{
		Binary:           "fd",
		Package:          "fd",
		AptPackage:       "fd-find",
		CargoCrate:       "fd-find",
		Description:      "Fast file finder",
		Heading:          "File Search",
		InstalledHeading: "File Search (if not using Glob tool)",
		Purpose:          "for faster file search",
		Modern:           "fd pattern",
		Legacy:           []string{"find . -name pattern"},
		LegacyCommand:    "find",
		InstallHint:      "brew install fd  # or: cargo install fd-find",
	},
	{
		Binary:           "bat",
		Package:          "bat",
		AptPackage:       "bat",
		CargoCrate:       "bat",
		Description:      "Cat with syntax highlighting",
		Heading:          "File Viewing",
		InstalledHeading: "File Viewing (for display purposes)",
		Purpose:          "for syntax highlighting",
		Modern:           "bat filename",
		Legacy:           []string{"cat filename"},
		LegacyCommand:    "cat",
		InstallHint:      "brew install bat  # or: cargo install bat",
	},
	{
		Binary:           "eza",
		Package:          "eza",
		AptPackage:       "eza",
		CargoCrate:       "eza",
		Description:      "Modern ls replacement",
		Heading:          "Directory Listing",
		InstalledHeading: "Directory Listing",
		Purpose:          "for better directory listing",
		Modern:           "eza -la --icons --git",
		Legacy:           []string{"ls -la", "ls"},
		LegacyCommand:    "ls",
		InstallHint:      "brew install eza  # or: cargo install eza",
	},
	{
		Binary:           "dust",
		Package:          "dust",
		AptPackage:       "du-dust",
		CargoCrate:       "du-dust",
		Description:      "Disk usage analyzer",
		Heading:          "Disk Usage",
		InstalledHeading: "Disk Usage",
		Purpose:          "for better disk usage",
		Modern:           "dust -d 2",
		Legacy:           []string{"du -sh", "du"},
		LegacyCommand:    "du",
		InstallHint:      "brew install dust  # or: cargo install du-dust",
	},
}

// Tools returns the catalog of modern CLI tools in install order.
// The returned slice is a copy.
func Tools() []Tool {
	out := make([]Tool, len(catalog))
	for i, t := range catalog {
		t.Legacy = append([]string(nil), t.Legacy...)
		out[i] = t
	}
	return out
}

// ToolNames returns the binary names of every catalog tool.
func ToolNames() []string {
	names := make([]string, len(catalog))
	for i, t := range catalog {
		names[i] = t.Binary
	}
	return names
}

// Lookup finds a tool by binary or package name.
func Lookup(name string) (Tool, bool) {
	for _, t := range Tools() {
		if t.Binary == name || t.Package == name {
			return t, true
		}
	}
	return Tool{}, false
}
