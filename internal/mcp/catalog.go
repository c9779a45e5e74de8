// Package mcp manages the MCP server entries of a project's .claude/mcp.json.
package mcp

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Categories in display order.
const (
	CategoryEssential    = "Essential"
	CategoryDevelopment  = "Development"
	CategoryDatabase     = "Database"
	CategoryAPI          = "API"
	CategoryProductivity = "Productivity"
)

// Server is a catalog entry.
type Server struct {
	Name        string
	Description string
	Category    string
	Command     string
	Args        []string
	Env         []string // variables the server needs, without values
}

// Config returns the mcp.json entry for s with extra args appended.
func (s Server) Config(extraArgs []string, env map[string]string) ServerConfig {
	args := append(append([]string(nil), s.Args...), extraArgs...)
	cfg := ServerConfig{Command: s.Command, Args: args}
	if len(s.Env) > 0 || len(env) > 0 {
		cfg.Env = map[string]string{}
		for _, k := range s.Env {
			cfg.Env[k] = ""
		}
		for k, v := range env {
			cfg.Env[k] = v
		}
	}
	return cfg
}

var catalog = []Server{
	{Name: "filesystem", Description: "Access local file system", Category: CategoryEssential,
		Command: "npx", Args: []string{"-y", "@modelcontextprotocol/server-filesystem", "."}},
	{Name: "git", Description: "Git repository operations", Category: CategoryEssential,
		Command: "uvx", Args: []string{"mcp-server-git", "--repository", "."}},
	{Name: "github", Description: "GitHub API integration", Category: CategoryDevelopment,
		Command: "npx", Args: []string{"-y", "@modelcontextprotocol/server-github"}, Env: []string{"GITHUB_PERSONAL_ACCESS_TOKEN"}},
	{Name: "postgres", Description: "PostgreSQL database access", Category: CategoryDatabase,
		Command: "npx", Args: []string{"-y", "@modelcontextprotocol/server-postgres"}},
	{Name: "sqlite", Description: "SQLite database access", Category: CategoryDatabase,
		Command: "uvx", Args: []string{"mcp-server-sqlite"}},
	{Name: "fetch", Description: "HTTP requests and web scraping", Category: CategoryAPI,
		Command: "uvx", Args: []string{"mcp-server-fetch"}},
	{Name: "puppeteer", Description: "Browser automation", Category: CategoryDevelopment,
		Command: "npx", Args: []string{"-y", "@modelcontextprotocol/server-puppeteer"}},
	{Name: "brave-search", Description: "Web search via Brave", Category: CategoryProductivity,
		Command: "npx", Args: []string{"-y", "@modelcontextprotocol/server-brave-search"}, Env: []string{"BRAVE_API_KEY"}},
	{Name: "google-maps", Description: "Google Maps integration", Category: CategoryAPI,
		Command: "npx", Args: []string{"-y", "@modelcontextprotocol/server-google-maps"}, Env: []string{"GOOGLE_MAPS_API_KEY"}},
	{Name: "slack", Description: "Slack workspace integration", Category: CategoryProductivity,
		Command: "npx", Args: []string{"-y", "@modelcontextprotocol/server-slack"}, Env: []string{"SLACK_BOT_TOKEN", "SLACK_TEAM_ID"}},
	{Name: "sentry", Description: "Error tracking and monitoring", Category: CategoryDevelopment,
		Command: "uvx", Args: []string{"mcp-server-sentry"}, Env: []string{"SENTRY_AUTH_TOKEN"}},
	{Name: "memory", Description: "Persistent knowledge graphs", Category: CategoryProductivity,
		Command: "npx", Args: []string{"-y", "@modelcontextprotocol/server-memory"}},
}

// Catalog returns every known server in display order.
func Catalog() []Server {
	out := make([]Server, len(catalog))
	copy(out, catalog)
	return out
}

// Essential returns the servers init adds by default.
func Essential() []Server { return ByCategory(CategoryEssential) }

// Lookup finds a catalog server by name.
func Lookup(name string) (Server, bool) {
	for _, s := range catalog {
		if s.Name == name {
			return s, true
		}
	}
	return Server{}, false
}

// ByCategory returns the servers in category, matched case-insensitively.
func ByCategory(category string) []Server {
	fold := cases.Fold()
	want := fold.String(category)
	var out []Server
	for _, s := range catalog {
		if fold.String(s.Category) == want {
			out = append(out, s)
		}
	}
	return out
}

// Categories returns the distinct categories in sorted order.
func Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range catalog {
		if !seen[s.Category] {
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Search returns servers whose name, description or category contains
// query, ignoring case.
func Search(query string) []Server {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))
	var out []Server
	for _, s := range catalog {
		hay := fold.String(s.Name + " " + s.Description + " " + s.Category)
		if strings.Contains(hay, q) {
			out = append(out, s)
		}
	}
	return out
}
