package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chaz8081/claude-forge/internal/logging"
	"github.com/chaz8081/claude-forge/internal/mcp"
	"github.com/chaz8081/claude-forge/internal/target"
	"github.com/spf13/cobra"
)

var (
	mcpCategory  string
	mcpInstalled bool
	mcpArgs      []string
	mcpEnv       []string
	mcpForce     bool
)

func mcpPath(dir string) string { return filepath.Join(dir, target.MCPPath()) }

// formatServerList prints servers grouped by category. Names present in
// installed are marked.
func formatServerList(w io.Writer, servers []mcp.Server, installed map[string]bool) {
	byCategory := map[string][]mcp.Server{}
	var order []string
	for _, s := range servers {
		if _, ok := byCategory[s.Category]; !ok {
			order = append(order, s.Category)
		}
		byCategory[s.Category] = append(byCategory[s.Category], s)
	}
	sort.Strings(order)
	for i, cat := range order {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s:\n", cat)
		for _, s := range byCategory[cat] {
			mark := " "
			if installed[s.Name] {
				mark = "✓"
			}
			fmt.Fprintf(w, "  %s %-14s %s\n", mark, s.Name, s.Description)
		}
	}
}

// parseEnvPairs turns K=V flags into a map.
func parseEnvPairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --env %q (want KEY=VALUE)", p)
		}
		env[k] = v
	}
	return env, nil
}

// addServer records a catalog server in the project's mcp.json.
func addServer(dir, name string, args []string, env map[string]string, force bool) error {
	server, ok := mcp.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown MCP server %q (see 'claude-forge mcp list')", name)
	}
	f, err := mcp.Load(mcpPath(dir))
	if err != nil {
		return err
	}
	if f.Has(name) && !force {
		return fmt.Errorf("MCP server %q already configured (use --force to replace)", name)
	}
	f.Add(name, server.Config(args, env))
	return f.Save(mcpPath(dir))
}

func removeServer(dir, name string) error {
	f, err := mcp.Load(mcpPath(dir))
	if err != nil {
		return err
	}
	if !f.Remove(name) {
		return fmt.Errorf("MCP server %q is not configured", name)
	}
	return f.Save(mcpPath(dir))
}

func installedServers(dir string) (map[string]bool, error) {
	f, err := mcp.Load(mcpPath(dir))
	if err != nil {
		return nil, err
	}
	out := map[string]bool{}
	for _, n := range f.Names() {
		out[n] = true
	}
	return out, nil
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Manage MCP servers in .claude/mcp.json",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var mcpListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available MCP servers",
	RunE: func(cmd *cobra.Command, args []string) error {
		installed, err := installedServers(ProjectDir())
		if err != nil {
			return err
		}
		servers := mcp.Catalog()
		if mcpCategory != "" {
			servers = mcp.ByCategory(mcpCategory)
			if len(servers) == 0 {
				return fmt.Errorf("unknown category %q (valid: %s)", mcpCategory, strings.Join(mcp.Categories(), ", "))
			}
		}
		if mcpInstalled {
			var kept []mcp.Server
			for _, s := range servers {
				if installed[s.Name] {
					kept = append(kept, s)
				}
			}
			servers = kept
			if len(servers) == 0 {
				logging.UserInfo("No MCP servers configured in %s", target.MCPPath())
				return nil
			}
		}
		formatServerList(logging.Stdout, servers, installed)
		return nil
	},
}

var mcpAddCmd = &cobra.Command{
	Use:               "add <server>",
	Short:             "Add an MCP server from the catalog",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeServers,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := parseEnvPairs(mcpEnv)
		if err != nil {
			return err
		}
		if err := addServer(ProjectDir(), args[0], mcpArgs, env, mcpForce); err != nil {
			return err
		}
		logging.UserSuccess("MCP server %s added to %s", args[0], target.MCPPath())
		if s, _ := mcp.Lookup(args[0]); len(s.Env) > 0 {
			for _, k := range s.Env {
				if _, set := env[k]; !set {
					logging.UserWarning("Set %s in %s before use", k, target.MCPPath())
				}
			}
		}
		return nil
	},
}

var mcpRemoveCmd = &cobra.Command{
	Use:   "remove <server>",
	Short: "Remove an MCP server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := removeServer(ProjectDir(), args[0]); err != nil {
			return err
		}
		logging.UserSuccess("MCP server %s removed", args[0])
		return nil
	},
}

var mcpShowCmd = &cobra.Command{
	Use:   "show [server]",
	Short: "Show the configured servers, or one catalog entry",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			s, ok := mcp.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown MCP server %q", args[0])
			}
			data, err := json.MarshalIndent(map[string]mcp.ServerConfig{s.Name: s.Config(nil, nil)}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintf(logging.Stdout, "%s (%s)\n%s\n\n%s\n", s.Name, s.Category, s.Description, data)
			return nil
		}
		f, err := mcp.Load(mcpPath(ProjectDir()))
		if err != nil {
			return err
		}
		if len(f.Servers) == 0 {
			logging.UserInfo("No MCP servers configured in %s", target.MCPPath())
			return nil
		}
		data, err := f.Render()
		if err != nil {
			return err
		}
		fmt.Fprint(logging.Stdout, string(data))
		return nil
	},
}

var mcpSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the MCP server catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		found := mcp.Search(args[0])
		if len(found) == 0 {
			logging.UserInfo("No MCP servers match %q", args[0])
			return nil
		}
		installed, err := installedServers(ProjectDir())
		if err != nil {
			return err
		}
		formatServerList(logging.Stdout, found, installed)
		return nil
	},
}

func completeServers(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, s := range mcp.Catalog() {
		if strings.HasPrefix(s.Name, toComplete) {
			out = append(out, s.Name+"\t"+s.Description)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	mcpListCmd.Flags().StringVarP(&mcpCategory, "category", "c", "", "only list servers in this category")
	mcpListCmd.Flags().BoolVar(&mcpInstalled, "installed", false, "only list configured servers")
	mcpAddCmd.Flags().StringSliceVar(&mcpArgs, "args", nil, "extra arguments appended to the server command")
	mcpAddCmd.Flags().StringArrayVar(&mcpEnv, "env", nil, "environment variable KEY=VALUE (repeatable)")
	mcpAddCmd.Flags().BoolVarP(&mcpForce, "force", "f", false, "replace an existing entry")
	mcpRemoveCmd.ValidArgsFunction = completeServers

	mcpCmd.AddCommand(mcpListCmd, mcpAddCmd, mcpRemoveCmd, mcpShowCmd, mcpSearchCmd)
	rootCmd.AddCommand(mcpCmd)
}
