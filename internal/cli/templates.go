package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/chaz8081/claude-forge/internal/engine"
	"github.com/chaz8081/claude-forge/internal/logging"
	"github.com/chaz8081/claude-forge/internal/registry"
	"github.com/spf13/cobra"
)

// listKinds returns the kinds a listing covers: all named kinds when arg is
// empty.
func listKinds(arg string) ([]registry.Kind, error) {
	if arg == "" {
		return registry.NamedKinds(), nil
	}
	k, err := registry.ParseKind(arg)
	if err != nil {
		return nil, err
	}
	return []registry.Kind{k}, nil
}

// formatTemplateList writes the entries of each kind. Entries not served by
// the built-ins are tagged with their source.
func formatTemplateList(w io.Writer, reg *registry.Registry, kinds []registry.Kind) error {
	for i, k := range kinds {
		entries, err := reg.List(k)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s:\n", k.Dir())
		if len(entries) == 0 {
			fmt.Fprintln(w, "  (none)")
		}
		for _, e := range entries {
			if e.Source == reg.Builtin().Name() {
				fmt.Fprintf(w, "  %s\n", e.Name)
			} else {
				fmt.Fprintf(w, "  %-20s [%s]\n", e.Name, e.Source)
			}
		}
	}
	return nil
}

var templatesCmd = &cobra.Command{
	Use:     "templates",
	Aliases: []string{"template"},
	Short:   "Browse the available templates",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var templatesListCmd = &cobra.Command{
	Use:       "list [kind]",
	Short:     "List agent, command and hook templates",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(registry.KindAgent), string(registry.KindCommand), string(registry.KindHook), string(registry.KindMemory)},
	RunE: func(cmd *cobra.Command, args []string) error {
		kindArg := ""
		if len(args) == 1 {
			kindArg = args[0]
		}
		kinds, err := listKinds(kindArg)
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return formatTemplateList(logging.Stdout, newRegistry(cfg), kinds)
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <kind> <name>",
	Short: "Print a template",
	Long: `Prints the template text. For the memory kind the name is a language,
e.g. 'claude-forge templates show memory rust'.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := registry.ParseKind(args[0])
		if err != nil {
			return err
		}
		selector := args[1]
		if kind == registry.KindMemory {
			lang, err := engine.ParseLanguage(selector)
			if err != nil {
				return err
			}
			selector = lang.String()
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		text, err := newRegistry(cfg).Resolve(kind, selector)
		if err != nil {
			return err
		}
		fmt.Fprint(logging.Stdout, text)
		if !strings.HasSuffix(text, "\n") {
			fmt.Fprintln(logging.Stdout)
		}
		return nil
	},
}

func init() {
	templatesCmd.AddCommand(templatesListCmd, templatesShowCmd)
	rootCmd.AddCommand(templatesCmd)
}
