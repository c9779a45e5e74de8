package cli

import (
	"fmt"

	"github.com/chaz8081/claude-forge/internal/logging"
	"github.com/chaz8081/claude-forge/internal/registry"
	"github.com/spf13/cobra"
)

var updateDryRun bool

// packUpdate is the outcome of refreshing one template pack.
type packUpdate struct {
	Name   string
	Before string // empty when the pack was not cached
	After  string
	Err    error
}

func (u packUpdate) String() string {
	switch {
	case u.Err != nil:
		return fmt.Sprintf("%s: %v", u.Name, u.Err)
	case u.Before == "":
		return fmt.Sprintf("%s: cloned at %s", u.Name, u.After)
	case u.Before == u.After:
		return fmt.Sprintf("%s: up to date (%s)", u.Name, u.After)
	default:
		return fmt.Sprintf("%s: %s -> %s", u.Name, u.Before, u.After)
	}
}

// refreshPacks refreshes every pack, continuing past failures.
func refreshPacks(packs []*registry.GitPack) []packUpdate {
	out := make([]packUpdate, 0, len(packs))
	for _, p := range packs {
		u := packUpdate{Name: p.Name()}
		if p.Cached() {
			u.Before, _ = p.Head()
		}
		if err := p.Refresh(); err != nil {
			u.Err = err
			out = append(out, u)
			continue
		}
		u.After, u.Err = p.Head()
		out = append(out, u)
	}
	return out
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh the configured git template packs",
	Long: `Pulls every template pack listed under 'templates' in forge.yaml. Packs
tracking "latest" follow their default branch; pinned packs are cloned if
missing and otherwise left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		packs := cfg.Packs(cacheDir())
		if len(packs) == 0 {
			logging.UserInfo("No template packs configured")
			return nil
		}

		if updateDryRun {
			for _, p := range packs {
				state := "not cached, would clone"
				if p.Cached() {
					state = "cached, would refresh"
					if head, err := p.Head(); err == nil {
						state = fmt.Sprintf("cached at %s, would refresh", head)
					}
				}
				fmt.Fprintf(logging.Stdout, "%s (%s @ %s): %s\n", p.Name(), p.URL, p.Ref, state)
			}
			return nil
		}

		failed := 0
		for _, u := range refreshPacks(packs) {
			if u.Err != nil {
				failed++
				logging.UserError("%s", u)
				continue
			}
			logging.UserSuccess("%s", u)
		}
		if failed > 0 {
			return fmt.Errorf("%d template pack(s) failed to update", failed)
		}
		return nil
	},
}

func init() {
	updateCmd.Flags().BoolVar(&updateDryRun, "dry-run", false, "show what would be refreshed")
	rootCmd.AddCommand(updateCmd)
}
