package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chaz8081/claude-forge/internal/engine"
	"github.com/chaz8081/claude-forge/internal/logging"
	"github.com/spf13/cobra"
)

var detectJSON bool

type detectReport struct {
	Language   engine.Language `json:"language"`
	Display    string          `json:"display"`
	Marker     string          `json:"marker"`
	Promoted   bool            `json:"promoted"`
	Framework  string          `json:"framework,omitempty"`
	Extensions []string        `json:"extensions"`
}

func newDetectReport(res *engine.ScanResult) detectReport {
	return detectReport{
		Language:   res.Language,
		Display:    res.Language.DisplayName(),
		Marker:     res.Marker,
		Promoted:   res.Promoted,
		Framework:  res.Framework,
		Extensions: res.Language.Extensions(),
	}
}

func formatDetect(r detectReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Language:   %s\n", r.Display)
	marker := r.Marker
	if r.Promoted {
		marker += " (TypeScript declared)"
	}
	fmt.Fprintf(&b, "Marker:     %s\n", marker)
	if r.Framework != "" {
		fmt.Fprintf(&b, "Framework:  %s\n", r.Framework)
	}
	fmt.Fprintf(&b, "Extensions: %s\n", strings.Join(r.Extensions, ", "))
	return b.String()
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Show the detected project language",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := engine.ScanProject(ProjectDir())
		if err != nil {
			return err
		}
		r := newDetectReport(res)
		if detectJSON {
			b, err := json.MarshalIndent(r, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(logging.Stdout, string(b))
			return nil
		}
		fmt.Fprint(logging.Stdout, formatDetect(r))
		return nil
	},
}

func init() {
	detectCmd.Flags().BoolVar(&detectJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(detectCmd)
}
