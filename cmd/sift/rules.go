package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"sift/internal/rules"
)

func newRulesCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List built-in rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all := rules.Builtin().All()
			switch strings.ToLower(format) {
			case "json":
				return renderRulesJSON(cmd.OutOrStdout(), all)
			case "pretty":
				renderRulesPretty(cmd.OutOrStdout(), all)
				return nil
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}

type rulePayload struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	Recommended    bool   `json:"recommended"`
	Fixable        bool   `json:"fixable"`
	HasSuggestions bool   `json:"hasSuggestions"`
}

func renderRulesJSON(out io.Writer, all []*rules.Rule) error {
	payload := make([]rulePayload, 0, len(all))
	for _, r := range all {
		payload = append(payload, rulePayload{
			ID:             r.ID,
			Description:    r.Description,
			Recommended:    r.Recommended,
			Fixable:        r.Fixable,
			HasSuggestions: r.HasSuggestions,
		})
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func renderRulesPretty(out io.Writer, all []*rules.Rule) {
	idColor := color.New(color.Bold)
	flagColor := color.New(color.FgCyan)
	width := 0
	for _, r := range all {
		width = max(width, runewidth.StringWidth(r.ID))
	}
	for _, r := range all {
		flags := []byte("   ")
		if r.Recommended {
			flags[0] = 'R'
		}
		if r.Fixable {
			flags[1] = 'F'
		}
		if r.HasSuggestions {
			flags[2] = 'S'
		}
		fmt.Fprintf(out, "%s  %s%s  %s\n",
			flagColor.Sprint(string(flags)),
			idColor.Sprint(r.ID),
			strings.Repeat(" ", width-runewidth.StringWidth(r.ID)),
			r.Description)
	}
	fmt.Fprintln(out, "\nR recommended, F fixable with --fix, S has suggestions")
}
