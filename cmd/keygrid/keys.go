package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/keygrid/internal/input/keymap"
)

func newKeysCmd(c *cli) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List the effective key bindings",
		Long: `List the effective key bindings: the defaults merged with the
configured keymap file. With --format toml, json or yaml the bindings are written
as a keymap file that can be edited and loaded with --keymap.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, _, err := c.keymapSet()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "", "text":
				return writeListing(out, set)
			case "toml":
				return keymap.ExportFile(set).Encode(out, keymap.FormatTOML)
			case "json":
				return keymap.ExportFile(set).Encode(out, keymap.FormatJSON)
			case "yaml", "yml":
				return keymap.ExportFile(set).Encode(out, keymap.FormatYAML)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, toml, json, yaml")
	return cmd
}

func writeListing(out io.Writer, set *keymap.Set) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	section := ""
	for _, e := range set.Listing() {
		if head := e.Keymap + " / " + e.Category; head != section {
			if section != "" {
				fmt.Fprintln(tw)
			}
			fmt.Fprintf(tw, "[%s]\n", head)
			section = head
		}
		desc := e.Description
		if e.Arg != "" {
			desc += " (" + e.Arg + ")"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", e.Keys, e.Action, desc)
	}
	return tw.Flush()
}
