package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/keygrid/internal/input/keymap"
	"github.com/dshills/keygrid/internal/input/mode"
)

func newCheckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a keymap file",
		Long: `Validate a keymap file without starting the editor. Unknown
actions, malformed keys and bindings where one sequence is a prefix of
another are reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := keymap.NewLoader().LoadSet(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range mode.All() {
				fmt.Fprintf(out, "%-8s %d bindings\n", m, set.For(m).Len())
			}
			fmt.Fprintf(out, "%-8s %d bindings\n", keymap.GlobalName, set.Global().Len())
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}
