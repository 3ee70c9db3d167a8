package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/keygrid/internal/config"
	"github.com/dshills/keygrid/internal/input/keymap"
)

// cli carries state shared by the subcommands.
type cli struct {
	configPath string
	v          *viper.Viper
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{v: config.NewViper()}

	root := &cobra.Command{
		Use:           "keygrid",
		Short:         "Keyboard-driven table editor",
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.v, c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "config file (default "+config.Dir()+"/config.toml)")
	flags.StringP("keymap", "k", "", "keymap override file (TOML or JSON)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	_ = c.v.BindPFlag("keymap.file", flags.Lookup("keymap"))
	_ = c.v.BindPFlag("log.level", flags.Lookup("log-level"))

	root.AddCommand(newRunCmd(c), newKeysCmd(c), newCheckCmd(c))
	return root
}

// keymapSet loads the configured keymap, or the defaults when none is set.
func (c *cli) keymapSet() (*keymap.Set, *keymap.Loader, error) {
	loader := keymap.NewLoader(config.Dir())
	if c.cfg.Keymap.File == "" {
		return keymap.DefaultSet(), loader, nil
	}
	set, err := loader.LoadSet(c.cfg.Keymap.File)
	if err != nil {
		return nil, nil, err
	}
	return set, loader, nil
}
