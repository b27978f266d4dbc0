package commands

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/diogo/kioskfeed/internal/config"
)

// NewConfigCmd creates the config command
func NewConfigCmd(deps *Dependencies, flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration after layering defaults, the config file,
KIOSK_* environment variables and command line flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(flags, nil)
			if err != nil {
				return err
			}

			if save, _ := cmd.Flags().GetBool("save"); save {
				if err := config.SaveConfig(cfg); err != nil {
					return err
				}
			}

			path := flags.Config
			if path == "" {
				if path, err = config.GetConfigPath(); err != nil {
					return err
				}
			}
			fmt.Fprintf(deps.Out, "config file: %s\n\n", path)

			values := cfg.ToMap()
			keys := lo.Keys(values)
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(deps.Out, "%-20s %v\n", k, values[k])
			}
			return nil
		},
	}
	cmd.Flags().Bool("save", false, "Write the effective configuration to ~/.kiosk/config.json")
	return cmd
}
