package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guesswho-dev/guesswho/internal/cli/userconfig"
)

// NewConfigCmd creates the config command group for local CLI preferences.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Local CLI configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-server <url>",
		Short: "Override the API base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := userconfig.Load()
			if err != nil {
				return err
			}
			cfg.ServerURL = args[0]
			if err := userconfig.Save(cfg); err != nil {
				return err
			}
			fmt.Printf("✓ Server set to %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-room <room-id>",
		Short: "Set the default room for room-scoped commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := userconfig.Load()
			if err != nil {
				return err
			}
			cfg.DefaultRoomID = args[0]
			if err := userconfig.Save(cfg); err != nil {
				return err
			}
			fmt.Printf("✓ Default room set to %s\n", args[0])
			return nil
		},
	})

	return cmd
}
