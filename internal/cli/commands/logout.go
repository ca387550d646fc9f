package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}

			// The local session is cleared even when the server call fails.
			if err := app.Client.Logout(cmd.Context()); err != nil {
				app.Log.Debug().Err(err).Msg("server logout failed")
			}
			fmt.Println("✓ Signed out")
			return nil
		},
	}
}
