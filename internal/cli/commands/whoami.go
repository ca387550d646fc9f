package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command.
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}

			state := app.Store.GetState()
			if state.AccessToken == "" {
				guests := len(state.GuestTokensByRoomID)
				if guests > 0 {
					fmt.Printf("Not signed in (guest in %d room(s))\n", guests)
					return nil
				}
				fmt.Println("Not signed in")
				return nil
			}

			app.EnsureFreshSession(cmd.Context())
			user, err := app.Client.Me(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch profile: %w", err)
			}

			fmt.Printf("%s (%s)\n", user.DisplayName, user.Email)
			return nil
		},
	}
}
