package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewJoinCmd creates the join command: enter a room through an invite code,
// as the signed-in user or as a guest.
func NewJoinCmd() *cobra.Command {
	var displayName string
	var asGuest bool

	cmd := &cobra.Command{
		Use:   "join <invite-code>",
		Short: "Join a room via invite code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJoin(cmd, args[0], displayName, asGuest)
		},
	}

	cmd.Flags().StringVar(&displayName, "name", "", "Display name shown to other players")
	cmd.Flags().BoolVar(&asGuest, "guest", false, "Join as a guest even when signed in")

	return cmd
}

func runJoin(cmd *cobra.Command, code, displayName string, asGuest bool) error {
	app, err := NewApp()
	if err != nil {
		return err
	}

	preview, err := app.Client.ResolveInvite(cmd.Context(), code)
	if err != nil {
		return fmt.Errorf("invite not found: %w", err)
	}
	fmt.Printf("Joining %q\n", preview.Room.Name)

	if displayName == "" {
		displayName, err = promptLine("Display name")
		if err != nil {
			return err
		}
	}

	asUser := !asGuest && app.Store.GetState().AccessToken != ""
	if asUser {
		app.EnsureFreshSession(cmd.Context())
	}

	result, err := app.Client.JoinInvite(cmd.Context(), code, displayName, asUser)
	if err != nil {
		return fmt.Errorf("failed to join: %w", err)
	}

	// Guest joins issue a room-scoped token; store it so player-authenticated
	// calls for this room work. A signed-in user keeps using the access token.
	if result.GuestToken != "" {
		app.Store.SetGuestToken(result.Room.ID, result.GuestToken)
	}

	fmt.Printf("✓ Joined %s as %s\n", result.Room.Name, result.Member.DisplayName)
	fmt.Printf("  Room id: %s\n", result.Room.ID)
	return nil
}
