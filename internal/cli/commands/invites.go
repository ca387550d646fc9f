package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guesswho-dev/guesswho/internal/api"
)

// NewInvitesCmd creates the invites command group.
func NewInvitesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invites",
		Short: "Manage room invites",
	}
	cmd.AddCommand(newInvitesCreateCmd())
	cmd.AddCommand(newInvitesRevokeCmd())
	return cmd
}

func newInvitesCreateCmd() *cobra.Command {
	var roomID string
	var maxUses int
	var allowGuests bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an invite for a room",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			room, err := app.resolveRoomID(roomID)
			if err != nil {
				return err
			}
			app.EnsureFreshSession(cmd.Context())

			params := api.CreateInviteParams{AllowGuestJoin: &allowGuests}
			if maxUses > 0 {
				params.MaxUses = &maxUses
			}

			invite, shareURL, err := app.Client.CreateInvite(cmd.Context(), room, params)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Invite code: %s\n", invite.Code)
			fmt.Printf("  Share: %s\n", shareURL)
			return nil
		},
	}

	cmd.Flags().StringVar(&roomID, "room", "", "Room id")
	cmd.Flags().IntVar(&maxUses, "max-uses", 0, "Maximum number of uses (0 = unlimited)")
	cmd.Flags().BoolVar(&allowGuests, "allow-guests", true, "Allow guests to join with this invite")

	return cmd
}

func newInvitesRevokeCmd() *cobra.Command {
	var roomID string

	cmd := &cobra.Command{
		Use:   "revoke <invite-id>",
		Short: "Revoke an invite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			room, err := app.resolveRoomID(roomID)
			if err != nil {
				return err
			}
			app.EnsureFreshSession(cmd.Context())

			invite, err := app.Client.RevokeInvite(cmd.Context(), room, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("✓ Invite %s revoked\n", invite.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&roomID, "room", "", "Room id")

	return cmd
}
