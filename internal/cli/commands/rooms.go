package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guesswho-dev/guesswho/internal/api"
	"github.com/guesswho-dev/guesswho/internal/models"
)

// NewRoomsCmd creates the rooms command group.
func NewRoomsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "Manage game rooms",
	}
	cmd.AddCommand(newRoomsListCmd())
	cmd.AddCommand(newRoomsCreateCmd())
	cmd.AddCommand(newRoomsShowCmd())
	cmd.AddCommand(newRoomsArchiveCmd())
	return cmd
}

func newRoomsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			app.EnsureFreshSession(cmd.Context())

			rooms, err := app.Client.ListRooms(cmd.Context())
			if err != nil {
				return err
			}
			if len(rooms) == 0 {
				fmt.Println("No rooms yet. Create one with 'guesswho rooms create'.")
				return nil
			}
			for _, room := range rooms {
				fmt.Printf("%s  %-24s %s\n", room.ID, room.Name, room.Type)
			}
			return nil
		},
	}
}

func newRoomsCreateCmd() *cobra.Command {
	var name, roomType string
	var maxPlayers int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a room",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			app.EnsureFreshSession(cmd.Context())

			params := api.CreateRoomParams{
				Name: name,
				Type: models.RoomType(roomType),
			}
			if maxPlayers > 0 {
				params.Settings = &api.RoomSettingsParams{MaxPlayers: &maxPlayers}
			}

			room, host, err := app.Client.CreateRoom(cmd.Context(), params)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Created room %s (%s)\n", room.Name, room.ID)
			fmt.Printf("  You are %s (%s)\n", host.DisplayName, host.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Room name (required)")
	cmd.Flags().StringVar(&roomType, "type", string(models.RoomTemporary), "Room type: temporary or permanent")
	cmd.Flags().IntVar(&maxPlayers, "max-players", 0, "Maximum players")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newRoomsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <room-id>",
		Short: "Show a room's detail and members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			app.EnsureFreshSession(cmd.Context())

			detail, err := app.Client.GetRoom(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s, %s)\n", detail.Room.Name, detail.Room.ID, detail.Room.Type)
			fmt.Printf("Members (%d):\n", len(detail.Members))
			for _, member := range detail.Members {
				marker := " "
				if member.ID == detail.Member.ID {
					marker = "*"
				}
				fmt.Printf("%s %-20s %-6s %s\n", marker, member.DisplayName, member.Role, member.Status)
			}
			return nil
		},
	}
}

func newRoomsArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <room-id>",
		Short: "Archive a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			app.EnsureFreshSession(cmd.Context())

			if err := app.Client.ArchiveRoom(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("✓ Room archived")
			return nil
		},
	}
}
