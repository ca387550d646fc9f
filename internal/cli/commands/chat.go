package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewChatCmd creates the chat command group.
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Room chat",
	}
	cmd.AddCommand(newChatListCmd())
	cmd.AddCommand(newChatSendCmd())
	return cmd
}

func newChatListCmd() *cobra.Command {
	var roomID, cursor string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent chat messages",
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

			page, err := app.Client.ListChatMessages(cmd.Context(), room, cursor, limit)
			if err != nil {
				return err
			}
			for _, msg := range page.Items {
				fmt.Printf("[%s] %s: %s\n", msg.CreatedAt.Format("15:04"), msg.MemberID, msg.Message)
			}
			if page.NextCursor != nil {
				fmt.Printf("Older: --cursor %q\n", *page.NextCursor)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&roomID, "room", "", "Room id")
	cmd.Flags().StringVar(&cursor, "cursor", "", "Pagination cursor from a previous page")
	cmd.Flags().IntVar(&limit, "limit", 50, "Page size")

	return cmd
}

func newChatSendCmd() *cobra.Command {
	var roomID string

	cmd := &cobra.Command{
		Use:   "send <message>...",
		Short: "Send a chat message",
		Args:  cobra.MinimumNArgs(1),
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

			msg, err := app.Client.SendChatMessage(cmd.Context(), room, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("✓ Sent (%s)\n", msg.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&roomID, "room", "", "Room id")
	return cmd
}
