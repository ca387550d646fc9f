package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// NewImagesCmd creates the images command group.
func NewImagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "Manage a room's board images",
	}
	cmd.AddCommand(newImagesListCmd())
	cmd.AddCommand(newImagesUploadCmd())
	cmd.AddCommand(newImagesRemoveCmd())
	return cmd
}

func newImagesListCmd() *cobra.Command {
	var roomID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a room's images",
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

			list, err := app.Client.ListImages(cmd.Context(), room)
			if err != nil {
				return err
			}
			fmt.Printf("%d active of %d required to start a match\n", list.ActiveCount, list.MinRequiredToStart)
			for _, image := range list.Images {
				status := "active"
				if !image.IsActive {
					status = "inactive"
				}
				fmt.Printf("%s  %-30s %dx%d  %s\n", image.ID, image.Filename, image.Width, image.Height, status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&roomID, "room", "", "Room id")
	return cmd
}

func newImagesUploadCmd() *cobra.Command {
	var roomID string

	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload board images",
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

			for _, path := range args {
				file, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", path, err)
				}
				image, err := app.Client.UploadImage(cmd.Context(), room, filepath.Base(path), file)
				file.Close()
				if err != nil {
					return fmt.Errorf("failed to upload %s: %w", path, err)
				}
				fmt.Printf("✓ Uploaded %s (%s)\n", image.Filename, image.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&roomID, "room", "", "Room id")
	return cmd
}

func newImagesRemoveCmd() *cobra.Command {
	var roomID string

	cmd := &cobra.Command{
		Use:   "remove <image-id>...",
		Short: "Remove board images",
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

			if len(args) == 1 {
				if err := app.Client.RemoveImage(cmd.Context(), room, args[0]); err != nil {
					return err
				}
				fmt.Println("✓ Image removed")
				return nil
			}

			removed, err := app.Client.BulkRemoveImages(cmd.Context(), room, args)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Removed %d image(s)\n", len(removed))
			return nil
		},
	}

	cmd.Flags().StringVar(&roomID, "room", "", "Room id")
	return cmd
}
