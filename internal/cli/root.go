package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guesswho-dev/guesswho/internal/cli/commands"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "guesswho",
	Short: "Guess-Who - play room-based guessing matches from your terminal",
	Long: `Guess-Who CLI - a client for the Guess-Who multiplayer game server.

Sign in, create rooms, invite friends (or join as a guest), upload board
images, play matches and watch rooms update live.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("guesswho version %s\n", version)
		},
	})

	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewRoomsCmd())
	rootCmd.AddCommand(commands.NewJoinCmd())
	rootCmd.AddCommand(commands.NewInvitesCmd())
	rootCmd.AddCommand(commands.NewImagesCmd())
	rootCmd.AddCommand(commands.NewMatchesCmd())
	rootCmd.AddCommand(commands.NewChatCmd())
	rootCmd.AddCommand(commands.NewWatchCmd())
	rootCmd.AddCommand(commands.NewConfigCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
