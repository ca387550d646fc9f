package commands

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

// NewLoginCmd creates the login command. Sign-in goes through the server's
// Google OAuth flow in a browser; the user pastes the callback URL back so
// the CLI can finalize the session.
func NewLoginCmd() *cobra.Command {
	var callbackURL string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with Google",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, callbackURL)
		},
	}

	cmd.Flags().StringVar(&callbackURL, "callback-url", "", "Callback URL from the browser (skips the interactive prompt)")

	return cmd
}

func runLogin(cmd *cobra.Command, callbackURL string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}

	if callbackURL == "" {
		startURL := app.Client.GoogleStartURL("urn:ietf:wg:oauth:2.0:oob")
		fmt.Println("Open this URL in your browser and sign in:")
		fmt.Printf("  %s\n\n", startURL)
		callbackURL, err = promptLine("Paste the callback URL")
		if err != nil {
			return err
		}
	}

	parsed, err := url.Parse(strings.TrimSpace(callbackURL))
	if err != nil {
		return fmt.Errorf("invalid callback URL: %w", err)
	}

	accessToken, user, err := app.Client.FinalizeGoogleCallback(cmd.Context(), parsed.Query())
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	app.Store.SetSession(accessToken, user)

	fmt.Println("✓ Signed in")
	if user != nil {
		fmt.Printf("  User: %s (%s)\n", user.DisplayName, user.Email)
	}
	return nil
}
