package commands

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/guesswho-dev/guesswho/internal/querycache"
	"github.com/guesswho-dev/guesswho/internal/realtime"
)

// NewWatchCmd creates the watch command: hold a realtime bridge open for a
// room (and optionally a match) and refetch data as push events invalidate
// it. This is the live view a game client keeps while a room is on screen.
func NewWatchCmd() *cobra.Command {
	var roomID, matchID string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a room live",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, roomID, matchID)
		},
	}

	cmd.Flags().StringVar(&roomID, "room", "", "Room id")
	cmd.Flags().StringVar(&matchID, "match", "", "Match id (adds match-scoped events)")

	return cmd
}

func runWatch(cmd *cobra.Command, roomFlag, matchID string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	roomID, err := app.resolveRoomID(roomFlag)
	if err != nil {
		return err
	}
	app.EnsureFreshSession(cmd.Context())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Prime the cache so invalidations have something to mark stale.
	prime := func(key string) {
		switch {
		case strings.HasPrefix(key, "room/"):
			if detail, err := app.Client.GetRoom(ctx, roomID); err == nil {
				app.Cache.Set(key, detail)
			}
		case strings.HasPrefix(key, "chat/"):
			if page, err := app.Client.ListChatMessages(ctx, roomID, "", 20); err == nil {
				app.Cache.Set(key, page)
			}
		case strings.HasPrefix(key, "match/"):
			if matchID != "" {
				if detail, err := app.Client.GetMatch(ctx, roomID, matchID); err == nil {
					app.Cache.Set(key, detail)
				}
			}
		}
	}
	prime(querycache.Key("room", roomID))
	prime(querycache.Key("chat", roomID))
	if matchID != "" {
		prime(querycache.Key("match", roomID, matchID))
	}

	unsubscribe := app.Cache.Subscribe(func(key string) {
		fmt.Printf("stale: %s\n", key)
		// React-style lazy refetch: fetch again and store fresh.
		prime(key)
	})
	defer unsubscribe()

	bridge, err := realtime.Open(ctx, realtime.Config{
		URL:     app.Config.WSBaseURL,
		RoomID:  roomID,
		MatchID: matchID,
		Tokens:  app.Store,
		Cache:   app.Cache,
		Logger:  app.Log,
	})
	if err != nil {
		if err == realtime.ErrNoCredential {
			return fmt.Errorf("no credential for room %s: sign in or join it first", roomID)
		}
		return err
	}
	defer bridge.Close()

	fmt.Printf("Watching room %s", roomID)
	if matchID != "" {
		fmt.Printf(", match %s", matchID)
	}
	fmt.Println(" (ctrl-c to stop)")

	select {
	case <-ctx.Done():
	case <-bridge.Done():
		fmt.Println("connection closed by server")
	}
	return nil
}
