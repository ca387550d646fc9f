package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guesswho-dev/guesswho/internal/api"
	"github.com/guesswho-dev/guesswho/internal/models"
)

// NewMatchesCmd creates the matches command group.
func NewMatchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Play and inspect matches",
	}
	cmd.AddCommand(newMatchesStartCmd())
	cmd.AddCommand(newMatchesShowCmd())
	cmd.AddCommand(newMatchesHistoryCmd())
	cmd.AddCommand(newMatchesReplayCmd())
	cmd.AddCommand(newMatchesActionCmd())
	cmd.AddCommand(newMatchesForfeitCmd())
	cmd.AddCommand(newMatchesRematchCmd())
	return cmd
}

func newMatchesStartCmd() *cobra.Command {
	var roomID, opponent string
	var boardSize int

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a match",
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

			detail, err := app.Client.StartMatch(cmd.Context(), room, api.StartMatchParams{
				BoardSize:        boardSize,
				OpponentMemberID: opponent,
			})
			if err != nil {
				return err
			}
			fmt.Printf("✓ Match %s started (board size %d)\n", detail.Match.ID, detail.Match.BoardSize)
			return nil
		},
	}

	cmd.Flags().StringVar(&roomID, "room", "", "Room id")
	cmd.Flags().StringVar(&opponent, "opponent", "", "Opponent member id (required)")
	cmd.Flags().IntVar(&boardSize, "board-size", 24, "Board size")
	_ = cmd.MarkFlagRequired("opponent")

	return cmd
}

func newMatchesShowCmd() *cobra.Command {
	var roomID string

	cmd := &cobra.Command{
		Use:   "show <match-id>",
		Short: "Show a match",
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

			detail, err := app.Client.GetMatch(cmd.Context(), room, args[0])
			if err != nil {
				return err
			}
			printMatch(detail)
			return nil
		},
	}

	cmd.Flags().StringVar(&roomID, "room", "", "Room id")
	return cmd
}

func printMatch(detail *api.MatchDetail) {
	match := detail.Match
	fmt.Printf("Match %s  status=%s  board=%d\n", match.ID, match.Status, match.BoardSize)
	if match.TurnMemberID != "" {
		fmt.Printf("Turn: %s\n", match.TurnMemberID)
	}
	if match.WinnerMemberID != "" {
		fmt.Printf("Winner: %s\n", match.WinnerMemberID)
	}
	if detail.ParticipantState != nil {
		fmt.Printf("Your board: %d images, %d eliminated\n",
			len(detail.ParticipantState.BoardImageOrder),
			len(detail.ParticipantState.EliminatedImageIDs))
	}
	fmt.Printf("Actions: %d\n", len(detail.Actions))
}

func newMatchesHistoryCmd() *cobra.Command {
	var roomID, cursor string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past matches",
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

			page, err := app.Client.MatchHistory(cmd.Context(), room, cursor, limit)
			if err != nil {
				return err
			}
			for _, item := range page.Items {
				winner := "-"
				if item.WinnerMemberID != "" {
					winner = item.WinnerMemberID
				}
				fmt.Printf("%s  %-12s board=%-3d winner=%s\n", item.MatchID, item.Status, item.BoardSize, winner)
			}
			if page.NextCursor != nil {
				fmt.Printf("More: --cursor %q\n", *page.NextCursor)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&roomID, "room", "", "Room id")
	cmd.Flags().StringVar(&cursor, "cursor", "", "Pagination cursor from a previous page")
	cmd.Flags().IntVar(&limit, "limit", 20, "Page size")

	return cmd
}

func newMatchesReplayCmd() *cobra.Command {
	var roomID string

	cmd := &cobra.Command{
		Use:   "replay <match-id>",
		Short: "Print a match replay",
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

			replay, err := app.Client.MatchReplay(cmd.Context(), room, args[0])
			if err != nil {
				return err
			}
			for i, frame := range replay.Frames {
				actor := frame.ActorMemberID
				if actor == "" {
					actor = "system"
				}
				fmt.Printf("%3d  %-10s %s\n", i+1, frame.ActionType, actor)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&roomID, "room", "", "Room id")
	return cmd
}

func newMatchesActionCmd() *cobra.Command {
	var roomID, payloadJSON string

	cmd := &cobra.Command{
		Use:   "action <match-id> <ask|answer|eliminate|guess>",
		Short: "Submit a match action",
		Args:  cobra.ExactArgs(2),
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

			params := api.ActionParams{ActionType: models.MatchActionType(args[1])}
			if payloadJSON != "" {
				if err := json.Unmarshal([]byte(payloadJSON), &params.Payload); err != nil {
					return fmt.Errorf("invalid --payload: %w", err)
				}
			}

			detail, err := app.Client.SubmitAction(cmd.Context(), room, args[0], params)
			if err != nil {
				return err
			}
			printMatch(detail)
			return nil
		},
	}

	cmd.Flags().StringVar(&roomID, "room", "", "Room id")
	cmd.Flags().StringVar(&payloadJSON, "payload", "", "Action payload as JSON")

	return cmd
}

func newMatchesForfeitCmd() *cobra.Command {
	var roomID string

	cmd := &cobra.Command{
		Use:   "forfeit <match-id>",
		Short: "Forfeit a match",
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

			detail, err := app.Client.Forfeit(cmd.Context(), room, args[0])
			if err != nil {
				return err
			}
			printMatch(detail)
			return nil
		},
	}

	cmd.Flags().StringVar(&roomID, "room", "", "Room id")
	return cmd
}

func newMatchesRematchCmd() *cobra.Command {
	var roomID string
	var boardSize int

	cmd := &cobra.Command{
		Use:   "rematch <match-id>",
		Short: "Start a rematch",
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

			detail, err := app.Client.Rematch(cmd.Context(), room, args[0], boardSize)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Rematch %s started\n", detail.Match.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&roomID, "room", "", "Room id")
	cmd.Flags().IntVar(&boardSize, "board-size", 0, "Board size (0 = room default)")

	return cmd
}
