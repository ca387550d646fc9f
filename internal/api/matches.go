package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/guesswho-dev/guesswho/internal/models"
)

// MatchDetail is the server's full match view for the requesting player.
// ParticipantState is nil for spectators.
type MatchDetail struct {
	Match            models.Match                 `json:"match"`
	ParticipantState *models.MatchParticipantView `json:"participantState"`
	Actions          []models.MatchAction         `json:"actions"`
}

// MatchHistoryPage is one page of a room's match history. NextCursor is nil
// when the listing is exhausted.
type MatchHistoryPage struct {
	Items      []models.MatchHistoryItem `json:"items"`
	NextCursor *string                   `json:"nextCursor"`
}

// MatchReplay is the ordered action log of a completed match.
type MatchReplay struct {
	MatchID string                    `json:"matchId"`
	Frames  []models.MatchReplayFrame `json:"frames"`
}

// StartMatchParams is the payload for starting a match.
type StartMatchParams struct {
	BoardSize        int    `json:"boardSize" validate:"required,gt=0"`
	OpponentMemberID string `json:"opponentMemberId" validate:"required"`
}

// ActionParams is the payload for a player action within a match.
type ActionParams struct {
	ActionType models.MatchActionType `json:"actionType" validate:"required,oneof=ask answer eliminate guess"`
	Payload    map[string]any         `json:"payload,omitempty"`
}

// StartMatch starts a new match in the room.
func (c *Client) StartMatch(ctx context.Context, roomID string, params StartMatchParams) (*MatchDetail, error) {
	if err := c.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid start match payload: %w", err)
	}
	body, err := jsonBody(params)
	if err != nil {
		return nil, err
	}
	return c.matchCall(ctx, roomID, "/rooms/"+roomID+"/matches", http.MethodPost, body)
}

// GetMatch fetches a match's detail.
func (c *Client) GetMatch(ctx context.Context, roomID, matchID string) (*MatchDetail, error) {
	return c.matchCall(ctx, roomID, fmt.Sprintf("/rooms/%s/matches/%s", roomID, matchID), http.MethodGet, nil)
}

// MatchHistory lists a room's past matches with cursor pagination. Pass an
// empty cursor for the first page; limit defaults to 20.
func (c *Client) MatchHistory(ctx context.Context, roomID, cursor string, limit int) (*MatchHistoryPage, error) {
	if limit <= 0 {
		limit = 20
	}
	var resp MatchHistoryPage
	err := c.doJSON(ctx, fmt.Sprintf("/rooms/%s/matches/history?%s", roomID, listQuery(limit, cursor)), RequestOptions{
		Auth:   AuthPlayer,
		RoomID: roomID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// MatchReplay fetches the replay frames of a match.
func (c *Client) MatchReplay(ctx context.Context, roomID, matchID string) (*MatchReplay, error) {
	var resp MatchReplay
	err := c.doJSON(ctx, fmt.Sprintf("/rooms/%s/matches/%s/replay", roomID, matchID), RequestOptions{
		Auth:   AuthPlayer,
		RoomID: roomID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitAction applies a player action (ask/answer/eliminate/guess).
func (c *Client) SubmitAction(ctx context.Context, roomID, matchID string, params ActionParams) (*MatchDetail, error) {
	if err := c.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid action payload: %w", err)
	}
	body, err := jsonBody(params)
	if err != nil {
		return nil, err
	}
	return c.matchCall(ctx, roomID, fmt.Sprintf("/rooms/%s/matches/%s/actions", roomID, matchID), http.MethodPost, body)
}

// Forfeit concedes the match.
func (c *Client) Forfeit(ctx context.Context, roomID, matchID string) (*MatchDetail, error) {
	return c.matchCall(ctx, roomID, fmt.Sprintf("/rooms/%s/matches/%s/forfeit", roomID, matchID), http.MethodPost, nil)
}

// Rematch starts a new match against the same opponent. A zero boardSize
// lets the server pick the room default.
func (c *Client) Rematch(ctx context.Context, roomID, matchID string, boardSize int) (*MatchDetail, error) {
	payload := map[string]any{}
	if boardSize > 0 {
		payload["boardSize"] = boardSize
	}
	body, err := jsonBody(payload)
	if err != nil {
		return nil, err
	}
	return c.matchCall(ctx, roomID, fmt.Sprintf("/rooms/%s/matches/%s/rematch", roomID, matchID), http.MethodPost, body)
}

func (c *Client) matchCall(ctx context.Context, roomID, path, method string, body []byte) (*MatchDetail, error) {
	var resp MatchDetail
	err := c.doJSON(ctx, path, RequestOptions{
		Method: method,
		Body:   body,
		Auth:   AuthPlayer,
		RoomID: roomID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
