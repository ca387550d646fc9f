package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/guesswho-dev/guesswho/internal/models"
)

// ChatPage is one page of a room's chat log, newest first. NextCursor is nil
// when no older messages remain.
type ChatPage struct {
	Items      []models.ChatMessage `json:"items"`
	NextCursor *string              `json:"nextCursor"`
}

// sendMessageParams is validated before hitting the network so an empty or
// oversized message never costs a round trip.
type sendMessageParams struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// ListChatMessages fetches a page of chat messages. Pass an empty cursor for
// the first page; limit defaults to 50.
func (c *Client) ListChatMessages(ctx context.Context, roomID, cursor string, limit int) (*ChatPage, error) {
	if limit <= 0 {
		limit = 50
	}
	var resp ChatPage
	err := c.doJSON(ctx, fmt.Sprintf("/rooms/%s/chat/messages?%s", roomID, listQuery(limit, cursor)), RequestOptions{
		Auth:   AuthPlayer,
		RoomID: roomID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendChatMessage posts a message to the room chat.
func (c *Client) SendChatMessage(ctx context.Context, roomID, message string) (*models.ChatMessage, error) {
	params := sendMessageParams{Message: message}
	if err := c.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid chat message: %w", err)
	}
	body, err := jsonBody(params)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Message models.ChatMessage `json:"message"`
	}
	err = c.doJSON(ctx, "/rooms/"+roomID+"/chat/messages", RequestOptions{
		Method: http.MethodPost,
		Body:   body,
		Auth:   AuthPlayer,
		RoomID: roomID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Message, nil
}
