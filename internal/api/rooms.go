package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/guesswho-dev/guesswho/internal/models"
)

// RoomSettingsParams are the optional per-room settings accepted on create
// and update.
type RoomSettingsParams struct {
	AllowedBoardSizes []int `json:"allowedBoardSizes,omitempty"`
	MaxPlayers        *int  `json:"maxPlayers,omitempty" validate:"omitempty,gte=2"`
	AllowGuestJoin    *bool `json:"allowGuestJoin,omitempty"`
	DefaultBoardSize  *int  `json:"defaultBoardSize,omitempty" validate:"omitempty,gt=0"`
	RematchBoardSizes []int `json:"rematchBoardSizes,omitempty"`
}

// CreateRoomParams is the payload for creating a room.
type CreateRoomParams struct {
	Name     string              `json:"name" validate:"required"`
	Type     models.RoomType     `json:"type" validate:"required,oneof=temporary permanent"`
	Settings *RoomSettingsParams `json:"settings,omitempty"`
}

// UpdateRoomParams is the payload for updating a room. Nil fields are left
// unchanged by the server.
type UpdateRoomParams struct {
	Name     string              `json:"name,omitempty"`
	Settings *RoomSettingsParams `json:"settings,omitempty"`
}

// RoomDetail is the full view of a room for the requesting player.
type RoomDetail struct {
	Room    models.Room         `json:"room"`
	Member  models.RoomMember   `json:"member"`
	Members []models.RoomMember `json:"members"`
}

// ListRooms returns the signed-in user's rooms.
func (c *Client) ListRooms(ctx context.Context) ([]models.Room, error) {
	var resp struct {
		Rooms []models.Room `json:"rooms"`
	}
	if err := c.doJSON(ctx, "/rooms", RequestOptions{Auth: AuthUser}, &resp); err != nil {
		return nil, err
	}
	return resp.Rooms, nil
}

// CreateRoom creates a room and returns it with the host membership.
func (c *Client) CreateRoom(ctx context.Context, params CreateRoomParams) (*models.Room, *models.RoomMember, error) {
	if err := c.validate.Struct(params); err != nil {
		return nil, nil, fmt.Errorf("invalid create room payload: %w", err)
	}
	body, err := jsonBody(params)
	if err != nil {
		return nil, nil, err
	}

	var resp struct {
		Room       models.Room       `json:"room"`
		HostMember models.RoomMember `json:"hostMember"`
	}
	err = c.doJSON(ctx, "/rooms", RequestOptions{
		Method: http.MethodPost,
		Body:   body,
		Auth:   AuthUser,
	}, &resp)
	if err != nil {
		return nil, nil, err
	}
	return &resp.Room, &resp.HostMember, nil
}

// GetRoom fetches a room's detail as the requesting player (user or guest).
func (c *Client) GetRoom(ctx context.Context, roomID string) (*RoomDetail, error) {
	var resp RoomDetail
	err := c.doJSON(ctx, "/rooms/"+roomID, RequestOptions{
		Auth:   AuthPlayer,
		RoomID: roomID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateRoom patches a room's name or settings.
func (c *Client) UpdateRoom(ctx context.Context, roomID string, params UpdateRoomParams) (*models.Room, error) {
	if params.Settings != nil {
		if err := c.validate.Struct(params.Settings); err != nil {
			return nil, fmt.Errorf("invalid update room payload: %w", err)
		}
	}
	body, err := jsonBody(params)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Room models.Room `json:"room"`
	}
	err = c.doJSON(ctx, "/rooms/"+roomID, RequestOptions{
		Method: http.MethodPatch,
		Body:   body,
		Auth:   AuthUser,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Room, nil
}

// ArchiveRoom archives a room.
func (c *Client) ArchiveRoom(ctx context.Context, roomID string) error {
	_, err := c.do(ctx, "/rooms/"+roomID, RequestOptions{
		Method: http.MethodDelete,
		Auth:   AuthUser,
	})
	return err
}

// RemoveMember kicks a member from the room and returns the remaining
// members.
func (c *Client) RemoveMember(ctx context.Context, roomID, memberID string) ([]models.RoomMember, error) {
	body, err := jsonBody(map[string]string{"memberId": memberID})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Members []models.RoomMember `json:"members"`
	}
	err = c.doJSON(ctx, "/rooms/"+roomID+"/members/remove", RequestOptions{
		Method: http.MethodPost,
		Body:   body,
		Auth:   AuthUser,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Members, nil
}

// MuteMember mutes a member's chat for durationMinutes (the server default
// is 30 when zero is sent).
func (c *Client) MuteMember(ctx context.Context, roomID, memberID string, durationMinutes int) (*models.RoomMember, error) {
	if durationMinutes <= 0 {
		durationMinutes = 30
	}
	body, err := jsonBody(map[string]int{"durationMinutes": durationMinutes})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Member models.RoomMember `json:"member"`
	}
	err = c.doJSON(ctx, fmt.Sprintf("/rooms/%s/members/%s/mute", roomID, memberID), RequestOptions{
		Method: http.MethodPost,
		Body:   body,
		Auth:   AuthUser,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Member, nil
}

// UnmuteMember lifts a member's mute.
func (c *Client) UnmuteMember(ctx context.Context, roomID, memberID string) (*models.RoomMember, error) {
	var resp struct {
		Member models.RoomMember `json:"member"`
	}
	err := c.doJSON(ctx, fmt.Sprintf("/rooms/%s/members/%s/unmute", roomID, memberID), RequestOptions{
		Method: http.MethodPost,
		Auth:   AuthUser,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Member, nil
}
