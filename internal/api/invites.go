package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/guesswho-dev/guesswho/internal/models"
)

// CreateInviteParams are the optional knobs on invite creation.
type CreateInviteParams struct {
	AllowGuestJoin *bool `json:"allowGuestJoin,omitempty"`
	MaxUses        *int  `json:"maxUses,omitempty" validate:"omitempty,gt=0"`
}

// InvitePreview is the public view of an invite returned by code resolution,
// shown before anyone commits to joining.
type InvitePreview struct {
	Invite models.Invite `json:"invite"`
	Room   models.Room   `json:"room"`
}

// JoinResult is the outcome of joining a room through an invite. GuestToken
// is set only for guest joins; the caller stores it in the session so
// subsequent player-authenticated calls for this room carry it.
type JoinResult struct {
	Member     models.RoomMember `json:"member"`
	GuestToken string            `json:"guestToken,omitempty"`
	Room       models.Room       `json:"room"`
}

// CreateInvite creates a shareable invite for a room.
func (c *Client) CreateInvite(ctx context.Context, roomID string, params CreateInviteParams) (*models.Invite, string, error) {
	if err := c.validate.Struct(params); err != nil {
		return nil, "", fmt.Errorf("invalid create invite payload: %w", err)
	}
	body, err := jsonBody(params)
	if err != nil {
		return nil, "", err
	}

	var resp struct {
		Invite   models.Invite `json:"invite"`
		ShareURL string        `json:"shareUrl"`
	}
	err = c.doJSON(ctx, "/rooms/"+roomID+"/invites", RequestOptions{
		Method: http.MethodPost,
		Body:   body,
		Auth:   AuthPlayer,
		RoomID: roomID,
	}, &resp)
	if err != nil {
		return nil, "", err
	}
	return &resp.Invite, resp.ShareURL, nil
}

// ResolveInvite looks up an invite by code without any credential.
func (c *Client) ResolveInvite(ctx context.Context, code string) (*InvitePreview, error) {
	var resp InvitePreview
	if err := c.doJSON(ctx, "/invites/"+code, RequestOptions{Auth: AuthNone}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// JoinInvite joins the invite's room. When asAuthenticatedUser is true the
// call carries the user credential and no guest token is issued; otherwise
// the join is anonymous and the result carries a room-scoped guest token.
func (c *Client) JoinInvite(ctx context.Context, code, displayName string, asAuthenticatedUser bool) (*JoinResult, error) {
	if displayName == "" {
		return nil, fmt.Errorf("display name is required to join a room")
	}
	body, err := jsonBody(map[string]string{"displayName": displayName})
	if err != nil {
		return nil, err
	}

	auth := AuthNone
	if asAuthenticatedUser {
		auth = AuthUser
	}
	var resp JoinResult
	err = c.doJSON(ctx, "/invites/"+code+"/join", RequestOptions{
		Method: http.MethodPost,
		Body:   body,
		Auth:   auth,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RevokeInvite revokes an invite so its code stops working.
func (c *Client) RevokeInvite(ctx context.Context, roomID, inviteID string) (*models.Invite, error) {
	var resp struct {
		Invite models.Invite `json:"invite"`
	}
	err := c.doJSON(ctx, fmt.Sprintf("/rooms/%s/invites/%s/revoke", roomID, inviteID), RequestOptions{
		Method: http.MethodPost,
		Auth:   AuthUser,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Invite, nil
}
