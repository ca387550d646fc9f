package models

import "time"

// RoomType distinguishes throwaway rooms from long-lived ones
type RoomType string

const (
	RoomTemporary RoomType = "temporary"
	RoomPermanent RoomType = "permanent"
)

// MatchStatus is the lifecycle state of a match
type MatchStatus string

const (
	MatchWaiting    MatchStatus = "waiting"
	MatchInProgress MatchStatus = "in_progress"
	MatchCompleted  MatchStatus = "completed"
	MatchCancelled  MatchStatus = "cancelled"
)

// MatchActionType identifies a player action within a match
type MatchActionType string

const (
	ActionAsk       MatchActionType = "ask"
	ActionAnswer    MatchActionType = "answer"
	ActionEliminate MatchActionType = "eliminate"
	ActionGuess     MatchActionType = "guess"
	ActionSystem    MatchActionType = "system"
)

// User represents a signed-in account
type User struct {
	ID          string `json:"_id"`
	GoogleID    string `json:"googleId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	Status      string `json:"status"` // "active" or "disabled"
}

// RoomSettings holds per-room gameplay configuration
type RoomSettings struct {
	AllowedBoardSizes []int `json:"allowedBoardSizes"`
	MinPlayers        int   `json:"minPlayers"`
	MaxPlayers        int   `json:"maxPlayers"`
	AllowGuestJoin    bool  `json:"allowGuestJoin"`
	DefaultBoardSize  *int  `json:"defaultBoardSize,omitempty"`
	RematchBoardSizes []int `json:"rematchBoardSizes,omitempty"`
}

// Room represents a game room
type Room struct {
	ID                 string       `json:"_id"`
	Name               string       `json:"name"`
	Type               RoomType     `json:"type"`
	HostUserID         string       `json:"hostUserId"`
	Settings           RoomSettings `json:"settings"`
	TemporaryExpiresAt *time.Time   `json:"temporaryExpiresAt,omitempty"`
	LastActivityAt     time.Time    `json:"lastActivityAt"`
	IsArchived         bool         `json:"isArchived"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

// RoomMember represents a participant in a room, either a signed-in user
// or a guest who joined via invite
type RoomMember struct {
	ID             string     `json:"_id"`
	RoomID         string     `json:"roomId"`
	UserID         string     `json:"userId,omitempty"`
	GuestSessionID string     `json:"guestSessionId,omitempty"`
	DisplayName    string     `json:"displayName"`
	Role           string     `json:"role"` // "host" or "player"
	Status         string     `json:"status"`
	MutedUntil     *time.Time `json:"mutedUntil,omitempty"`
	JoinedAt       time.Time  `json:"joinedAt"`
	LastSeenAt     time.Time  `json:"lastSeenAt"`
}

// Invite represents a shareable room invitation code
type Invite struct {
	ID             string     `json:"_id"`
	RoomID         string     `json:"roomId"`
	Code           string     `json:"code"`
	AllowGuestJoin bool       `json:"allowGuestJoin"`
	MaxUses        *int       `json:"maxUses,omitempty"`
	UsesCount      int        `json:"usesCount"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	RevokedAt      *time.Time `json:"revokedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// RoomImage is an uploaded board image belonging to a room
type RoomImage struct {
	ID               string    `json:"_id"`
	RoomID           string    `json:"roomId"`
	UploaderMemberID string    `json:"uploaderMemberId"`
	StorageFileID    string    `json:"storageFileId"`
	Filename         string    `json:"filename"`
	MimeType         string    `json:"mimeType"`
	Width            int       `json:"width"`
	Height           int       `json:"height"`
	FileSizeBytes    int64     `json:"fileSizeBytes"`
	SHA256           string    `json:"sha256"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
}

// MatchParticipant is the per-player slice of a match visible to everyone
type MatchParticipant struct {
	RoomMemberID       string    `json:"roomMemberId"`
	EliminatedImageIDs []string  `json:"eliminatedImageIds"`
	Result             string    `json:"result"`
	ReadyAt            time.Time `json:"readyAt"`
	LastActionAt       time.Time `json:"lastActionAt"`
}

// MatchParticipantView is the requesting player's private board state
type MatchParticipantView struct {
	RoomMemberID        string   `json:"roomMemberId"`
	BoardImageOrder     []string `json:"boardImageOrder"`
	SecretTargetImageID string   `json:"secretTargetImageId"`
	EliminatedImageIDs  []string `json:"eliminatedImageIds"`
	Result              string   `json:"result"`
}

// Match represents one game between two room members
type Match struct {
	ID                    string             `json:"_id"`
	RoomID                string             `json:"roomId"`
	Status                MatchStatus        `json:"status"`
	BoardSize             int                `json:"boardSize"`
	SelectedImageIDs      []string           `json:"selectedImageIds"`
	StartedByMemberID     string             `json:"startedByMemberId"`
	TurnMemberID          string             `json:"turnMemberId,omitempty"`
	WinnerMemberID        string             `json:"winnerMemberId,omitempty"`
	RandomizationSeedHash string             `json:"randomizationSeedHash"`
	StartedAt             time.Time          `json:"startedAt"`
	EndedAt               *time.Time         `json:"endedAt,omitempty"`
	CreatedAt             time.Time          `json:"createdAt"`
	UpdatedAt             time.Time          `json:"updatedAt"`
	Participants          []MatchParticipant `json:"participants"`
}

// MatchAction is a single recorded action in a match
type MatchAction struct {
	ID            string          `json:"_id"`
	MatchID       string          `json:"matchId"`
	ActorMemberID string          `json:"actorMemberId,omitempty"`
	ActionType    MatchActionType `json:"actionType"`
	Payload       map[string]any  `json:"payload"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// MatchHistoryItem is a summary row in a room's match history listing
type MatchHistoryItem struct {
	MatchID        string      `json:"matchId"`
	RoomID         string      `json:"roomId"`
	Status         MatchStatus `json:"status"`
	BoardSize      int         `json:"boardSize"`
	WinnerMemberID string      `json:"winnerMemberId,omitempty"`
	StartedAt      time.Time   `json:"startedAt"`
	EndedAt        *time.Time  `json:"endedAt,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// MatchReplayFrame is one step of a completed match's replay
type MatchReplayFrame struct {
	ActionID      string          `json:"actionId"`
	ActionType    MatchActionType `json:"actionType"`
	ActorMemberID string          `json:"actorMemberId,omitempty"`
	Payload       map[string]any  `json:"payload"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ChatMessage is a single room chat message
type ChatMessage struct {
	ID        string    `json:"_id"`
	RoomID    string    `json:"roomId"`
	MemberID  string    `json:"memberId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
