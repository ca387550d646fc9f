package realtime

import "github.com/guesswho-dev/guesswho/internal/querycache"

// Server-pushed event names. Payloads are ignored by this layer; the event
// name alone decides which cached queries go stale.
const (
	EventPresenceUpdated    = "presence.updated"
	EventMatchStarted       = "match.started"
	EventChatMessageCreated = "chat.message.created"
	EventMemberMuted        = "member.muted"
	EventMemberUnmuted      = "member.unmuted"
	EventImagesBulkRemoved  = "images.bulk_removed"
	EventHistoryUpdated     = "history.updated"
	EventActionApplied      = "action.applied"
	EventTurnChanged        = "turn.changed"
	EventMatchCompleted     = "match.completed"
)

type eventScope int

const (
	scopeUnknown eventScope = iota
	scopeRoom
	scopeMatch
)

// eventScopes is the static mapping from event name to the group of cache
// keys it can affect. Unknown events map to nothing, so new server events
// are safe to ship before the client learns about them.
var eventScopes = map[string]eventScope{
	EventPresenceUpdated:    scopeRoom,
	EventMatchStarted:       scopeRoom,
	EventChatMessageCreated: scopeRoom,
	EventMemberMuted:        scopeRoom,
	EventMemberUnmuted:      scopeRoom,
	EventImagesBulkRemoved:  scopeRoom,
	EventHistoryUpdated:     scopeRoom,
	EventActionApplied:      scopeMatch,
	EventTurnChanged:        scopeMatch,
	EventMatchCompleted:     scopeMatch,
}

var (
	roomKeyKinds  = []string{"room", "images", "history", "chat"}
	matchKeyKinds = []string{"match", "replay"}
)

// InvalidationKeys returns the cache keys a pushed event makes stale for a
// bridge scoped to (roomID, matchID). Match-scoped events are no-ops when
// the bridge was opened without a match.
func InvalidationKeys(event, roomID, matchID string) []string {
	switch eventScopes[event] {
	case scopeRoom:
		keys := make([]string, 0, len(roomKeyKinds))
		for _, kind := range roomKeyKinds {
			keys = append(keys, querycache.Key(kind, roomID))
		}
		return keys
	case scopeMatch:
		if matchID == "" {
			return nil
		}
		keys := make([]string, 0, len(matchKeyKinds))
		for _, kind := range matchKeyKinds {
			keys = append(keys, querycache.Key(kind, roomID, matchID))
		}
		return keys
	default:
		return nil
	}
}
