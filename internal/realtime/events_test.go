package realtime

import (
	"reflect"
	"testing"
)

func TestInvalidationKeys(t *testing.T) {
	tests := []struct {
		name    string
		event   string
		matchID string
		want    []string
	}{
		{
			name:    "room event invalidates all room-scoped keys",
			event:   EventPresenceUpdated,
			matchID: "match-1",
			want:    []string{"room/room-1", "images/room-1", "history/room-1", "chat/room-1"},
		},
		{
			name:    "match started is room scoped",
			event:   EventMatchStarted,
			matchID: "match-1",
			want:    []string{"room/room-1", "images/room-1", "history/room-1", "chat/room-1"},
		},
		{
			name:    "match event invalidates match keys only",
			event:   EventActionApplied,
			matchID: "match-1",
			want:    []string{"match/room-1/match-1", "replay/room-1/match-1"},
		},
		{
			name:    "turn changed",
			event:   EventTurnChanged,
			matchID: "match-1",
			want:    []string{"match/room-1/match-1", "replay/room-1/match-1"},
		},
		{
			name:  "match event without match id is a no-op",
			event: EventMatchCompleted,
			want:  nil,
		},
		{
			name:    "unknown event maps to nothing",
			event:   "server.new_thing",
			matchID: "match-1",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InvalidationKeys(tt.event, "room-1", tt.matchID)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("InvalidationKeys(%q) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestEveryEventHasAScope(t *testing.T) {
	events := []string{
		EventPresenceUpdated, EventMatchStarted, EventChatMessageCreated,
		EventMemberMuted, EventMemberUnmuted, EventImagesBulkRemoved,
		EventHistoryUpdated, EventActionApplied, EventTurnChanged,
		EventMatchCompleted,
	}
	for _, event := range events {
		if eventScopes[event] == scopeUnknown {
			t.Errorf("event %q has no scope in the invalidation table", event)
		}
	}
}
