package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guesswho-dev/guesswho/internal/models"
	"github.com/guesswho-dev/guesswho/internal/session"
)

func TestListRooms(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rooms", r.URL.Path)
		require.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"rooms": []models.Room{{ID: "room-1", Name: "Friday Night"}},
		})
	}))
	defer server.Close()

	store := session.NewStore()
	store.SetSession("user-token", nil)
	client := New(server.URL, store)

	rooms, err := client.ListRooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Friday Night", rooms[0].Name)
}

func TestCreateRoomValidatesBeforeSending(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := New(server.URL, session.NewStore())

	_, _, err := client.CreateRoom(context.Background(), CreateRoomParams{Name: "", Type: "bogus"})
	require.Error(t, err)
	assert.False(t, called, "invalid payloads must not reach the network")
}

func TestMatchHistoryQueryString(t *testing.T) {
	var rawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		writeJSON(t, w, http.StatusOK, map[string]any{"items": []models.MatchHistoryItem{}, "nextCursor": nil})
	}))
	defer server.Close()

	store := session.NewStore()
	store.SetGuestToken("room-1", "guest-token")
	client := New(server.URL, store)

	page, err := client.MatchHistory(context.Background(), "room-1", "cursor value", 7)
	require.NoError(t, err)
	assert.Equal(t, "limit=7&cursor=cursor%20value", rawQuery)
	assert.Nil(t, page.NextCursor)
}

func TestMatchHistoryOmitsEmptyCursor(t *testing.T) {
	var rawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		next := "opaque-cursor"
		writeJSON(t, w, http.StatusOK, map[string]any{
			"items":      []models.MatchHistoryItem{{MatchID: "match-1"}},
			"nextCursor": next,
		})
	}))
	defer server.Close()

	store := session.NewStore()
	store.SetGuestToken("room-1", "guest-token")
	client := New(server.URL, store)

	page, err := client.MatchHistory(context.Background(), "room-1", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "limit=20", rawQuery)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, "opaque-cursor", *page.NextCursor)
}

func TestJoinInviteReturnsGuestToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/invites/abc123/join", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"), "anonymous join carries no credential")
		writeJSON(t, w, http.StatusOK, map[string]any{
			"member":     models.RoomMember{ID: "m1", DisplayName: "Guest"},
			"guestToken": "guest-token",
			"room":       models.Room{ID: "room-1"},
		})
	}))
	defer server.Close()

	client := New(server.URL, session.NewStore())

	result, err := client.JoinInvite(context.Background(), "abc123", "Guest", false)
	require.NoError(t, err)
	assert.Equal(t, "guest-token", result.GuestToken)
	assert.Equal(t, "room-1", result.Room.ID)
}

func TestLogoutClearsSessionEvenOnServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	store := session.NewStore()
	store.SetSession("user-token", &models.User{ID: "u1"})
	client := New(server.URL, store)

	err := client.Logout(context.Background())
	require.Error(t, err)
	assert.Empty(t, store.GetState().AccessToken)
	assert.Nil(t, store.GetState().User)
}

func TestUploadImageSendsMultipart(t *testing.T) {
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "face.png", header.Filename)
		writeJSON(t, w, http.StatusCreated, map[string]any{
			"image": models.RoomImage{ID: "img-1", Filename: "face.png"},
		})
	}))
	defer server.Close()

	store := session.NewStore()
	store.SetGuestToken("room-1", "guest-token")
	client := New(server.URL, store)

	image, err := client.UploadImage(context.Background(), "room-1", "face.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "img-1", image.ID)
	assert.True(t, strings.HasPrefix(contentType, "multipart/form-data"), "got content type %q", contentType)
}

func TestSendChatMessageRejectsEmptyMessage(t *testing.T) {
	client := New("http://127.0.0.1:1", session.NewStore())

	_, err := client.SendChatMessage(context.Background(), "room-1", "")
	require.Error(t, err)
}

func TestGoogleStartURL(t *testing.T) {
	client := New("http://localhost:3001/api", session.NewStore())

	got := client.GoogleStartURL("http://localhost:5173/auth/callback")
	want := "http://localhost:3001/api/auth/google?redirectTo=http%3A%2F%2Flocalhost%3A5173%2Fauth%2Fcallback"
	if got != want {
		t.Errorf("GoogleStartURL() = %q, want %q", got, want)
	}
}

func TestMeReturnsProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/me", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"user": models.User{ID: "u1", DisplayName: "Player One"},
		})
	}))
	defer server.Close()

	store := session.NewStore()
	store.SetSession("user-token", nil)
	client := New(server.URL, store)

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Player One", user.DisplayName)
}
