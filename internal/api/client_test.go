package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guesswho-dev/guesswho/internal/models"
	"github.com/guesswho-dev/guesswho/internal/session"
)

// recordingReporter captures failure reports for assertions.
type recordingReporter struct {
	mu      sync.Mutex
	reports []string
	codes   []string
}

func (r *recordingReporter) RequestFailed(path string, status int, code, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, path)
	r.codes = append(r.codes, code)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("failed to encode response: %v", err)
	}
}

func TestRefreshSuccessRetriesOnce(t *testing.T) {
	var dataCalls, refreshCalls int
	var bearers []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			refreshCalls++
			require.Equal(t, http.MethodPost, r.Method)
			require.Empty(t, r.Header.Get("Authorization"))
			writeJSON(t, w, http.StatusOK, map[string]any{
				"accessToken": "fresh",
				"user":        models.User{ID: "u1", Email: "p1@example.com"},
			})
		case "/data":
			dataCalls++
			bearers = append(bearers, r.Header.Get("Authorization"))
			if r.Header.Get("Authorization") != "Bearer fresh" {
				writeJSON(t, w, http.StatusUnauthorized, map[string]any{})
				return
			}
			writeJSON(t, w, http.StatusOK, map[string]bool{"ok": true})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	store := session.NewStore()
	store.SetSession("expired", nil)
	client := New(server.URL, store)

	body, err := client.do(context.Background(), "/data", RequestOptions{Auth: AuthUser})
	require.NoError(t, err)

	var result struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, json.Unmarshal(body, &result))
	assert.True(t, result.OK)

	assert.Equal(t, 2, dataCalls, "expected exactly two sends of the original call")
	assert.Equal(t, 1, refreshCalls, "expected exactly one refresh")
	assert.Equal(t, []string{"Bearer expired", "Bearer fresh"}, bearers)
	assert.Equal(t, "fresh", store.GetState().AccessToken)
	require.NotNil(t, store.GetState().User)
	assert.Equal(t, "u1", store.GetState().User.ID)
}

func TestRefreshFailureClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Both the original call and the refresh are rejected.
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	store := session.NewStore()
	store.SetSession("expired", &models.User{ID: "u1"})
	store.SetGuestToken("room-1", "guest-token")
	client := New(server.URL, store)

	_, err := client.do(context.Background(), "/data", RequestOptions{Auth: AuthUser})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, DefaultErrorCode, apiErr.Code)

	state := store.GetState()
	assert.Empty(t, state.AccessToken, "user session should be cleared")
	assert.Nil(t, state.User)
	assert.Equal(t, "guest-token", state.GuestTokensByRoomID["room-1"], "guest tokens survive")
}

func TestSecondUnauthorizedAfterRefreshIsTerminal(t *testing.T) {
	var dataCalls, refreshCalls int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			refreshCalls++
			writeJSON(t, w, http.StatusOK, map[string]any{"accessToken": "fresh"})
		default:
			dataCalls++
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer server.Close()

	store := session.NewStore()
	store.SetSession("expired", nil)
	client := New(server.URL, store)

	_, err := client.do(context.Background(), "/data", RequestOptions{Auth: AuthUser})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, 2, dataCalls, "retry must happen at most once")
	assert.Equal(t, 1, refreshCalls)
}

func TestPlayerAuthNeverRefreshes(t *testing.T) {
	var refreshCalls int
	var bearer string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			refreshCalls++
			writeJSON(t, w, http.StatusOK, map[string]any{"accessToken": "fresh"})
			return
		}
		bearer = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	store := session.NewStore()
	store.SetGuestToken("room-1", "guest-token")
	client := New(server.URL, store)

	_, err := client.do(context.Background(), "/rooms/room-1", RequestOptions{
		Auth:   AuthPlayer,
		RoomID: "room-1",
	})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Bearer guest-token", bearer)
	assert.Zero(t, refreshCalls, "guest credentials have no refresh concept")
	assert.Equal(t, "guest-token", store.PlayerToken("room-1"), "guest token untouched")
}

func TestPlayerAuthPrefersAccessToken(t *testing.T) {
	var bearer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bearer = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	store := session.NewStore()
	store.SetGuestToken("room-1", "guest-token")
	store.SetSession("user-token", nil)
	client := New(server.URL, store)

	_, err := client.do(context.Background(), "/rooms/room-1", RequestOptions{
		Auth:   AuthPlayer,
		RoomID: "room-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer user-token", bearer)
}

func TestNoneAuthSendsNoCredential(t *testing.T) {
	var bearer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bearer = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	store := session.NewStore()
	store.SetSession("user-token", nil)
	client := New(server.URL, store)

	_, err := client.do(context.Background(), "/invites/abc", RequestOptions{Auth: AuthNone})
	require.NoError(t, err)
	assert.Empty(t, bearer)
}

func TestJSONContentTypeDefaulting(t *testing.T) {
	tests := []struct {
		name            string
		body            []byte
		header          http.Header
		wantContentType string
	}{
		{
			name:            "json default for non-empty body",
			body:            []byte(`{"name":"Room"}`),
			wantContentType: "application/json",
		},
		{
			name:            "no content type without body",
			wantContentType: "",
		},
		{
			name:            "caller content type preserved",
			body:            []byte("binary-bytes"),
			header:          http.Header{"Content-Type": []string{"multipart/form-data; boundary=xyz"}},
			wantContentType: "multipart/form-data; boundary=xyz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("Content-Type")
				w.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			client := New(server.URL, session.NewStore())
			_, err := client.do(context.Background(), "/x", RequestOptions{
				Method: http.MethodPost,
				Body:   tt.body,
				Header: tt.header,
				Auth:   AuthNone,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantContentType, got)
		})
	}
}

func TestNoContentResolvesToNoValue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := New(server.URL, session.NewStore())
	body, err := client.do(context.Background(), "/x", RequestOptions{Auth: AuthNone})
	require.NoError(t, err)
	assert.Nil(t, body)
}

func TestErrorPayloadParsing(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    string
		wantMessage string
		wantDetails map[string]any
	}{
		{
			name:        "structured error payload",
			status:      http.StatusConflict,
			body:        `{"error":{"code":"ROOM_FULL","message":"Room is full","details":{"maxPlayers":2}}}`,
			wantCode:    "ROOM_FULL",
			wantMessage: "Room is full",
			wantDetails: map[string]any{"maxPlayers": float64(2)},
		},
		{
			name:        "missing body falls back to defaults",
			status:      http.StatusBadGateway,
			wantCode:    DefaultErrorCode,
			wantMessage: "Request failed with status 502",
		},
		{
			name:        "malformed body falls back to defaults",
			status:      http.StatusInternalServerError,
			body:        "<html>boom</html>",
			wantCode:    DefaultErrorCode,
			wantMessage: "Request failed with status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			}))
			defer server.Close()

			reporter := &recordingReporter{}
			client := New(server.URL, session.NewStore(), WithReporter(reporter))

			_, err := client.do(context.Background(), "/x", RequestOptions{Auth: AuthNone})

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantDetails, apiErr.Details)

			require.Len(t, reporter.reports, 1, "every failure is reported")
			assert.Equal(t, "/x", reporter.reports[0])
			assert.Equal(t, tt.wantCode, reporter.codes[0])
		})
	}
}

func TestTransportErrorIsNotAnAPIError(t *testing.T) {
	client := New("http://127.0.0.1:1", session.NewStore())

	_, err := client.do(context.Background(), "/x", RequestOptions{Auth: AuthNone})
	require.Error(t, err)

	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
}

func TestListQuery(t *testing.T) {
	tests := []struct {
		name   string
		limit  int
		cursor string
		want   string
	}{
		{name: "no cursor", limit: 20, want: "limit=20"},
		{name: "cursor with space", limit: 7, cursor: "cursor value", want: "limit=7&cursor=cursor%20value"},
		{name: "cursor with reserved chars", limit: 5, cursor: "a/b&c=d", want: "limit=5&cursor=a%2Fb%26c%3Dd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := listQuery(tt.limit, tt.cursor); got != tt.want {
				t.Errorf("listQuery(%d, %q) = %q, want %q", tt.limit, tt.cursor, got, tt.want)
			}
		})
	}
}
