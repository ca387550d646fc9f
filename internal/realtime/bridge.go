// Package realtime maintains the live server-push channel for one room (and
// optionally one match) and translates pushed events into cache
// invalidations, so views react to named events instead of polling.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"
)

// ErrNoCredential is returned by Open when the session holds neither a user
// access token nor a guest token for the room. The bridge stays idle; no
// connection is attempted.
var ErrNoCredential = errors.New("no player credential for room")

// Invalidator receives the cache keys made stale by pushed events. The view
// layer's query cache implements it.
type Invalidator interface {
	Invalidate(key string)
}

// TokenSource resolves the player credential for a room. The session store
// implements it.
type TokenSource interface {
	PlayerToken(roomID string) string
}

// Config describes one bridge instance.
type Config struct {
	// URL of the websocket endpoint, e.g. ws://localhost:3001/ws.
	URL string
	// RoomID scopes the bridge; required.
	RoomID string
	// MatchID additionally scopes the bridge to a match; optional.
	MatchID string
	// Tokens supplies the connection credential, read once at open time.
	Tokens TokenSource
	// Cache receives invalidations.
	Cache Invalidator
	// Logger is optional.
	Logger zerolog.Logger

	writeTimeout time.Duration
}

// envelope is the wire shape both directions: an event name and an optional
// payload. Inbound payloads are ignored for invalidation purposes.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Bridge is a live connection for one view's lifetime. Create with Open,
// dispose with Close; changing room or match means closing and opening a
// fresh bridge.
type Bridge struct {
	conn   *websocket.Conn
	cancel context.CancelFunc
	done   chan struct{}
	cfg    Config
	log    zerolog.Logger
}

// Open authenticates a websocket connection with the current player token,
// announces room (and match) membership, and starts dispatching pushed
// events to the cache. The credential is resolved once; a long-lived
// connection is not re-authenticated mid-life.
func Open(ctx context.Context, cfg Config) (*Bridge, error) {
	if cfg.RoomID == "" {
		return nil, errors.New("room id is required")
	}
	token := cfg.Tokens.PlayerToken(cfg.RoomID)
	if token == "" {
		return nil, ErrNoCredential
	}
	if cfg.writeTimeout == 0 {
		cfg.writeTimeout = 5 * time.Second
	}

	header := http.Header{}
	header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	conn, _, err := websocket.Dial(ctx, cfg.URL, &websocket.DialOptions{
		HTTPHeader: header,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	b := &Bridge{
		conn:   conn,
		cancel: cancel,
		done:   make(chan struct{}),
		cfg:    cfg,
		log: cfg.Logger.With().
			Str("room_id", cfg.RoomID).
			Str("match_id", cfg.MatchID).
			Logger(),
	}

	if err := b.join(loopCtx); err != nil {
		cancel()
		_ = conn.Close(websocket.StatusNormalClosure, "join failed")
		return nil, err
	}

	go b.readLoop(loopCtx)
	return b, nil
}

// join announces membership immediately after connecting.
func (b *Bridge) join(ctx context.Context) error {
	if err := b.emit(ctx, "room.join", map[string]string{"roomId": b.cfg.RoomID}); err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}
	if b.cfg.MatchID != "" {
		err := b.emit(ctx, "match.join", map[string]string{
			"roomId":  b.cfg.RoomID,
			"matchId": b.cfg.MatchID,
		})
		if err != nil {
			return fmt.Errorf("failed to join match: %w", err)
		}
	}
	return nil
}

func (b *Bridge) emit(ctx context.Context, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	msg, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, b.cfg.writeTimeout)
	defer cancel()
	return b.conn.Write(writeCtx, websocket.MessageText, msg)
}

// readLoop dispatches pushed events until the connection drops or the
// bridge closes. Events that race with teardown are dropped; invalidating an
// already-stale key is a no-op, so a late duplicate is harmless.
func (b *Bridge) readLoop(ctx context.Context) {
	defer close(b.done)

	for {
		_, data, err := b.conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				if ctx.Err() == nil {
					b.log.Debug().Err(err).Msg("realtime connection lost")
				}
			}
			return
		}

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			b.log.Debug().Msg("ignoring malformed realtime message")
			continue
		}
		if ctx.Err() != nil {
			return
		}
		for _, key := range InvalidationKeys(env.Event, b.cfg.RoomID, b.cfg.MatchID) {
			b.cfg.Cache.Invalidate(key)
		}
	}
}

// Close tears the bridge down: the read loop stops and the connection is
// closed. Safe to call more than once.
func (b *Bridge) Close() error {
	b.cancel()
	_ = b.conn.Close(websocket.StatusNormalClosure, "view closed")
	<-b.done
	return nil
}

// Done is closed once the read loop has exited, whether through Close or a
// dropped connection.
func (b *Bridge) Done() <-chan struct{} { return b.done }
