package live

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/vroute/pkg/hydrate"
	"github.com/vango-dev/vroute/pkg/router"
)

// Tracker is notified when sessions open and close.
type Tracker interface {
	SessionOpened()
	SessionClosed()
}

// Config configures a Handler.
type Config struct {
	// Table is the route table every session routes with. Required.
	Table *router.Table

	// Children returns the static content rendered after the matched view.
	// It is called once per session.
	Children func() []any

	// Signer verifies the hydration token sent in the hello frame. When nil,
	// or when the client sends no token, the first render is always sent.
	Signer *hydrate.Signer

	// Observer is attached to every session router.
	Observer router.Observer

	// Tracker observes session lifetimes.
	Tracker Tracker

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// CheckOrigin validates the Origin header of upgrade requests.
	// Defaults to gorilla/websocket's same-origin check.
	CheckOrigin func(r *http.Request) bool

	HandshakeTimeout  time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	HeartbeatInterval time.Duration
	MaxMessageSize    int64
	QueueSize         int
}

// DefaultConfig returns a Config with production timeouts.
func DefaultConfig(table *router.Table) Config {
	return Config{
		Table:             table,
		HandshakeTimeout:  5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		MaxMessageSize:    64 * 1024,
		QueueSize:         64,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig(c.Table)
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = d.HandshakeTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = d.HeartbeatInterval
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	if c.QueueSize <= 0 {
		c.QueueSize = d.QueueSize
	}
	return c
}

// Handler upgrades requests to live sessions. Each connection gets its own
// router; nothing is shared between connections except the route table.
type Handler struct {
	config   Config
	upgrader websocket.Upgrader
}

// NewHandler creates a live session handler.
func NewHandler(config Config) *Handler {
	config = config.withDefaults()
	return &Handler{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     config.CheckOrigin,
		},
	}
}

// ServeHTTP handles the WebSocket upgrade and runs the session until the
// connection closes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.config.Logger

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", "error", err)
		return
	}

	conn.SetReadLimit(h.config.MaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(h.config.HandshakeTimeout))

	_, msg, err := conn.ReadMessage()
	if err != nil {
		logger.Warn("handshake read failed", "error", err)
		conn.Close()
		return
	}
	hello, err := DecodeFrame(msg)
	if err == nil && hello.Type != FrameHello {
		err = errUnexpectedFrame(hello.Type)
	}
	var start *url.URL
	if err == nil {
		start, err = parseClientURL(hello.URL)
	}
	if err != nil {
		logger.Warn("invalid handshake", "error", err)
		rejectHandshake(conn, err, h.config.WriteTimeout)
		return
	}

	session, err := newSession(conn, h.config, start)
	if err != nil {
		logger.Error("session setup failed", "error", err)
		rejectHandshake(conn, err, h.config.WriteTimeout)
		return
	}

	if h.config.Tracker != nil {
		h.config.Tracker.SessionOpened()
		defer h.config.Tracker.SessionClosed()
	}

	session.logger.Debug("session started")
	session.run(context.WithoutCancel(r.Context()), h.mustRender(session, hello.Token))
	session.logger.Debug("session closed")
}

// mustRender reports whether the page the client shows must be replaced:
// there is no token to verify, or the token disagrees with the session's
// own resolution of the URL.
func (h *Handler) mustRender(s *Session, token string) bool {
	if h.config.Signer == nil || token == "" {
		return true
	}
	if err := h.config.Signer.Verify(token, s.router.Snapshot()); err != nil {
		s.logger.Warn("hydration mismatch", "error", err)
		return true
	}
	return false
}

func rejectHandshake(conn *websocket.Conn, err error, timeout time.Duration) {
	data, _ := jsonFrame(Frame{Type: FrameError, Error: err.Error()})
	conn.SetWriteDeadline(time.Now().Add(timeout))
	conn.WriteMessage(websocket.TextMessage, data)
	conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "invalid handshake"),
		time.Now().Add(time.Second),
	)
	conn.Close()
}
