package live

import (
	"context"
	"log/slog"
	"net/url"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/render"
	"github.com/vango-dev/vroute/pkg/router"
	"github.com/vango-dev/vroute/pkg/vdom"
)

// Session is one interactive connection: a router on a live Environment,
// the handlers of its last render, and the socket to the tab.
//
// Frames are processed one at a time on the event loop. Router publishes
// that happen while a frame is processed mark the session dirty; the loop
// re-renders once the frame is done.
type Session struct {
	conn   *websocket.Conn
	config Config
	logger *slog.Logger

	env      *Environment
	router   *router.Router
	handlers map[string]any
	dirty    bool

	writeMu sync.Mutex
	frames  chan Frame
	done    chan struct{}
	closed  atomic.Bool
}

func newSession(conn *websocket.Conn, config Config, start *url.URL) (*Session, error) {
	s := &Session{
		conn:   conn,
		config: config,
		logger: config.Logger.With("url", start.String()),
		frames: make(chan Frame, config.QueueSize),
		done:   make(chan struct{}),
	}
	s.env = NewEnvironment(start, s.send)

	opts := []router.Option{
		router.WithEnvironment(s.env),
		router.WithLogger(s.logger),
	}
	if config.Children != nil {
		opts = append(opts, router.WithChildren(config.Children()...))
	}
	if config.Observer != nil {
		opts = append(opts, router.WithObserver(config.Observer))
	}

	r, err := router.New(config.Table, opts...)
	if err != nil {
		return nil, err
	}
	s.router = r
	return s, nil
}

// Router returns the session's router.
func (s *Session) Router() *router.Router {
	return s.router
}

// run drives the session until the connection closes or ctx is done.
// forceRender sends the initial HTML even when the page already shows it.
func (s *Session) run(ctx context.Context, forceRender bool) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.Close()

	unmount := s.router.Mount()
	defer unmount()
	unsubscribe := s.router.Subscribe(func(router.Snapshot) { s.dirty = true })
	defer unsubscribe()

	if err := s.render(ctx, forceRender); err != nil {
		s.logger.Error("initial render failed", "error", err)
		return
	}

	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	})

	go s.readLoop()
	go s.heartbeat()

	for {
		select {
		case f := <-s.frames:
			s.handleFrame(f)
			if s.dirty {
				if err := s.render(ctx, true); err != nil {
					s.logger.Error("render failed", "error", err)
					return
				}
			}
		case <-s.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// readLoop decodes client frames and queues them for the event loop.
func (s *Session) readLoop() {
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		f, err := DecodeFrame(msg)
		if err != nil {
			s.logger.Warn("frame decode error", "error", err)
			s.send(Frame{Type: FrameError, Error: err.Error()})
			continue
		}

		select {
		case s.frames <- f:
		case <-s.done:
			return
		}
	}
}

// heartbeat pings the client so idle connections survive proxies.
func (s *Session) heartbeat() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.writeMu.Lock()
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.config.WriteTimeout))
			s.writeMu.Unlock()
			if err != nil {
				s.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *Session) handleFrame(f Frame) {
	switch f.Type {
	case FrameEvent:
		s.handleEvent(f)

	case FramePop:
		u, err := parseClientURL(f.URL)
		if err != nil {
			s.logger.Warn("invalid pop url", "error", err)
			return
		}
		s.env.Pop(u)

	case FrameHello:
		s.logger.Debug("duplicate hello ignored")
	}
}

// handleEvent runs the handler registered for the event's element.
func (s *Session) handleEvent(f Frame) {
	key := f.HID + "_on" + f.Name
	handler, ok := s.handlers[key]
	if !ok {
		s.logger.Debug("no handler for event", "hid", f.HID, "event", f.Name)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panic",
				"hid", f.HID,
				"event", f.Name,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()

	vdom.Invoke(handler, &vdom.Event{Type: f.Name, Target: f.HID})
}

// render renders the router and collects its handlers. When send is true
// the HTML is sent to the client.
func (s *Session) render(ctx context.Context, send bool) error {
	s.dirty = false

	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(ctx, vdom.Fragment(s.router))
	if err != nil {
		return err
	}
	s.handlers = r.GetHandlers()

	if send {
		s.send(Frame{Type: FrameHTML, HTML: html})
	}
	return nil
}

// send writes f to the client. Errors close the session.
func (s *Session) send(f Frame) {
	if s.closed.Load() {
		return
	}
	data, err := jsonFrame(f)
	if err != nil {
		s.logger.Error("frame encode error", "error", err)
		return
	}

	s.writeMu.Lock()
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	err = s.conn.WriteMessage(websocket.TextMessage, data)
	s.writeMu.Unlock()

	if err != nil {
		s.logger.Debug("write failed", "error", err)
		s.Close()
	}
}

// Close closes the session. It is safe to call more than once.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	close(s.done)

	s.writeMu.Lock()
	s.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	s.writeMu.Unlock()
	s.conn.Close()
}

// Done returns a channel that's closed when the session is done.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// parseClientURL parses a URL reported by the client. Only absolute http(s)
// URLs are accepted.
func parseClientURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.New(errors.CodeProtocol).Wrap(err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.New(errors.CodeProtocol).WithDetailf("url %q is not absolute", raw)
	}
	return u, nil
}
