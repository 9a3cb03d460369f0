// Package core is the relay: a session table of websocket connections and a
// fan-out of position and removal frames to every session but the sender.
package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	cfg "github.com/automoto/orbs-mp/config"
	"github.com/automoto/orbs-mp/shared/netconfig"
	"github.com/automoto/orbs-mp/shared/protocol"
	"github.com/coder/websocket"
)

// Options tunes a relay. Zero values fall back to config.Relay.
type Options struct {
	// AnnounceDisconnect broadcasts orb-removed with a departed session's
	// identity. Off restores the legacy behavior where its orbs freeze.
	AnnounceDisconnect bool
	// StaticDir, if set, is served at / for plain HTTP requests.
	StaticDir string

	SendQueueSize int
	ReadLimit     int64
	PingInterval  time.Duration
	WriteTimeout  time.Duration

	Logger *log.Logger
}

// DefaultOptions returns options populated from config.Relay.
func DefaultOptions() Options {
	return Options{
		AnnounceDisconnect: cfg.Relay.AnnounceDisconnect,
		SendQueueSize:      cfg.Relay.SendQueueSize,
		ReadLimit:          cfg.Relay.ReadLimit,
		PingInterval:       cfg.Relay.PingInterval,
		WriteTimeout:       cfg.Relay.WriteTimeout,
	}
}

// Server relays frames between connected clients. It holds no game state:
// the session table is the only thing shared between connections.
type Server struct {
	opts Options
	log  *log.Logger

	mu       sync.RWMutex
	sessions map[*session]string

	httpServer *http.Server
}

type frame struct {
	typ  websocket.MessageType
	data []byte
}

type session struct {
	id   string
	conn *websocket.Conn
	send chan frame
}

func NewServer(opts Options) *Server {
	def := DefaultOptions()
	if opts.SendQueueSize <= 0 {
		opts.SendQueueSize = def.SendQueueSize
	}
	if opts.ReadLimit <= 0 {
		opts.ReadLimit = def.ReadLimit
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = def.PingInterval
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = def.WriteTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		opts:     opts,
		log:      logger,
		sessions: make(map[*session]string),
	}
}

// Handler routes websocket upgrades on /ws and /, /health and, when
// configured, static files.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(netconfig.WebSocketPath, s.ServeWS)
	mux.HandleFunc("GET /health", s.serveHealth)

	var static http.Handler = http.NotFoundHandler()
	if s.opts.StaticDir != "" {
		static = http.FileServer(http.Dir(s.opts.StaticDir))
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if isUpgrade(r) {
			s.ServeWS(w, r)
			return
		}
		static.ServeHTTP(w, r)
	})
	return mux
}

func isUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

// Start listens on port and blocks until the server stops.
func (s *Server) Start(port uint) error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Printf("[relay] listening on :%d (announce disconnect: %v)", port, s.opts.AnnounceDisconnect)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop closes every session and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.RLock()
	for sess := range s.sessions {
		_ = sess.conn.Close(websocket.StatusGoingAway, "relay shutting down")
	}
	s.mu.RUnlock()

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// PlayerCount is the number of live sessions.
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// ServeWS upgrades the request and serves one session until it drops. A
// missing id query parameter is accepted as an empty identity.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.log.Printf("[relay] accept failed: %v", err)
		return
	}
	conn.SetReadLimit(s.opts.ReadLimit)

	sess := &session{
		id:   r.URL.Query().Get(netconfig.QueryID),
		conn: conn,
		send: make(chan frame, s.opts.SendQueueSize),
	}
	s.add(sess)

	ctx, cancel := context.WithCancel(context.Background())
	go s.writeLoop(ctx, sess)
	go s.pingLoop(ctx, sess)

	err = s.readLoop(ctx, sess)
	cancel()
	s.remove(sess, err)
	_ = conn.CloseNow()
}

func (s *Server) add(sess *session) {
	s.mu.Lock()
	s.sessions[sess] = sess.id
	n := len(s.sessions)
	s.mu.Unlock()

	s.log.Printf("[relay] %q connected (%d connected)", sess.id, n)
}

func (s *Server) remove(sess *session, reason error) {
	s.mu.Lock()
	delete(s.sessions, sess)
	shared := false
	for _, id := range s.sessions {
		if id == sess.id {
			shared = true
			break
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	s.log.Printf("[relay] %q disconnected: %s (%d connected)", sess.id, describeClose(reason), n)

	if !s.opts.AnnounceDisconnect || sess.id == "" || shared {
		return
	}
	notice, err := protocol.EncodeOrbRemoved(sess.id)
	if err != nil {
		s.log.Printf("[relay] encode disconnect notice: %v", err)
		return
	}
	s.broadcast(nil, frame{typ: websocket.MessageText, data: notice})
}

func describeClose(err error) string {
	if err == nil {
		return "closed"
	}
	if status := websocket.CloseStatus(err); status != -1 {
		return fmt.Sprintf("close status %d", status)
	}
	return err.Error()
}

func (s *Server) readLoop(ctx context.Context, sess *session) error {
	for {
		typ, data, err := sess.conn.Read(ctx)
		if err != nil {
			return err
		}
		env, err := protocol.DecodeEnvelope(data)
		if err != nil {
			s.log.Printf("[relay] dropping frame from %q: %v", sess.id, err)
			continue
		}
		switch env.Kind() {
		case netconfig.KindPosition, netconfig.KindOrbRemoved:
			s.broadcast(sess, frame{typ: typ, data: data})
		default:
			// unknown events are ignored
		}
	}
}

// broadcast queues f for every session except from. A full queue drops the
// frame for that peer only.
func (s *Server) broadcast(from *session, f frame) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for sess := range s.sessions {
		if sess == from {
			continue
		}
		select {
		case sess.send <- f:
		default:
			s.log.Printf("[relay] send queue full for %q, dropping frame", sess.id)
		}
	}
}

func (s *Server) writeLoop(ctx context.Context, sess *session) {
	for {
		select {
		case <-ctx.Done():
			return
		case f := <-sess.send:
			wctx, cancel := context.WithTimeout(ctx, s.opts.WriteTimeout)
			err := sess.conn.Write(wctx, f.typ, f.data)
			cancel()
			if err != nil {
				if ctx.Err() == nil {
					s.log.Printf("[relay] write to %q failed: %v", sess.id, err)
				}
				_ = sess.conn.CloseNow()
				return
			}
		}
	}
}

func (s *Server) pingLoop(ctx context.Context, sess *session) {
	ticker := time.NewTicker(s.opts.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, s.opts.WriteTimeout)
			err := sess.conn.Ping(pctx)
			cancel()
			if err != nil {
				if ctx.Err() == nil {
					s.log.Printf("[relay] ping to %q failed: %v", sess.id, err)
				}
				_ = sess.conn.CloseNow()
				return
			}
		}
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Players int    `json:"players"`
}

func (s *Server) serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{Status: "ok", Players: s.PlayerCount()})
}
