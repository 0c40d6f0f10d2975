package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/automoto/arena-mp/server/config"
	"github.com/automoto/arena-mp/shared/messages"
	"github.com/automoto/arena-mp/shared/protocol"
	"github.com/coder/websocket"
)

// Server accepts websocket connections and feeds them into one Relay.
type Server struct {
	cfg   config.Config
	relay *Relay
	http  *http.Server
}

// NewServer creates a server for one room.
func NewServer(cfg config.Config) *Server {
	s := &Server{
		cfg: cfg,
		relay: NewRelay(RelayOptions{
			Room:          cfg.Room,
			InboxSize:     cfg.InboxSize,
			OutboundQueue: cfg.OutboundQueue,
			StatsInterval: cfg.StatsInterval,
		}),
	}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP routes: the websocket endpoint and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.Path, s.handleWS)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Relay exposes the room's relay.
func (s *Server) Relay() *Relay {
	return s.relay
}

// Start runs the relay and serves HTTP until Stop is called.
func (s *Server) Start() error {
	go s.relay.Run()

	log.Printf("[server] listening on %s (ws endpoint: %s)", s.cfg.Addr, s.cfg.Path)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.relay.Stop()
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// Stop shuts the HTTP server down and stops the relay.
func (s *Server) Stop(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.relay.Stop()
	return err
}

type healthEntry struct {
	ID       string        `json:"id"`
	Nickname string        `json:"nickname"`
	Team     messages.Team `json:"team"`
	Score    int           `json:"score"`
	IsDead   bool          `json:"isDead"`
}

type healthStatus struct {
	Status  string        `json:"status"`
	Room    string        `json:"room"`
	Players int           `json:"players"`
	Roster  []healthEntry `json:"roster"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	st := healthStatus{Status: "ok", Room: s.cfg.Room, Roster: []healthEntry{}}
	roster, ok := s.relay.Roster()
	if !ok {
		st.Status = "stopped"
	}
	for _, p := range roster {
		st.Roster = append(st.Roster, healthEntry{
			ID: p.ID, Nickname: p.Nickname, Team: p.Team, Score: p.Score, IsDead: p.IsDead,
		})
	}
	st.Players = len(st.Roster)

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(st)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	opts := &websocket.AcceptOptions{OriginPatterns: s.cfg.AllowedOrigins}
	if len(s.cfg.AllowedOrigins) == 0 {
		// No origin list configured: accept any origin.
		opts.InsecureSkipVerify = true
	}
	conn, err := websocket.Accept(w, r, opts)
	if err != nil {
		log.Printf("[server] upgrade from %s: %v", r.RemoteAddr, err)
		return
	}
	conn.SetReadLimit(s.cfg.ReadLimit)

	peer := s.relay.Attach(&wsConn{conn: conn, writeTimeout: s.cfg.WriteTimeout})
	log.Printf("[server] peer %d connected from %s", peer.ID, r.RemoteAddr)

	err = s.readLoop(r.Context(), conn, peer)
	s.relay.Submit(Disconnect{Peer: peer, Err: err})
}

// readLoop decodes frames until the connection fails. Malformed frames are
// dropped without closing the connection.
func (s *Server) readLoop(ctx context.Context, conn *websocket.Conn, peer *Peer) error {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return nil
			}
			return err
		}
		if typ != websocket.MessageText {
			continue
		}
		msg, err := protocol.Decode(data)
		if err != nil {
			log.Printf("[server] peer %d: dropping frame: %v", peer.ID, err)
			continue
		}
		if !s.relay.Submit(Inbound{Peer: peer, Message: msg}) {
			return errors.New("relay stopped")
		}
	}
}

// wsConn adapts a websocket connection to Conn.
type wsConn struct {
	conn         *websocket.Conn
	writeTimeout time.Duration
}

func (c *wsConn) Send(b []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.writeTimeout)
	defer cancel()
	return c.conn.Write(ctx, websocket.MessageText, b)
}

func (c *wsConn) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "")
}
