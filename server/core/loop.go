package core

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/automoto/arena-mp/shared/messages"
	"github.com/automoto/arena-mp/shared/protocol"
)

var errQueueFull = errors.New("outbound queue full")

// RelayOptions configures a Relay.
type RelayOptions struct {
	Room          string
	InboxSize     int
	OutboundQueue int
	StatsInterval time.Duration // 0 disables the stats log
}

// Relay is the per-room mutation path. All Store writes and all broadcast
// decisions happen on the goroutine running Run, one command at a time.
type Relay struct {
	Inbox chan any

	room       string
	queueSize  int
	statsEvery time.Duration
	store      *Store
	peers      map[*Peer]struct{}
	sessions   map[string]*Peer

	players atomic.Int64
	conns   atomic.Int64

	quit     chan struct{}
	stopOnce sync.Once
}

func NewRelay(opts RelayOptions) *Relay {
	if opts.InboxSize <= 0 {
		opts.InboxSize = 256
	}
	if opts.OutboundQueue <= 0 {
		opts.OutboundQueue = 64
	}
	return &Relay{
		Inbox:      make(chan any, opts.InboxSize),
		room:       opts.Room,
		queueSize:  opts.OutboundQueue,
		statsEvery: opts.StatsInterval,
		store:      NewStore(),
		peers:      make(map[*Peer]struct{}),
		sessions:   make(map[string]*Peer),
		quit:       make(chan struct{}),
	}
}

// Run processes commands until Stop is called.
func (r *Relay) Run() {
	var stats <-chan time.Time
	if r.statsEvery > 0 {
		ticker := time.NewTicker(r.statsEvery)
		defer ticker.Stop()
		stats = ticker.C
	}

	log.Printf("[relay] room %q started", r.room)

	for {
		select {
		case <-r.quit:
			for p := range r.peers {
				p.close()
			}
			log.Printf("[relay] room %q stopped", r.room)
			return
		case cmd := <-r.Inbox:
			r.handleCommand(cmd)
		case <-stats:
			log.Printf("[relay] room %q: %d players, %d connections",
				r.room, r.players.Load(), r.conns.Load())
		}
	}
}

func (r *Relay) Stop() {
	r.stopOnce.Do(func() { close(r.quit) })
}

// Submit queues a command for the relay goroutine. It reports false once
// the relay has stopped.
func (r *Relay) Submit(cmd any) bool {
	select {
	case <-r.quit:
		return false
	default:
	}
	select {
	case r.Inbox <- cmd:
		return true
	case <-r.quit:
		return false
	}
}

// Attach wraps conn in a Peer, starts its writer and registers it.
func (r *Relay) Attach(conn Conn) *Peer {
	p := NewPeer(conn, r.queueSize)
	go p.WriteLoop()
	if !r.Submit(Connect{Peer: p}) {
		p.close()
	}
	return p
}

// PlayerCount returns the number of joined players. Safe from any goroutine.
func (r *Relay) PlayerCount() int {
	return int(r.players.Load())
}

// ConnectionCount returns the number of registered peers. Safe from any
// goroutine.
func (r *Relay) ConnectionCount() int {
	return int(r.conns.Load())
}

// Snapshot returns a copy of the session store taken on the relay goroutine.
func (r *Relay) Snapshot() (map[string]messages.Player, bool) {
	var out map[string]messages.Player
	ok := r.do(func(r *Relay) { out = r.store.Snapshot() })
	return out, ok
}

// Roster returns every player ordered by most recent join, taken on the relay
// goroutine.
func (r *Relay) Roster() ([]messages.Player, bool) {
	var out []messages.Player
	ok := r.do(func(r *Relay) { out = r.store.Players() })
	return out, ok
}

func (r *Relay) do(fn func(r *Relay)) bool {
	q := query{fn: fn, done: make(chan struct{})}
	if !r.Submit(q) {
		return false
	}
	select {
	case <-q.done:
		return true
	case <-r.quit:
		return false
	}
}

func (r *Relay) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Connect:
		r.peers[c.Peer] = struct{}{}
		r.conns.Store(int64(len(r.peers)))
	case Inbound:
		if _, ok := r.peers[c.Peer]; !ok {
			return
		}
		r.handleMessage(c.Peer, c.Message)
	case Disconnect:
		r.drop(c.Peer, c.Err)
	case query:
		c.fn(r)
		close(c.done)
	}
}

func (r *Relay) handleMessage(from *Peer, msg messages.Message) {
	switch m := msg.(type) {
	case messages.Join:
		r.handleJoin(from, m)
	case messages.Update:
		if !r.store.Update(m.ID, m.Position, m.Rotation) {
			return
		}
		r.broadcast(protocol.MustEncode(m), from)
	case messages.Shoot:
		r.broadcast(protocol.MustEncode(m), from)
	case messages.Hit:
		r.handleHit(m)
	default:
		// sync is server-to-client only and kill is reserved.
	}
}

func (r *Relay) handleJoin(from *Peer, m messages.Join) {
	if old := from.session; old != "" && old != m.ID && r.sessions[old] == from {
		delete(r.sessions, old)
		r.store.Remove(old)
	}
	if other, ok := r.sessions[m.ID]; ok && other != from {
		other.session = ""
	}

	p := r.store.Join(m.ID, m.Nickname)
	r.sessions[m.ID] = from
	from.session = m.ID
	r.players.Store(int64(r.store.Len()))

	log.Printf("[relay] %s (%q) joined team %s (peer %d)", p.ID, p.Nickname, p.Team, from.ID)
	r.broadcastSync()
}

func (r *Relay) handleHit(m messages.Hit) {
	res, ok := r.store.Hit(m.TargetID, m.SourceID, m.Damage)
	if !ok {
		return
	}
	r.broadcast(protocol.MustEncode(messages.Hit{
		TargetID: m.TargetID,
		SourceID: m.SourceID,
		Damage:   res.Applied,
	}), nil)

	if res.Killed {
		log.Printf("[relay] %s killed by %s", m.TargetID, m.SourceID)
		r.broadcastSync()
	}
}

// drop unregisters a peer and removes the player it owns, if any.
func (r *Relay) drop(p *Peer, reason error) {
	if _, ok := r.peers[p]; !ok {
		return
	}
	delete(r.peers, p)
	r.conns.Store(int64(len(r.peers)))
	p.close()

	id := p.session
	if id == "" || r.sessions[id] != p {
		return
	}
	delete(r.sessions, id)
	r.store.Remove(id)
	r.players.Store(int64(r.store.Len()))

	if reason != nil {
		log.Printf("[relay] %s disconnected: %v", id, reason)
	} else {
		log.Printf("[relay] %s disconnected", id)
	}
	r.broadcastSync()
}

func (r *Relay) broadcastSync() {
	r.broadcast(protocol.MustEncode(messages.Sync{Players: r.store.Snapshot()}), nil)
}

// broadcast enqueues frame for every peer except the given one. Peers whose
// queue is full are dropped after the fan-out completes.
func (r *Relay) broadcast(frame []byte, except *Peer) {
	var overflow []*Peer
	for p := range r.peers {
		if p == except {
			continue
		}
		if !p.enqueue(frame) {
			overflow = append(overflow, p)
		}
	}
	for _, p := range overflow {
		log.Printf("[relay] peer %d too slow to receive, disconnecting", p.ID)
		r.drop(p, errQueueFull)
	}
}
