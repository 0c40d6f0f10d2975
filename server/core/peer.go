package core

import (
	"sync"
	"sync/atomic"
)

// Conn is the transport under a peer. Send is only called from the peer's
// writer goroutine.
type Conn interface {
	Send([]byte) error
	Close() error
}

var peerSeq atomic.Uint64

// Peer is one client connection as seen by the relay. Outbound frames go
// through a bounded queue drained by a dedicated writer goroutine, so a slow
// client never blocks the relay.
type Peer struct {
	ID   uint64
	conn Conn
	out  chan []byte
	done chan struct{}
	once sync.Once

	// session is the player id bound by the last join. Relay goroutine only.
	session string
}

// NewPeer wraps conn with an outbound queue of queueSize frames.
func NewPeer(conn Conn, queueSize int) *Peer {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Peer{
		ID:   peerSeq.Add(1),
		conn: conn,
		out:  make(chan []byte, queueSize),
		done: make(chan struct{}),
	}
}

// enqueue hands a frame to the writer without blocking. It reports false
// when the queue is full.
func (p *Peer) enqueue(b []byte) bool {
	select {
	case <-p.done:
		return true
	default:
	}
	select {
	case p.out <- b:
		return true
	default:
		return false
	}
}

// WriteLoop sends queued frames until the peer is closed or a write fails.
// It closes the underlying connection on exit.
func (p *Peer) WriteLoop() {
	defer p.conn.Close()
	for {
		select {
		case <-p.done:
			return
		case b := <-p.out:
			if err := p.conn.Send(b); err != nil {
				p.close()
				return
			}
		}
	}
}

// Done is closed once the peer has been shut down.
func (p *Peer) Done() <-chan struct{} {
	return p.done
}

func (p *Peer) close() {
	p.once.Do(func() { close(p.done) })
}
