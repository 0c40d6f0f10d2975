package core

import "github.com/automoto/arena-mp/shared/messages"

// Connect registers a freshly accepted peer. The peer is CONNECTED but owns
// no player until it sends a join.
type Connect struct {
	Peer *Peer
}

// Inbound carries one decoded message from a peer.
type Inbound struct {
	Peer    *Peer
	Message messages.Message
}

// Disconnect is issued when a peer's transport closes.
type Disconnect struct {
	Peer *Peer
	Err  error
}

// query runs fn on the relay goroutine. Used by tests and accessors that
// need a consistent view of relay-owned state.
type query struct {
	fn   func(r *Relay)
	done chan struct{}
}
