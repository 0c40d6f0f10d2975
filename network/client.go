package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/automoto/arena-mp/shared/messages"
	"github.com/automoto/arena-mp/shared/protocol"
	"github.com/coder/websocket"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("ClientState(%d)", int(s))
}

var (
	ErrNotConnected  = errors.New("not connected")
	ErrSendQueueFull = errors.New("send queue full")
)

const (
	defaultSendQueue = 64
	// Inbound sync frames carry every player and outgrow the library's
	// 32 KiB default long before a room is full.
	defaultReadLimit int64 = 1 << 20
)

// Client manages a WebSocket connection to the relay.
// All shared fields are protected by mu (reads and writes happen on their own
// goroutines).
type Client struct {
	mu sync.RWMutex

	state     ClientState
	lastError error
	conn      *websocket.Conn
	out       chan []byte
	done      chan struct{}
	handlers  []func(messages.Message)

	queueSize    int
	readLimit    int64
	writeTimeout time.Duration
}

func NewClient(queueSize int) *Client {
	if queueSize <= 0 {
		queueSize = defaultSendQueue
	}
	return &Client{
		state:        StateDisconnected,
		queueSize:    queueSize,
		readLimit:    defaultReadLimit,
		writeTimeout: 5 * time.Second,
	}
}

// OnMessage registers fn to receive every decoded inbound message. Handlers
// run on the reader goroutine and must not block.
func (c *Client) OnMessage(fn func(messages.Message)) {
	c.mu.Lock()
	c.handlers = append(c.handlers, fn)
	c.mu.Unlock()
}

// Connect dials url and starts the reader and writer goroutines.
func (c *Client) Connect(ctx context.Context, url string) error {
	c.mu.Lock()
	if c.state == StateConnecting || c.state == StateConnected {
		c.mu.Unlock()
		return fmt.Errorf("already %s", c.state)
	}
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		err = fmt.Errorf("connection failed: %w", err)
		c.setError(err)
		return err
	}
	conn.SetReadLimit(c.readLimit)

	out := make(chan []byte, c.queueSize)
	done := make(chan struct{})

	c.mu.Lock()
	c.conn = conn
	c.out = out
	c.done = done
	c.state = StateConnected
	c.mu.Unlock()

	log.Printf("[client] connected to %s", url)

	go c.readLoop(conn)
	go c.writeLoop(conn, out, done)
	return nil
}

// Send encodes msg and queues it without blocking. Messages are dropped, never
// retried, when the socket is not open or the queue is full.
func (c *Client) Send(msg messages.Message) error {
	payload, err := protocol.Encode(msg)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != StateConnected {
		return ErrNotConnected
	}
	select {
	case c.out <- payload:
		return nil
	default:
		return ErrSendQueueFull
	}
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.stopLocked()
	c.mu.Unlock()

	if conn != nil {
		_ = conn.Close(websocket.StatusNormalClosure, "")
	}
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		typ, data, err := conn.Read(context.Background())
		if err != nil {
			c.closed(conn, err)
			return
		}
		if typ != websocket.MessageText {
			continue
		}
		msg, err := protocol.Decode(data)
		if err != nil {
			log.Printf("[client] dropping frame: %v", err)
			continue
		}

		c.mu.RLock()
		handlers := c.handlers
		c.mu.RUnlock()
		for _, h := range handlers {
			h(msg)
		}
	}
}

func (c *Client) writeLoop(conn *websocket.Conn, out chan []byte, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case b := <-out:
			ctx, cancel := context.WithTimeout(context.Background(), c.writeTimeout)
			err := conn.Write(ctx, websocket.MessageText, b)
			cancel()
			if err != nil {
				_ = conn.CloseNow()
				return
			}
		}
	}
}

// closed records the end of the connection conn. A connection replaced by a
// later Connect is ignored.
func (c *Client) closed(conn *websocket.Conn, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != conn {
		return
	}
	status := websocket.CloseStatus(err)
	if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
		log.Println("[client] disconnected")
		c.state = StateDisconnected
	} else {
		log.Printf("[client] disconnected: %v", err)
		c.state = StateError
		c.lastError = err
	}
	c.conn = nil
	c.stopLocked()
	_ = conn.CloseNow()
}

func (c *Client) stopLocked() {
	if c.done != nil {
		close(c.done)
		c.done = nil
	}
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
