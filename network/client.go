package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	cfg "github.com/automoto/orbs-mp/config"
	"github.com/automoto/orbs-mp/shared/netconfig"
	"github.com/automoto/orbs-mp/shared/protocol"
	"github.com/coder/websocket"
)

var (
	ErrNotConnected  = errors.New("not connected")
	ErrSendQueueFull = errors.New("send queue full")
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
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	}
	return "disconnected"
}

// Client is one websocket connection to the relay. Inbound frames are handed
// to onFrame from the read goroutine. Outbound frames go through a bounded
// queue drained by a writer goroutine, so Publish never waits on the network.
// All shared fields are protected by mu.
type Client struct {
	mu sync.RWMutex

	state     ClientState
	lastError error
	playerID  string
	conn      *websocket.Conn
	send      chan []byte
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	onFrame      func([]byte)
	queueSize    int
	writeTimeout time.Duration
}

// NewClient creates a client for playerID. onFrame receives every inbound
// frame verbatim and must not block; game.Game.Deliver fits.
func NewClient(playerID string, onFrame func([]byte)) *Client {
	return &Client{
		state:        StateDisconnected,
		playerID:     playerID,
		onFrame:      onFrame,
		queueSize:    cfg.Net.SendQueueSize,
		writeTimeout: cfg.Net.WriteTimeout,
	}
}

// URL builds the relay address for a player. address may be host:port or a
// full ws:// or wss:// URL.
func URL(address, playerID string) (string, error) {
	u, err := url.Parse(address)
	if err != nil || u.Host == "" {
		u, err = url.Parse("ws://" + address)
		if err != nil {
			return "", fmt.Errorf("parse relay address %q: %w", address, err)
		}
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = netconfig.WebSocketPath
	}
	q := u.Query()
	q.Set(netconfig.QueryID, playerID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Connect dials the relay and starts reading. There is no reconnection;
// after a drop the client stays disconnected.
func (c *Client) Connect(ctx context.Context, address string) error {
	c.mu.Lock()
	if c.conn != nil {
		c.mu.Unlock()
		return fmt.Errorf("already connected")
	}
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	target, err := URL(address, c.playerID)
	if err != nil {
		c.setError(err)
		return err
	}

	conn, _, err := websocket.Dial(ctx, target, nil)
	if err != nil {
		err = fmt.Errorf("connection failed: %w", err)
		c.setError(err)
		return err
	}
	conn.SetReadLimit(cfg.Relay.ReadLimit)

	connCtx, cancel := context.WithCancel(context.Background())
	send := make(chan []byte, c.queueSize)

	c.mu.Lock()
	c.conn = conn
	c.send = send
	c.cancel = cancel
	c.state = StateConnected
	c.mu.Unlock()

	log.Printf("[client] connected to %s as %q", target, c.playerID)
	c.wg.Add(2)
	go c.readLoop(connCtx, conn)
	go c.writeLoop(connCtx, conn, send)
	return nil
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	defer c.wg.Done()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			c.onDisconnect(conn, err)
			return
		}
		if c.onFrame != nil {
			c.onFrame(data)
		}
	}
}

func (c *Client) writeLoop(ctx context.Context, conn *websocket.Conn, send <-chan []byte) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-send:
			wctx, cancel := context.WithTimeout(ctx, c.writeTimeout)
			err := conn.Write(wctx, websocket.MessageText, frame)
			cancel()
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("[client] write failed: %v", err)
				}
				// the read loop sees the close and records the error
				_ = conn.CloseNow()
				return
			}
		}
	}
}

func (c *Client) onDisconnect(conn *websocket.Conn, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != conn {
		return
	}
	c.conn = nil
	c.send = nil
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if status := websocket.CloseStatus(err); status == websocket.StatusNormalClosure || errors.Is(err, context.Canceled) {
		log.Printf("[client] disconnected")
		c.state = StateDisconnected
		return
	}
	log.Printf("[client] disconnected: %v", err)
	c.state = StateError
	c.lastError = err
}

// Publish frames payload under event and queues it for the writer. It never
// blocks; a full queue drops the frame and returns ErrSendQueueFull.
func (c *Client) Publish(event string, payload any) error {
	c.mu.RLock()
	send := c.send
	c.mu.RUnlock()

	if send == nil {
		return ErrNotConnected
	}

	frame, err := protocol.Encode(event, payload)
	if err != nil {
		return err
	}

	select {
	case send <- frame:
		return nil
	default:
		return fmt.Errorf("publish %s: %w", event, ErrSendQueueFull)
	}
}

// Disconnect closes the connection and waits for the read and write loops
// to exit. Frames still queued are discarded.
func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	cancel := c.cancel
	c.state = StateDisconnected
	c.conn = nil
	c.send = nil
	c.cancel = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.Close(websocket.StatusNormalClosure, "bye")
	}
	if cancel != nil {
		cancel()
	}
	c.wg.Wait()
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

func (c *Client) PlayerID() string {
	return c.playerID
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}
