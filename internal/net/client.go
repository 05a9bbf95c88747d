package net

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"PaintBoard/internal/state"
)

var (
	ErrQueueFull = errors.New("send queue full")
	ErrClosed    = errors.New("client closed")
)

const closeTimeout = time.Second

// Client is a joined peer's connection to the host. Only writeLoop writes to
// conn.
type Client struct {
	conn *websocket.Conn
	out  chan state.Op
	done chan struct{}

	mu     sync.Mutex
	closed bool
}

// HostAddr extracts host:port from a share link such as
// "paintboard://10.0.0.2:8888/". Plain host:port is accepted as is.
func HostAddr(link, scheme string) string {
	addr := strings.TrimPrefix(link, scheme)
	return strings.TrimSuffix(addr, "/")
}

// Dial connects to the hub at host:port.
func Dial(ctx context.Context, addr string) (*Client, error) {
	u := url.URL{Scheme: "ws", Host: addr, Path: Path}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", u.String(), err)
	}
	c := &Client{
		conn: conn,
		out:  make(chan state.Op, queueSize),
		done: make(chan struct{}),
	}
	go c.writeLoop()
	return c, nil
}

func (c *Client) LocalAddr() string { return c.conn.LocalAddr().String() }

// Send queues one op for the host and never blocks. It is safe to call from
// any goroutine.
func (c *Client) Send(op state.Op) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.out <- op:
		return nil
	default:
		return fmt.Errorf("send %s: %w", op.Type, ErrQueueFull)
	}
}

func (c *Client) writeLoop() {
	defer close(c.done)
	for op := range c.out {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteJSON(op); err != nil {
			// Listen sees the broken connection and reports it.
			c.conn.Close()
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(closeTimeout))
}

// Listen calls fn for every op received until the connection drops or ctx is
// cancelled. A normal close by the host returns nil.
func (c *Client) Listen(ctx context.Context, fn func(state.Op)) error {
	stop := context.AfterFunc(ctx, func() { c.conn.Close() })
	defer stop()

	for {
		var op state.Op
		if err := c.conn.ReadJSON(&op); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("receive: %w", err)
		}
		fn(op)
	}
}

// Close flushes queued ops, says goodbye to the host and closes the
// connection. A stalled host gets closeTimeout before the connection is cut.
func (c *Client) Close() error {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.out)
	}
	c.mu.Unlock()

	select {
	case <-c.done:
	case <-time.After(closeTimeout):
	}
	return c.conn.Close()
}
