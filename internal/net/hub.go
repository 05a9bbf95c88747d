package net

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"PaintBoard/internal/state"
)

const Path = "/ws"

const (
	writeTimeout = 5 * time.Second
	queueSize    = 256
)

// peer is one connected client. Only writeLoop writes to conn.
type peer struct {
	conn *websocket.Conn
	addr string
	out  chan state.Op
	once sync.Once
}

func (p *peer) close() {
	p.once.Do(func() {
		close(p.out)
	})
}

// Hub is run by the host. It relays every op it receives to all other peers
// and hands it to OnOp for the host's own canvas.
type Hub struct {
	upgrader websocket.Upgrader
	log      zerolog.Logger

	mu    sync.RWMutex
	peers map[*peer]struct{}

	// OnOp is called for every op received from a peer.
	OnOp func(state.Op)
	// Snapshot returns the ops a newly joined peer needs to catch up. It is
	// called after the peer is registered, so ops broadcast meanwhile are
	// queued behind the snapshot.
	Snapshot func() []state.Op
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log:   log,
		peers: make(map[*peer]struct{}),
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// ServeHTTP upgrades the request and serves the peer until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("upgrade failed")
		return
	}
	p := &peer{
		conn: conn,
		addr: conn.RemoteAddr().String(),
		out:  make(chan state.Op, queueSize),
	}

	h.add(p)
	defer h.remove(p)

	var snapshot []state.Op
	if h.Snapshot != nil {
		snapshot = h.Snapshot()
	}
	go h.writeLoop(p, snapshot)
	h.log.Info().Str("remote", p.addr).Int("snapshot", len(snapshot)).Msg("peer joined")

	for {
		var op state.Op
		if err := conn.ReadJSON(&op); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Warn().Err(err).Str("remote", p.addr).Msg("peer read failed")
			}
			h.log.Info().Str("remote", p.addr).Msg("peer left")
			return
		}
		h.log.Debug().Str("type", string(op.Type)).Str("remote", p.addr).Msg("op received")
		if h.OnOp != nil {
			h.OnOp(op)
		}
		h.broadcast(op, p)
	}
}

func (h *Hub) writeLoop(p *peer, snapshot []state.Op) {
	defer p.conn.Close()

	write := func(op state.Op) bool {
		_ = p.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := p.conn.WriteJSON(op); err != nil {
			h.log.Warn().Err(err).Str("remote", p.addr).Msg("send failed")
			return false
		}
		return true
	}

	for _, op := range snapshot {
		if !write(op) {
			return
		}
	}
	for op := range p.out {
		if !write(op) {
			return
		}
	}
	_ = p.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "host closing"),
		time.Now().Add(time.Second))
}

// Broadcast sends a host op to every peer.
func (h *Hub) Broadcast(op state.Op) {
	h.broadcast(op, nil)
}

func (h *Hub) broadcast(op state.Op, exclude *peer) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for p := range h.peers {
		if p == exclude {
			continue
		}
		select {
		case p.out <- op:
		default:
			h.log.Warn().Str("remote", p.addr).Msg("peer too slow, dropping")
			p.conn.Close()
		}
	}
}

// ListenAndServe serves the hub on addr until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(Path, h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	h.log.Info().Str("addr", addr).Msg("hub listening")

	select {
	case err := <-errc:
		return fmt.Errorf("hub listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	h.closeAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *Hub) add(p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.peers[p] = struct{}{}
}

func (h *Hub) remove(p *peer) {
	h.mu.Lock()
	delete(h.peers, p)
	h.mu.Unlock()
	p.close()
}

// closeAll ends every writeLoop, which sends a going-away close frame.
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for p := range h.peers {
		delete(h.peers, p)
		p.close()
	}
}
