package net

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PaintBoard/internal/state"
)

func startHub(t *testing.T, hub *Hub) string {
	t.Helper()
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)
	return strings.TrimPrefix(srv.URL, "http://")
}

func join(t *testing.T, addr string) (*Client, <-chan state.Op) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	c, err := Dial(ctx, addr)
	require.NoError(t, err)

	ops := make(chan state.Op, 16)
	go func() { _ = c.Listen(ctx, func(op state.Op) { ops <- op }) }()
	t.Cleanup(func() {
		cancel()
		_ = c.Close()
	})
	return c, ops
}

func recv(t *testing.T, ops <-chan state.Op) state.Op {
	t.Helper()
	select {
	case op := <-ops:
		return op
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for op")
		return state.Op{}
	}
}

func TestHubSendsSnapshotToNewPeer(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	hub.Snapshot = func() []state.Op {
		return []state.Op{
			{Type: state.OpStroke, StrokeID: "s1", Site: "host"},
			{Type: state.OpStroke, StrokeID: "s2", Site: "host"},
		}
	}
	addr := startHub(t, hub)

	_, ops := join(t, addr)

	assert.Equal(t, "s1", recv(t, ops).StrokeID)
	assert.Equal(t, "s2", recv(t, ops).StrokeID)
}

func TestHubRelaysToOtherPeers(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	received := make(chan state.Op, 4)
	hub.OnOp = func(op state.Op) { received <- op }
	addr := startHub(t, hub)

	a, aOps := join(t, addr)
	_, bOps := join(t, addr)
	require.Eventually(t, func() bool { return hub.Len() == 2 }, 2*time.Second, 10*time.Millisecond)

	line := state.Shape{Kind: state.ShapeLine, Points: []state.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, Color: "red", Width: 2}
	require.NoError(t, a.Send(state.Op{Type: state.OpStroke, StrokeID: "x", Shapes: []state.Shape{line}, Site: "a", Lamport: 1}))

	got := recv(t, bOps)
	assert.Equal(t, "x", got.StrokeID)
	assert.Equal(t, []state.Shape{line}, got.Shapes)
	assert.Equal(t, "x", recv(t, received).StrokeID)

	select {
	case op := <-aOps:
		t.Fatalf("sender received its own op: %+v", op)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubBroadcastReachesEveryPeer(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	addr := startHub(t, hub)
	_, aOps := join(t, addr)
	_, bOps := join(t, addr)
	require.Eventually(t, func() bool { return hub.Len() == 2 }, 2*time.Second, 10*time.Millisecond)

	hub.Broadcast(state.Op{Type: state.OpClear, Site: "host"})

	assert.Equal(t, state.OpClear, recv(t, aOps).Type)
	assert.Equal(t, state.OpClear, recv(t, bOps).Type)
}

func TestHubForgetsClosedPeers(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	addr := startHub(t, hub)
	c, err := Dial(context.Background(), addr)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, c.Close())

	assert.Eventually(t, func() bool { return hub.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("ListenAndServe did not return")
	}
}

func TestClientSendDoesNotBlockOnStalledHost(t *testing.T) {
	stall := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var up websocket.Upgrader
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		<-stall
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(stall) })

	c, err := Dial(context.Background(), strings.TrimPrefix(srv.URL, "http://"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	line := state.Shape{Kind: state.ShapeLine, Points: []state.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, Color: "black", Width: 2}
	shapes := make([]state.Shape, 1000)
	for i := range shapes {
		shapes[i] = line
	}

	start := time.Now()
	var sendErr error
	for i := 0; i < 4*queueSize && sendErr == nil; i++ {
		sendErr = c.Send(state.Op{Type: state.OpStroke, StrokeID: "big", Shapes: shapes})
	}

	assert.ErrorIs(t, sendErr, ErrQueueFull)
	assert.Less(t, time.Since(start), time.Second)
}

func TestClientSendAfterClose(t *testing.T) {
	addr := startHub(t, NewHub(zerolog.Nop()))
	c, err := Dial(context.Background(), addr)
	require.NoError(t, err)

	require.NoError(t, c.Close())

	assert.ErrorIs(t, c.Send(state.Op{Type: state.OpClear}), ErrClosed)
}

func TestHostAddr(t *testing.T) {
	assert.Equal(t, "10.0.0.2:8888", HostAddr("paintboard://10.0.0.2:8888/", "paintboard://"))
	assert.Equal(t, "10.0.0.2:8888", HostAddr("10.0.0.2:8888", "paintboard://"))
}
