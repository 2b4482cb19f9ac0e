package web

import (
	"context"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/mdekauwe/lunchbox-photosynthesis/internal/entity"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/event"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/plotwin"
)

func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func testWindowEvent() event.WindowUpdated {
	return event.WindowUpdated{
		Session: uuid.New(),
		Window:  plotwin.Window{XMin: 0, XMax: 10, YMin: -5, YMax: 8},
		Samples: []entity.FluxSample{
			{ElapsedMin: 0.1, CO2: 415, Flux: -2, Lower: -2.5, Upper: -1.5, Defined: true},
		},
		CO2:  415,
		Anet: -2,
	}
}

func (k *keeper) connCount() int {
	k.mx.RLock()
	defer k.mx.RUnlock()
	return len(k.active)
}

func TestServer_PushReachesClient(t *testing.T) {
	s := New("127.0.0.1:0")
	ts := httptest.NewServer(s.router())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	assert.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool {
		return s.keeper.connCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.NoError(t, s.UpdateWindow(context.Background(), testWindowEvent()))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	assert.NoError(t, err)
	assert.Contains(t, string(data), "Frame")
	assert.Contains(t, string(data), "415")
}

func TestServer_DeadClientDoesNotFailUpdates(t *testing.T) {
	s := New("127.0.0.1:0")
	ts := httptest.NewServer(s.router())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		return s.keeper.connCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	// drop the TCP side without a websocket close handshake
	assert.NoError(t, conn.UnderlyingConn().Close())

	// pushes keep succeeding and the dead connection gets reaped
	ev := testWindowEvent()
	assert.Eventually(t, func() bool {
		assert.NoError(t, s.UpdateWindow(context.Background(), ev))
		return s.keeper.connCount() == 0
	}, 2*time.Second, 20*time.Millisecond)

	// and with no clients at all the frame still lands in state
	assert.NoError(t, s.UpdateWindow(context.Background(), ev))
	frame, ok := s.state.get()
	assert.True(t, ok)
	assert.InDelta(t, 415.0, frame.CO2, 1e-9)
}

func TestKeeper_DeadlineReapsReaderGoroutine(t *testing.T) {
	s := New("127.0.0.1:0")
	s.keeper.pingEvery = 10 * time.Millisecond
	s.keeper.deadline = 50 * time.Millisecond
	ts := httptest.NewServer(s.router())
	defer ts.Close()

	before := runtime.NumGoroutine()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	assert.NoError(t, err)
	defer conn.Close()

	// the client never reads, so pings are never answered and the deadline
	// must fire
	assert.Eventually(t, func() bool {
		return s.keeper.connCount() == 0
	}, 2*time.Second, 20*time.Millisecond)

	// the connection's reader goroutine exits with it
	assert.Eventually(t, func() bool {
		runtime.Gosched()
		return runtime.NumGoroutine() <= before+2
	}, 2*time.Second, 20*time.Millisecond)
}
