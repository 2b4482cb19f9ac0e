package web

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type keeper struct {
	mx     sync.RWMutex
	active map[*websocket.Conn]struct{}

	pingEvery time.Duration
	deadline  time.Duration
}

func newKeeper() *keeper {
	return &keeper{
		active:    make(map[*websocket.Conn]struct{}),
		pingEvery: time.Second,
		deadline:  5 * time.Second,
	}
}

func (k *keeper) addConn(conn *websocket.Conn) {
	k.mx.Lock()
	defer k.mx.Unlock()
	k.active[conn] = struct{}{}
}

// broadcast writes data to every active connection. A failed write means the
// peer is gone: that connection is dropped and the broadcast carries on, so
// a dead display client never stops the measurement loop.
func (k *keeper) broadcast(data []byte) {
	k.mx.RLock()
	var dead []*websocket.Conn
	for conn := range k.active {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			dead = append(dead, conn)
		}
	}
	k.mx.RUnlock()

	for _, conn := range dead {
		k.close(conn)
	}
}

func (k *keeper) close(conn *websocket.Conn) {
	k.mx.Lock()
	defer k.mx.Unlock()

	_ = conn.Close()
	delete(k.active, conn)
}

// keep owns the connection's read side: it answers pings, notices dead
// peers and drops the connection from the active set on the way out.
// Inbound text is ignored. The reader goroutine parks on the done channel
// so a deadline exit reaps it instead of leaking it.
func (k *keeper) keep(conn *websocket.Conn) {
	pinger := time.NewTicker(k.pingEvery)
	defer pinger.Stop()

	lastAlive := time.Now()
	read := make(chan msg)
	done := make(chan struct{})
	defer close(done)
	defer k.close(conn)

	ponger := conn.PongHandler()
	conn.SetPongHandler(func(appData string) error {
		lastAlive = time.Now()
		return ponger(appData)
	})

	go func() {
		for {
			mt, data, err := conn.ReadMessage()
			select {
			case read <- msg{mType: mt, data: data, err: err}:
			case <-done:
				return
			}
			if err != nil {
				close(read)
				return
			}
		}
	}()

	for {
		select {
		case <-pinger.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(time.Second)); err != nil {
				return
			}
			if time.Since(lastAlive) > k.deadline {
				return
			}
		case msg, ok := <-read:
			if !ok {
				return
			}

			if msg.err != nil {
				return
			}

			if msg.mType == websocket.CloseMessage {
				return
			}

			lastAlive = time.Now()
		}
	}
}
