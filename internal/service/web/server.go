// Package web exposes the live display to UI collaborators: every window
// update is pushed to websocket subscribers and kept available for polling
// as JSON.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mdekauwe/lunchbox-photosynthesis/internal/event"
)

type Server struct {
	web    *http.Server
	keeper *keeper
	state  *state
}

func New(addr string) *Server {
	serv := &Server{
		web: &http.Server{
			Addr: addr,
		},
		keeper: newKeeper(),
		state:  newState(),
	}
	serv.web.Handler = serv.router()
	return serv
}

func (s *Server) Run(ctx context.Context) error {
	closed := make(chan error, 1)

	go func() {
		closed <- s.web.ListenAndServe()
	}()

	select {
	case err := <-closed:
		return err
	case <-ctx.Done():
		_ = s.web.Shutdown(ctx)
		return ctx.Err()
	}
}

// UpdateWindow commits the latest frame for polling and pushes it to all
// connected websocket clients. Push failures are the peer's problem, never
// the session's: dead connections are dropped, not surfaced.
func (s *Server) UpdateWindow(ctx context.Context, ev event.WindowUpdated) error {
	frame := frameFrom(ev)
	s.state.update(frame)

	js, err := json.Marshal(NewMessage(frame))
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}

	s.keeper.broadcast(js)

	return nil
}
