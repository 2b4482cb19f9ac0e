package web

import (
	"sync"
)

type state struct {
	frame Frame
	ok    bool
	mx    sync.RWMutex
}

func newState() *state {
	return &state{}
}

func (s *state) update(frame Frame) {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.frame = frame
	s.ok = true
}

func (s *state) get() (Frame, bool) {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return s.frame, s.ok
}
