package ebus

import (
	"context"
	"reflect"
	"sync"
)

// EBus is a minimal in-process event bus keyed by the event's type name.
// Events without listeners are dropped silently so optional subscribers
// (recorder, web push) can be left unwired.
type EBus struct {
	listeners map[string][]Listener
	mx        sync.RWMutex
}

func New() *EBus {
	return &EBus{
		listeners: make(map[string][]Listener),
	}
}

func (e *EBus) Subscribe(event any, handler Listener) *EBus {
	e.mx.Lock()
	defer e.mx.Unlock()

	name := reflect.TypeOf(event).Name()
	e.listeners[name] = append(e.listeners[name], handler)

	return e
}

func (e *EBus) Emit(ctx context.Context, event any) error {
	e.mx.RLock()
	defer e.mx.RUnlock()

	name := reflect.TypeOf(event).Name()

	for _, handler := range e.listeners[name] {
		if err := handler(ctx, event); err != nil {
			return err
		}
	}

	return nil
}
