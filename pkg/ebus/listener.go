package ebus

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"reflect"
)

type Listener func(ctx context.Context, event interface{}) error

func Typed[T any](fn func(ctx context.Context, typed T) error) Listener {
	return func(ctx context.Context, event interface{}) error {
		typed, ok := event.(T)
		if !ok {
			return fmt.Errorf("invalid event type %T", event)
		}
		return fn(ctx, typed)
	}
}

// LogAny dumps any event as indented JSON, useful as a catch-all subscriber.
func LogAny(ctx context.Context, event interface{}) error {
	js, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		return err
	}
	log.Println(reflect.TypeOf(event).Name(), string(js))

	return nil
}
