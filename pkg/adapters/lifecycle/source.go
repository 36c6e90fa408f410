// Package lifecycle exposes board changes as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/notepad/pkg/core"
)

// Subscriber is anything publishing note events, typically a *board.Board.
type Subscriber interface {
	Subscribe(ctx context.Context) <-chan core.Event
}

type boardSource struct {
	sub Subscriber
	out chan lifecycle.Event
}

// NewSource creates a lifecycle.Source emitting every change of sub.
// Events() is closed once the context passed to Start is done or the
// subscription ends.
func NewSource(sub Subscriber) lifecycle.Source {
	return &boardSource{
		sub: sub,
		out: make(chan lifecycle.Event),
	}
}

func (s *boardSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *boardSource) Start(ctx context.Context) error {
	events := s.sub.Subscribe(ctx)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				// core.Event satisfies lifecycle.Event through String().
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
