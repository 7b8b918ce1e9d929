package motion

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
)

// wire is one websocket connection carrying text frames
type wire interface {
	ReadMessage() ([]byte, error)
	WriteMessage(msg []byte) error
	Close() error
}

// Link is a client connection to a Hub. Incoming events are folded into a
// Mirror; readings go out through Send.
type Link struct {
	wire   wire
	mirror *Mirror
	logger *log.Logger

	closeOnce sync.Once
	done      chan struct{}
}

// Dial connects to a hub websocket endpoint such as ws://host:8080/ws
func Dial(ctx context.Context, url string, mirror *Mirror, logger *log.Logger) (*Link, error) {
	if logger == nil {
		logger = log.New(os.Stderr, "motion: ", log.LstdFlags)
	}
	if mirror == nil {
		mirror = NewMirror()
	}
	w, err := dialWire(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}
	return newLink(w, mirror, logger), nil
}

func newLink(w wire, mirror *Mirror, logger *log.Logger) *Link {
	return &Link{
		wire:   w,
		mirror: mirror,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Mirror returns the state mirror this link writes into
func (l *Link) Mirror() *Mirror {
	return l.mirror
}

// Run reads events until the connection drops or ctx is cancelled
func (l *Link) Run(ctx context.Context) error {
	go func() {
		select {
		case <-ctx.Done():
			l.Close()
		case <-l.done:
		}
	}()

	for {
		msg, err := l.wire.ReadMessage()
		if err != nil {
			select {
			case <-l.done:
				return ErrClosed
			default:
			}
			l.Close()
			return fmt.Errorf("read failed: %w", err)
		}
		env, err := Decode(msg)
		if err != nil {
			l.logger.Printf("ignoring message: %v", err)
			continue
		}
		if err := l.mirror.Apply(env); err != nil {
			l.logger.Printf("ignoring %s event: %v", env.Type, err)
		}
	}
}

// Send publishes our reading and mirrors it locally
func (l *Link) Send(data MotionData) error {
	select {
	case <-l.done:
		return ErrClosed
	default:
	}
	l.mirror.SetLocal(data)
	msg, err := Encode(TypeMotionData, data)
	if err != nil {
		return err
	}
	if err := l.wire.WriteMessage(msg); err != nil {
		return fmt.Errorf("send failed: %w", err)
	}
	return nil
}

// Close shuts the connection; it is safe to call more than once
func (l *Link) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.done)
		err = l.wire.Close()
	})
	return err
}
