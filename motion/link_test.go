package motion

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestLinkMirrorsOtherUsers(t *testing.T) {
	_, url := newTestHub(t)
	quiet := log.New(io.Discard, "", 0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := Dial(ctx, url, nil, quiet)
	if err != nil {
		t.Fatalf("dial a: %v", err)
	}
	errA := make(chan error, 1)
	go func() { errA <- a.Run(ctx) }()
	waitFor(t, "a init", func() bool { return a.Mirror().Me() != "" })

	b, err := Dial(ctx, url, nil, quiet)
	if err != nil {
		t.Fatalf("dial b: %v", err)
	}
	go b.Run(ctx)
	waitFor(t, "b init", func() bool { return b.Mirror().Me() != "" })
	waitFor(t, "a sees b", func() bool { return a.Mirror().Len() == 2 })

	reading := MotionData{ScreenPosition: Vec2{X: 80, Y: 90}, Orientation: Euler{Beta: 30}}
	if err := b.Send(reading); err != nil {
		t.Fatalf("send: %v", err)
	}

	if got, ok := b.Mirror().Moving()[b.Mirror().Me()]; !ok || got != reading {
		t.Fatalf("b local mirror = %+v,%v", got, ok)
	}
	waitFor(t, "a sees b move", func() bool {
		got, ok := a.Mirror().Moving()[b.Mirror().Me()]
		return ok && got == reading
	})

	b.Close()
	waitFor(t, "a sees b leave", func() bool { return a.Mirror().Len() == 1 })
	if err := b.Send(reading); !errors.Is(err, ErrClosed) {
		t.Fatalf("send after close = %v, want ErrClosed", err)
	}

	cancel()
	select {
	case err := <-errA:
		if !errors.Is(err, ErrClosed) {
			t.Fatalf("run returned %v, want ErrClosed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}

func TestDialFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := Dial(ctx, "ws://127.0.0.1:1/ws", nil, log.New(io.Discard, "", 0)); err == nil {
		t.Fatal("expected dial error")
	}
}
