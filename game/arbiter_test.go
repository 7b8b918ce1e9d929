package game

import (
	"testing"
	"time"
)

type pendingBox struct {
	d   Direction
	set int
}

func (p *pendingBox) PendingDirection() Direction { return p.d }

func (p *pendingBox) SetPendingDirection(d Direction) {
	p.d = d
	p.set++
}

func TestIntent(t *testing.T) {
	tests := []struct {
		name string
		tilt Tilt
		want Direction
		ok   bool
	}{
		{"deadzone", Tilt{ForwardBack: 5, LeftRight: -3}, Direction{}, false},
		{"just inside deadzone", Tilt{ForwardBack: 11.9, LeftRight: -11.9}, Direction{}, false},
		{"right", Tilt{ForwardBack: 4, LeftRight: 30}, Right, true},
		{"left", Tilt{ForwardBack: -4, LeftRight: -30}, Left, true},
		{"down", Tilt{ForwardBack: 25, LeftRight: 13}, Down, true},
		{"up", Tilt{ForwardBack: -25, LeftRight: 3}, Up, true},
		{"tie favours forward/back", Tilt{ForwardBack: -20, LeftRight: 20}, Up, true},
		{"at threshold", Tilt{ForwardBack: 0, LeftRight: 12}, Right, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Intent(tt.tilt, 12)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("Intent(%+v) = %v,%v want %v,%v", tt.tilt, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestObserveDeadzoneKeepsPending(t *testing.T) {
	box := &pendingBox{d: Right}
	a := NewArbiter(DefaultConfig(), box)

	if a.Observe(Tilt{ForwardBack: 5, LeftRight: -3}, time.Unix(100, 0)) {
		t.Fatal("deadzone sample changed direction")
	}
	if box.d != Right || box.set != 0 {
		t.Fatalf("pending = %v (set %d times)", box.d, box.set)
	}
}

func TestObserveDebounce(t *testing.T) {
	box := &pendingBox{d: Right}
	a := NewArbiter(DefaultConfig(), box)
	t0 := time.Unix(100, 0)

	if !a.Observe(Tilt{ForwardBack: 30}, t0) || box.d != Down {
		t.Fatalf("first change not accepted, pending = %v", box.d)
	}
	if a.Observe(Tilt{LeftRight: -30}, t0.Add(100*time.Millisecond)) {
		t.Fatal("change inside cooldown accepted")
	}
	if box.d != Down {
		t.Fatalf("pending = %v, want down", box.d)
	}
	if !a.Observe(Tilt{LeftRight: -30}, t0.Add(140*time.Millisecond)) || box.d != Left {
		t.Fatalf("change after cooldown rejected, pending = %v", box.d)
	}
}

func TestObserveSameDirectionDoesNotRestartCooldown(t *testing.T) {
	box := &pendingBox{d: Right}
	a := NewArbiter(DefaultConfig(), box)
	t0 := time.Unix(100, 0)

	a.Observe(Tilt{ForwardBack: 30}, t0)
	a.Observe(Tilt{ForwardBack: 30}, t0.Add(150*time.Millisecond))
	if !a.Observe(Tilt{LeftRight: 30}, t0.Add(200*time.Millisecond)) {
		t.Fatal("repeated intent restarted the cooldown")
	}
	if box.set != 2 {
		t.Fatalf("set called %d times, want 2", box.set)
	}
}

func TestPressBypassesCooldown(t *testing.T) {
	box := &pendingBox{d: Right}
	a := NewArbiter(DefaultConfig(), box)
	t0 := time.Unix(100, 0)

	a.Observe(Tilt{ForwardBack: 30}, t0)
	a.Press(Up)
	if box.d != Up {
		t.Fatalf("pending = %v after key press, want up", box.d)
	}
	a.Press(Direction{DX: 2})
	if box.d != Up {
		t.Fatal("invalid key direction accepted")
	}
}

func TestArbiterDrivesEngine(t *testing.T) {
	e := newTestEngine(t, 180, 180)
	e.fruit = Cell{0, 0}
	a := NewArbiter(e.Config(), e)

	a.Observe(Tilt{ForwardBack: -40, LeftRight: 2}, time.Unix(1, 0))
	e.Step()

	if e.Snapshot().Heading != Up {
		t.Fatalf("heading = %v, want up", e.Snapshot().Heading)
	}
}
