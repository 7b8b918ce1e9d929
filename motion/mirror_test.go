package motion

import (
	"testing"
	"time"
)

func mustEncode(t *testing.T, eventType string, data any) Envelope {
	t.Helper()
	msg, err := Encode(eventType, data)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	env, err := Decode(msg)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env
}

func TestMirrorApply(t *testing.T) {
	m := NewMirror()
	reading := MotionData{Orientation: Euler{Beta: -20}}

	steps := []struct {
		env    Envelope
		users  int
		moving int
	}{
		{mustEncode(t, TypeInit, InitPayload{ID: "me", State: State{Users: map[string]*User{"me": {}, "old": {DeviceMoves: true, MotionData: &reading}}}}), 2, 1},
		{mustEncode(t, TypeUserJoined, JoinedPayload{ID: "new"}), 3, 1},
		{mustEncode(t, TypeUserMoved, MovedPayload{ID: "new", DeviceMoves: true, Motion: reading}), 3, 2},
		{mustEncode(t, TypeUserMoved, MovedPayload{ID: "ghost", DeviceMoves: true, Motion: reading}), 3, 2},
		{mustEncode(t, TypeUserLeft, "old"), 2, 1},
	}
	for i, s := range steps {
		if err := m.Apply(s.env); err != nil {
			t.Fatalf("step %d apply: %v", i, err)
		}
		if m.Len() != s.users || len(m.Moving()) != s.moving {
			t.Fatalf("step %d: users=%d moving=%d, want %d/%d", i, m.Len(), len(m.Moving()), s.users, s.moving)
		}
	}
	if m.Me() != "me" {
		t.Fatalf("me = %q", m.Me())
	}

	m.SetLocal(reading)
	if _, ok := m.Moving()["me"]; !ok {
		t.Fatal("local reading not mirrored")
	}
}

func TestMirrorRejectsUnknownEvent(t *testing.T) {
	m := NewMirror()
	if err := m.Apply(Envelope{Type: "chat", Data: []byte(`"hi"`)}); err == nil {
		t.Fatal("expected error for unknown event")
	}
	if err := m.Apply(Envelope{Type: TypeUserLeft, Data: []byte(`{}`)}); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestDecodeRequiresType(t *testing.T) {
	if _, err := Decode([]byte(`{"data":1}`)); err == nil {
		t.Fatal("expected error for missing type")
	}
	if _, err := Decode([]byte(`nope`)); err == nil {
		t.Fatal("expected error for invalid json")
	}
}

func TestThrottle(t *testing.T) {
	th := NewThrottle(DefaultSendInterval)
	t0 := time.Unix(50, 0)
	if !th.Allow(t0) {
		t.Fatal("first event blocked")
	}
	if th.Allow(t0.Add(29 * time.Millisecond)) {
		t.Fatal("event inside interval allowed")
	}
	if !th.Allow(t0.Add(30 * time.Millisecond)) {
		t.Fatal("event after interval blocked")
	}
	if th.Allow(t0.Add(45 * time.Millisecond)) {
		t.Fatal("interval not measured from last allowed event")
	}
}
