package motion

import (
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newTestHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(log.New(io.Discard, "", 0))
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dialTest(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	env, err := Decode(msg)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env
}

func expectType(t *testing.T, env Envelope, want string) {
	t.Helper()
	if env.Type != want {
		t.Fatalf("event type = %q, want %q (data %s)", env.Type, want, env.Data)
	}
}

func TestHubInitJoinMoveLeave(t *testing.T) {
	hub, url := newTestHub(t)

	alice := dialTest(t, url)
	env := readEnvelope(t, alice)
	expectType(t, env, TypeInit)
	var aliceInit InitPayload
	if err := json.Unmarshal(env.Data, &aliceInit); err != nil {
		t.Fatalf("init payload: %v", err)
	}
	if aliceInit.ID == "" || len(aliceInit.State.Users) != 1 {
		t.Fatalf("alice init = %+v", aliceInit)
	}

	bob := dialTest(t, url)
	env = readEnvelope(t, bob)
	expectType(t, env, TypeInit)
	var bobInit InitPayload
	json.Unmarshal(env.Data, &bobInit)
	if _, ok := bobInit.State.Users[aliceInit.ID]; !ok || len(bobInit.State.Users) != 2 {
		t.Fatalf("bob init users = %v", bobInit.State.Users)
	}

	env = readEnvelope(t, alice)
	expectType(t, env, TypeUserJoined)
	var joined JoinedPayload
	json.Unmarshal(env.Data, &joined)
	if joined.ID != bobInit.ID {
		t.Fatalf("joined id = %q, want %q", joined.ID, bobInit.ID)
	}

	reading := MotionData{
		ScreenPosition: Vec2{X: 120, Y: 300},
		Orientation:    Euler{Alpha: 10, Beta: 45, Gamma: -5},
	}
	msg, err := Encode(TypeMotionData, reading)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := bob.WriteMessage(websocket.TextMessage, msg); err != nil {
		t.Fatalf("write: %v", err)
	}

	env = readEnvelope(t, alice)
	expectType(t, env, TypeUserMoved)
	var moved MovedPayload
	json.Unmarshal(env.Data, &moved)
	if moved.ID != bobInit.ID || !moved.DeviceMoves || moved.Motion != reading {
		t.Fatalf("moved = %+v", moved)
	}

	bob.Close()
	env = readEnvelope(t, alice)
	expectType(t, env, TypeUserLeft)
	var leftID string
	json.Unmarshal(env.Data, &leftID)
	if leftID != bobInit.ID {
		t.Fatalf("left id = %q, want %q", leftID, bobInit.ID)
	}

	deadline := time.Now().Add(2 * time.Second)
	for hub.Users() != 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Users() != 1 {
		t.Fatalf("hub has %d users, want 1", hub.Users())
	}
}

func TestHubIgnoresGarbage(t *testing.T) {
	_, url := newTestHub(t)

	alice := dialTest(t, url)
	expectType(t, readEnvelope(t, alice), TypeInit)
	bob := dialTest(t, url)
	expectType(t, readEnvelope(t, bob), TypeInit)
	expectType(t, readEnvelope(t, alice), TypeUserJoined)

	bob.WriteMessage(websocket.TextMessage, []byte("not json"))
	bob.WriteMessage(websocket.TextMessage, []byte(`{"type":"chat","data":"hi"}`))
	msg, _ := Encode(TypeMotionData, MotionData{ScreenPosition: Vec2{X: 1}})
	bob.WriteMessage(websocket.TextMessage, msg)

	env := readEnvelope(t, alice)
	expectType(t, env, TypeUserMoved)
}
