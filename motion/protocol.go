// Package motion carries the shared motion overlay: every connected device
// streams its sensor readings and receives everyone else's.
package motion

import (
	"encoding/json"
	"fmt"
)

// Event types on the wire
const (
	TypeInit       = "init"
	TypeUserJoined = "userJoined"
	TypeUserLeft   = "userLeft"
	TypeUserMoved  = "userMoved"
	TypeMotionData = "motionData"
)

type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Euler holds angles (or angular rates) in degrees
type Euler struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	Gamma float64 `json:"gamma"`
}

// MotionData is one device reading as sent by a client
type MotionData struct {
	ScreenPosition Vec2  `json:"screenPosition"`
	Acceleration   Vec3  `json:"acceleration"`
	RotationRate   Euler `json:"rotationRate"`
	Orientation    Euler `json:"orientation"`
}

// User is the per-connection overlay state
type User struct {
	DeviceMoves bool        `json:"deviceMoves"`
	MotionData  *MotionData `json:"motionData,omitempty"`
}

// State is the full overlay state sent on connect
type State struct {
	Users map[string]*User `json:"users"`
}

// Envelope wraps every message on the socket
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type InitPayload struct {
	ID    string `json:"id"`
	State State  `json:"state"`
}

type JoinedPayload struct {
	ID   string `json:"id"`
	User User   `json:"user"`
}

type MovedPayload struct {
	ID          string     `json:"id"`
	DeviceMoves bool       `json:"deviceMoves"`
	Motion      MotionData `json:"motion"`
}

// Encode marshals an event into an envelope
func Encode(eventType string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	msg, err := json.Marshal(Envelope{Type: eventType, Data: raw})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s envelope: %w", eventType, err)
	}
	return msg, nil
}

// Decode splits an envelope into its type and raw payload
func Decode(msg []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		return Envelope{}, fmt.Errorf("failed to parse envelope: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("envelope without type")
	}
	return env, nil
}
