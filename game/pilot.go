package game

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dop251/goja"
)

// Pilot steers the snake from a JavaScript function using goja (pure Go
// JavaScript engine). The script must define
//
//	function decide(state) { return "up" | "down" | "left" | "right" }
//
// where state is the JSON form of Snapshot. Returning null, undefined or an
// empty string keeps the current direction. An object with a "direction"
// field is accepted as well.
type Pilot struct {
	mu     sync.Mutex
	vm     *goja.Runtime
	decide goja.Callable
}

// NewPilot compiles the script and checks that it defines decide
func NewPilot(code string) (*Pilot, error) {
	vm := goja.New()
	if _, err := vm.RunString(code); err != nil {
		return nil, fmt.Errorf("script parse error: %w", err)
	}

	decideVal := vm.Get("decide")
	if decideVal == nil || goja.IsUndefined(decideVal) {
		return nil, fmt.Errorf("script must define a 'decide' function")
	}
	decide, ok := goja.AssertFunction(decideVal)
	if !ok {
		return nil, fmt.Errorf("'decide' must be a function")
	}

	return &Pilot{vm: vm, decide: decide}, nil
}

// Decide runs the script against a snapshot. The bool is false when the
// script made no choice.
func (p *Pilot) Decide(s Snapshot) (Direction, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	stateJSON, err := json.Marshal(s)
	if err != nil {
		return Direction{}, false, fmt.Errorf("failed to serialize state: %w", err)
	}
	stateObj, err := p.vm.RunString(fmt.Sprintf("(%s)", stateJSON))
	if err != nil {
		return Direction{}, false, fmt.Errorf("failed to parse state: %w", err)
	}

	result, err := p.decide(goja.Undefined(), stateObj)
	if err != nil {
		return Direction{}, false, fmt.Errorf("decide function failed: %w", err)
	}
	if result == nil || goja.IsUndefined(result) || goja.IsNull(result) {
		return Direction{}, false, nil
	}

	var name string
	switch v := result.Export().(type) {
	case string:
		name = v
	case map[string]any:
		name, _ = v["direction"].(string)
	default:
		return Direction{}, false, fmt.Errorf("decide returned %T, want a direction name", v)
	}
	if name == "" {
		return Direction{}, false, nil
	}

	d, err := ParseDirection(name)
	if err != nil {
		return Direction{}, false, err
	}
	return d, true, nil
}

// Drive asks the script for a direction and applies it like a key press
func (p *Pilot) Drive(s Snapshot, a *Arbiter) error {
	d, ok, err := p.Decide(s)
	if err != nil {
		return err
	}
	if ok {
		a.Press(d)
	}
	return nil
}
