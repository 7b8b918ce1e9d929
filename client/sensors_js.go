//go:build js && wasm

package client

import (
	"log"
	"regexp"
	"sync"
	"syscall/js"

	"tiltsnake/game"
)

var mobileAgent = regexp.MustCompile(`(?i)Mobi|Android|iPhone|iPad|iPod`)

// browserSensors listens to deviceorientation and devicemotion on window.
type browserSensors struct {
	mu        sync.Mutex
	reading   Reading
	seen      bool
	permitted bool
	asked     bool
	mobile    bool

	// js.Func values must stay referenced while listeners are registered
	funcs []js.Func
}

// PlatformSensors returns the sensor source for this build
func PlatformSensors() SensorSource {
	win := js.Global()
	s := &browserSensors{
		mobile: mobileAgent.MatchString(win.Get("navigator").Get("userAgent").String()),
	}
	s.reading.ScreenAngle = screenAngle()

	s.listen(win, "orientationchange", func(js.Value) { s.setAngle(screenAngle()) })
	if so := win.Get("screen").Get("orientation"); so.Truthy() {
		s.listen(so, "change", func(js.Value) { s.setAngle(screenAngle()) })
	}

	if needsPermission() {
		// iOS only grants sensor access from inside a user gesture
		doc := win.Get("document")
		s.listen(doc, "click", func(js.Value) { s.requestPermission() })
		s.listen(doc, "touchend", func(js.Value) { s.requestPermission() })
	} else {
		s.listen(win, "devicemotion", s.onMotion)
		s.listen(win, "deviceorientation", s.onOrientation)
		s.permitted = true
	}
	return s
}

func (s *browserSensors) Latest() (Reading, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reading, s.seen
}

func (s *browserSensors) Mobile() bool { return s.mobile }

func (s *browserSensors) Permitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permitted
}

func (s *browserSensors) listen(target js.Value, event string, fn func(ev js.Value)) {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := js.Undefined()
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	})
	s.funcs = append(s.funcs, f)
	target.Call("addEventListener", event, f, true)
}

func (s *browserSensors) setAngle(deg int) {
	s.mu.Lock()
	s.reading.ScreenAngle = deg
	s.mu.Unlock()
}

func (s *browserSensors) onOrientation(ev js.Value) {
	var sample game.OrientationSample
	if v, ok := number(ev.Get("alpha")); ok {
		sample.Alpha = v
		sample.Present |= game.AxisAlpha
	}
	if v, ok := number(ev.Get("beta")); ok {
		sample.Beta = v
		sample.Present |= game.AxisBeta
	}
	if v, ok := number(ev.Get("gamma")); ok {
		sample.Gamma = v
		sample.Present |= game.AxisGamma
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// keep stale axes so Latest always carries a full picture
	prev := s.reading.Orientation
	if sample.Present&game.AxisAlpha == 0 {
		sample.Alpha = prev.Alpha
	}
	if sample.Present&game.AxisBeta == 0 {
		sample.Beta = prev.Beta
	}
	if sample.Present&game.AxisGamma == 0 {
		sample.Gamma = prev.Gamma
	}
	sample.Present |= prev.Present
	s.reading.Orientation = sample
	s.seen = true
}

func (s *browserSensors) onMotion(ev js.Value) {
	acc, rate := ev.Get("acceleration"), ev.Get("rotationRate")
	if !acc.Truthy() || !rate.Truthy() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reading.Acceleration.X = numberOr(acc.Get("x"))
	s.reading.Acceleration.Y = numberOr(acc.Get("y"))
	s.reading.Acceleration.Z = numberOr(acc.Get("z"))
	s.reading.RotationRate.Alpha = numberOr(rate.Get("alpha"))
	s.reading.RotationRate.Beta = numberOr(rate.Get("beta"))
	s.reading.RotationRate.Gamma = numberOr(rate.Get("gamma"))
}

func (s *browserSensors) requestPermission() {
	s.mu.Lock()
	if s.asked {
		s.mu.Unlock()
		return
	}
	s.asked = true
	s.mu.Unlock()

	win := js.Global()
	s.whenGranted(win.Get("DeviceMotionEvent"), func() {
		s.listen(win, "devicemotion", s.onMotion)
	})
	s.whenGranted(win.Get("DeviceOrientationEvent"), func() {
		s.listen(win, "deviceorientation", s.onOrientation)
		s.mu.Lock()
		s.permitted = true
		s.mu.Unlock()
	})
}

func (s *browserSensors) whenGranted(eventType js.Value, granted func()) {
	var then, catch js.Func
	then = js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 && args[0].String() == "granted" {
			granted()
		}
		return nil
	})
	catch = js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			log.Printf("sensor permission request failed: %s", args[0].Call("toString").String())
		}
		return nil
	})
	s.funcs = append(s.funcs, then, catch)
	eventType.Call("requestPermission").Call("then", then).Call("catch", catch)
}

func needsPermission() bool {
	win := js.Global()
	motion := win.Get("DeviceMotionEvent")
	orientation := win.Get("DeviceOrientationEvent")
	return motion.Truthy() && orientation.Truthy() &&
		motion.Get("requestPermission").Type() == js.TypeFunction &&
		orientation.Get("requestPermission").Type() == js.TypeFunction
}

func screenAngle() int {
	win := js.Global()
	if so := win.Get("screen").Get("orientation"); so.Truthy() {
		if v, ok := number(so.Get("angle")); ok {
			return int(v)
		}
	}
	if v, ok := number(win.Get("orientation")); ok {
		return int(v)
	}
	return 0
}

func number(v js.Value) (float64, bool) {
	if v.Type() != js.TypeNumber {
		return 0, false
	}
	return v.Float(), true
}

func numberOr(v js.Value) float64 {
	f, _ := number(v)
	return f
}

// DefaultServerURL derives the overlay endpoint from the page address
func DefaultServerURL() string {
	loc := js.Global().Get("location")
	scheme := "ws://"
	if loc.Get("protocol").String() == "https:" {
		scheme = "wss://"
	}
	return scheme + loc.Get("host").String() + "/ws"
}
