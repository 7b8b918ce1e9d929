package game

import "testing"

func TestCompensate(t *testing.T) {
	raw := Tilt{ForwardBack: 5, LeftRight: 20}
	tests := []struct {
		angle int
		want  Tilt
	}{
		{0, Tilt{ForwardBack: 5, LeftRight: 20}},
		{90, Tilt{ForwardBack: -20, LeftRight: 5}},
		{-270, Tilt{ForwardBack: -20, LeftRight: 5}},
		{-90, Tilt{ForwardBack: 20, LeftRight: -5}},
		{270, Tilt{ForwardBack: 20, LeftRight: -5}},
		{180, Tilt{ForwardBack: -5, LeftRight: -20}},
		{-180, Tilt{ForwardBack: -5, LeftRight: -20}},
		{45, Tilt{ForwardBack: 5, LeftRight: 20}},
	}
	for _, tt := range tests {
		if got := Compensate(raw, tt.angle); got != tt.want {
			t.Errorf("Compensate(%v, %d) = %+v, want %+v", raw, tt.angle, got, tt.want)
		}
	}
}

func TestNormalizerKeepsStaleAxes(t *testing.T) {
	n := NewNormalizer()
	n.Update(OrientationSample{Alpha: 10, Beta: 5, Gamma: 20, Present: AllAxes})
	n.Update(OrientationSample{Beta: -30, Present: AxisBeta})
	n.Update(OrientationSample{})

	if got := n.Raw(); got != (Tilt{ForwardBack: -30, LeftRight: 20}) {
		t.Fatalf("raw = %+v, want fb=-30 lr=20", got)
	}
	if n.Heading() != 10 {
		t.Fatalf("heading = %v, want 10", n.Heading())
	}
}

func TestNormalizerAppliesScreenAngle(t *testing.T) {
	n := NewNormalizer()
	n.Update(OrientationSample{Beta: 5, Gamma: 20, Present: AxisBeta | AxisGamma})
	n.SetScreenAngle(90)
	if got := n.Tilt(); got != (Tilt{ForwardBack: -20, LeftRight: 5}) {
		t.Fatalf("tilt = %+v, want fb=-20 lr=5", got)
	}
	if n.ScreenAngle() != 90 {
		t.Fatalf("screen angle = %d", n.ScreenAngle())
	}
}
