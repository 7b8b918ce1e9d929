package motion

import (
	"math/rand"
	"testing"
)

func TestBarHeight(t *testing.T) {
	tests := []struct {
		beta float64
		want float64
	}{
		{-90, 0},
		{0, 400},
		{90, 800},
		{45, 600},
		{-120, 0},
		{170, 800},
	}
	for _, tt := range tests {
		m := MotionData{Orientation: Euler{Beta: tt.beta}}
		if got := m.BarHeight(800); got != tt.want {
			t.Errorf("BarHeight(beta=%v) = %v, want %v", tt.beta, got, tt.want)
		}
	}
}

func TestRandomScreenPosition(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		p := RandomScreenPosition(rng, 540, 960)
		if p.X < 50 || p.X > 490 || p.Y < 50 || p.Y > 910 {
			t.Fatalf("position %+v outside margins", p)
		}
	}

	p := RandomScreenPosition(rng, 80, 60)
	if p.X != 40 || p.Y != 30 {
		t.Fatalf("tiny screen position = %+v, want center", p)
	}
}
