package client

import (
	"context"
	"errors"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/sync/errgroup"

	"tiltsnake/motion"
)

const (
	outboxSize = 8
	retryDelay = 3 * time.Second
)

var colorMover = color.RGBA{0, 0, 255, 100}

// Overlay shows every moving device as a translucent bar and streams our
// own readings to the hub. Network work happens on its own goroutines;
// the frame loop only touches the mirror and the outbox.
type Overlay struct {
	mirror   *motion.Mirror
	throttle *motion.Throttle
	outbox   chan motion.MotionData
	position motion.Vec2
	logger   *log.Logger
}

// NewOverlay places this device's bar at a random spot on a width x height screen
func NewOverlay(rng *rand.Rand, width, height int, logger *log.Logger) *Overlay {
	if logger == nil {
		logger = log.Default()
	}
	return &Overlay{
		mirror:   motion.NewMirror(),
		throttle: motion.NewThrottle(motion.DefaultSendInterval),
		outbox:   make(chan motion.MotionData, outboxSize),
		position: motion.RandomScreenPosition(rng, float64(width), float64(height)),
		logger:   logger,
	}
}

// Users returns how many devices the hub reports, including us
func (o *Overlay) Users() int {
	return o.mirror.Len()
}

// Emit queues a reading for the hub at most once per send interval.
// A full outbox drops the reading rather than stalling the frame.
func (o *Overlay) Emit(r Reading, now time.Time) {
	if !o.throttle.Allow(now) {
		return
	}
	data := motion.MotionData{
		ScreenPosition: o.position,
		Acceleration:   r.Acceleration,
		RotationRate:   r.RotationRate,
		Orientation: motion.Euler{
			Alpha: r.Orientation.Alpha,
			Beta:  r.Orientation.Beta,
			Gamma: r.Orientation.Gamma,
		},
	}
	select {
	case o.outbox <- data:
	default:
	}
}

// Draw renders one bar per moving device
func (o *Overlay) Draw(screen *ebiten.Image) {
	h := float64(screen.Bounds().Dy())
	for _, m := range o.mirror.Moving() {
		vector.DrawFilledRect(screen,
			float32(m.ScreenPosition.X), 0,
			motion.BarWidth, float32(m.BarHeight(h)),
			colorMover, false)
	}
}

// Connect keeps a link to the hub at url open until ctx is cancelled,
// redialling after failures.
func (o *Overlay) Connect(ctx context.Context, url string) error {
	for {
		err := o.session(ctx, url)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		o.logger.Printf("overlay connection lost: %v (retrying in %v)", err, retryDelay)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay):
		}
	}
}

func (o *Overlay) session(ctx context.Context, url string) error {
	link, err := motion.Dial(ctx, url, o.mirror, o.logger)
	if err != nil {
		return err
	}
	defer link.Close()
	o.logger.Printf("overlay connected to %s", url)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return link.Run(gctx)
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case data := <-o.outbox:
				if err := link.Send(data); err != nil {
					return err
				}
			}
		}
	})

	err = g.Wait()
	if errors.Is(err, motion.ErrClosed) {
		return errors.New("connection closed")
	}
	return err
}
