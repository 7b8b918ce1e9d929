package game

import (
	"math/rand"
	"time"
)

// State is the engine's lifecycle state.
type State int

const (
	StateActive State = iota
	StateGameOver
)

func (s State) String() string {
	if s == StateGameOver {
		return "game over"
	}
	return "active"
}

// DeathCause records what ended the last round.
type DeathCause string

const (
	DeathNone DeathCause = ""
	DeathWall DeathCause = "wall"
	DeathSelf DeathCause = "self"
)

// Engine is the authoritative snake state machine. It is driven from a
// single goroutine; it is not safe for concurrent use.
type Engine struct {
	config Config
	rng    *rand.Rand

	// Grid dimensions in cells
	cols int
	rows int

	// Snake body, head first
	snake        []Cell
	heading      Direction
	pending      Direction
	targetLength int

	fruit Cell

	score int
	best  int

	state State
	cause DeathCause

	// frame counts rendered frames, steps counts simulation steps
	frame int
	steps int

	// Last viewport, reused by Restart
	pixelWidth  int
	pixelHeight int
}

// NewEngine creates an engine reset to the configured screen size. A nil rng
// is replaced by one seeded from the clock.
func NewEngine(config Config, rng *rand.Rand) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e := &Engine{
		config: config,
		rng:    rng,
	}
	e.Reset(config.ScreenWidth, config.ScreenHeight)
	return e, nil
}

// Reset starts a new round on a grid sized for the given viewport
func (e *Engine) Reset(pixelWidth, pixelHeight int) {
	e.pixelWidth = pixelWidth
	e.pixelHeight = pixelHeight
	e.cols, e.rows = e.config.GridSize(pixelWidth, pixelHeight)

	e.targetLength = e.config.InitialLength
	e.score = 0
	e.frame = 0
	e.steps = 0
	e.state = StateActive
	e.cause = DeathNone

	sx, sy := e.cols/2, e.rows/2
	e.snake = e.snake[:0]
	for i := 0; i < e.config.InitialLength; i++ {
		e.snake = append(e.snake, Cell{X: sx - i, Y: sy})
	}

	e.heading = Right
	e.pending = Right

	e.spawnFruit()
}

// Resize rebuilds the board for a new viewport. Nothing carries over.
func (e *Engine) Resize(pixelWidth, pixelHeight int) {
	e.Reset(pixelWidth, pixelHeight)
}

// Restart handles a tap or click. It only resets a finished round and
// reports whether it did.
func (e *Engine) Restart() bool {
	if e.state != StateGameOver {
		return false
	}
	e.Reset(e.pixelWidth, e.pixelHeight)
	return true
}

// PendingDirection returns the latest accepted intent
func (e *Engine) PendingDirection() Direction {
	return e.pending
}

// SetPendingDirection stores an intent to be committed on the next step
func (e *Engine) SetPendingDirection(d Direction) {
	if d.Valid() {
		e.pending = d
	}
}

// Frame advances the frame counter and runs a step every MoveEvery frames.
// It reports whether a step ran.
func (e *Engine) Frame() bool {
	if e.state != StateActive {
		return false
	}
	e.frame++
	if e.frame%e.config.MoveEvery != 0 {
		return false
	}
	e.Step()
	return true
}

// Step moves the snake one cell
func (e *Engine) Step() {
	if e.state != StateActive {
		return
	}

	e.commitPending()

	next := e.snake[0].Add(e.heading)
	if !next.In(e.cols, e.rows) {
		e.end(DeathWall)
		return
	}
	if e.occupied(next) {
		e.end(DeathSelf)
		return
	}

	e.snake = append(e.snake, Cell{})
	copy(e.snake[1:], e.snake)
	e.snake[0] = next
	e.steps++

	if next == e.fruit {
		e.score++
		e.best = max(e.best, e.score)
		e.targetLength += e.config.GrowthPerFruit
		e.spawnFruit()
	}

	for len(e.snake) > e.targetLength {
		e.snake = e.snake[:len(e.snake)-1]
	}
}

// commitPending adopts the pending direction unless it would turn the head
// back onto the neck.
func (e *Engine) commitPending() {
	if len(e.snake) > 1 && e.snake[0].Add(e.pending) == e.snake[1] {
		return
	}
	e.heading = e.pending
}

func (e *Engine) end(cause DeathCause) {
	e.state = StateGameOver
	e.cause = cause
}

func (e *Engine) occupied(c Cell) bool {
	for _, s := range e.snake {
		if s == c {
			return true
		}
	}
	return false
}

// spawnFruit samples random cells until one is free. After
// FruitSpawnAttempts misses the old fruit stays where it was.
func (e *Engine) spawnFruit() {
	for tries := 0; tries < e.config.FruitSpawnAttempts; tries++ {
		c := Cell{X: e.rng.Intn(e.cols), Y: e.rng.Intn(e.rows)}
		if !e.occupied(c) {
			e.fruit = c
			return
		}
	}
}

// State returns the lifecycle state
func (e *Engine) State() State { return e.state }

// GameOver reports whether the round has ended
func (e *Engine) GameOver() bool { return e.state == StateGameOver }

// Score returns the fruit eaten this round
func (e *Engine) Score() int { return e.score }

// Cols returns the grid width in cells
func (e *Engine) Cols() int { return e.cols }

// Rows returns the grid height in cells
func (e *Engine) Rows() int { return e.rows }

// Config returns the engine configuration
func (e *Engine) Config() Config { return e.config }
