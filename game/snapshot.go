package game

// Snapshot is a read-only copy of the engine state for renderers and
// scripts. It shares no memory with the engine.
type Snapshot struct {
	Cols       int        `json:"cols"`
	Rows       int        `json:"rows"`
	Snake      []Cell     `json:"snake"`
	Fruit      Cell       `json:"fruit"`
	Heading    Direction  `json:"heading"`
	Score      int        `json:"score"`
	Best       int        `json:"best"`
	GameOver   bool       `json:"gameOver"`
	DeathCause DeathCause `json:"deathCause,omitempty"`
	Steps      int        `json:"steps"`
}

// Snapshot copies the current state
func (e *Engine) Snapshot() Snapshot {
	snake := make([]Cell, len(e.snake))
	copy(snake, e.snake)
	return Snapshot{
		Cols:       e.cols,
		Rows:       e.rows,
		Snake:      snake,
		Fruit:      e.fruit,
		Heading:    e.heading,
		Score:      e.score,
		Best:       e.best,
		GameOver:   e.state == StateGameOver,
		DeathCause: e.cause,
		Steps:      e.steps,
	}
}

// Head returns the head cell, or false for an empty snake
func (s Snapshot) Head() (Cell, bool) {
	if len(s.Snake) == 0 {
		return Cell{}, false
	}
	return s.Snake[0], true
}
