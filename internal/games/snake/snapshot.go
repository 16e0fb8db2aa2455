package snake

import "github.com/vovakirdan/retro-arcade/internal/core"

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Steps     uint64
	Phase     core.Phase
	Level     int
	Score     int
	Lives     int
	FoodEaten int
	SnakeLen  int
	HeadX     int
	HeadY     int
	Dir       Direction
	FoodX     int
	FoodY     int
	Effects   int
	Obstacles int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Steps:     g.steps,
		Phase:     g.Phase().Phase(),
		Level:     g.Level,
		Score:     g.Score,
		Lives:     g.Lives,
		FoodEaten: g.foodEaten,
		SnakeLen:  len(g.snake),
		Dir:       g.direction,
		FoodX:     g.food.X,
		FoodY:     g.food.Y,
		Effects:   g.Effects().Len(),
		Obstacles: g.obstacles.Count(),
	}
	if len(g.snake) > 0 {
		s.HeadX = g.snake[0].X
		s.HeadY = g.snake[0].Y
	}
	return s
}
