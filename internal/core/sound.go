package core

// Cue is a named sound event emitted by a game during a tick.
type Cue int

const (
	CueNone Cue = iota
	CueBounce
	CueHit
	CueScore
	CueEat
	CuePowerUp
	CueExplosion
	CueLifeLost
	CueLevelUp
	CueLineClear
	CueShoot
	CueGameOver
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueBounce:
		return "bounce"
	case CueHit:
		return "hit"
	case CueScore:
		return "score"
	case CueEat:
		return "eat"
	case CuePowerUp:
		return "powerup"
	case CueExplosion:
		return "explosion"
	case CueLifeLost:
		return "lifelost"
	case CueLevelUp:
		return "levelup"
	case CueLineClear:
		return "lineclear"
	case CueShoot:
		return "shoot"
	case CueGameOver:
		return "gameover"
	default:
		return "none"
	}
}

// CueQueue collects cues between drains. The zero value is ready to use.
type CueQueue struct {
	cues []Cue
}

// Emit records a cue.
func (q *CueQueue) Emit(c Cue) {
	q.cues = append(q.cues, c)
}

// Drain returns and clears queued cues.
func (q *CueQueue) Drain() []Cue {
	if len(q.cues) == 0 {
		return nil
	}
	out := q.cues
	q.cues = nil
	return out
}
