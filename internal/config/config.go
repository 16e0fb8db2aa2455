// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
//
// All speeds are in cells per second and all durations in seconds.
package config

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Movement   SnakeMovement    `yaml:"movement"`
	Gameplay   SnakeGameplay    `yaml:"gameplay"`
	PowerUps   PowerUpConfig    `yaml:"powerups"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SnakeMovement defines stepping speed for Snake.
type SnakeMovement struct {
	StepInterval   float64 `yaml:"step_interval"`     // seconds per grid step
	MinInterval    float64 `yaml:"min_interval"`      // fastest allowed step interval
	SpeedUpPerFood float64 `yaml:"speed_up_per_food"` // seconds removed per food eaten
	Wrap           bool    `yaml:"wrap"`              // wrap around edges instead of dying
}

// SnakeGameplay defines scoring and level parameters for Snake.
type SnakeGameplay struct {
	Lives             int `yaml:"lives"`
	FoodPoints        int `yaml:"food_points"`
	FoodPerLevel      int `yaml:"food_per_level"`
	ObstaclesPerLevel int `yaml:"obstacles_per_level"`
	InitialLength     int `yaml:"initial_length"`
}

// PowerUpConfig defines pickup spawning shared by several games.
type PowerUpConfig struct {
	Enabled     bool    `yaml:"enabled"`
	SpawnChance float64 `yaml:"spawn_chance"` // chance per eligible event
	Duration    float64 `yaml:"duration"`     // effect length
	Lifetime    float64 `yaml:"lifetime"`     // how long an uncollected pickup stays
}

// PongConfig contains all configuration for the Pong game.
type PongConfig struct {
	Physics    PongPhysics      `yaml:"physics"`
	Paddles    PongPaddles      `yaml:"paddles"`
	Gameplay   PongGameplay     `yaml:"gameplay"`
	CPU        PongCPU          `yaml:"cpu"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PongPhysics defines physics parameters for Pong.
type PongPhysics struct {
	BallSpeed      float64 `yaml:"ball_speed"`
	MaxBallSpeed   float64 `yaml:"max_ball_speed"`
	SpeedUpPerHit  float64 `yaml:"speed_up_per_hit"`
	MaxBounceAngle float64 `yaml:"max_bounce_angle"` // degrees
	PaddleSpeed    float64 `yaml:"paddle_speed"`
}

// PongPaddles defines paddle dimensions for Pong.
type PongPaddles struct {
	Height int `yaml:"height"`
	Offset int `yaml:"offset"` // distance from the side wall
}

// PongGameplay defines scoring parameters for Pong.
type PongGameplay struct {
	WinScore   int     `yaml:"win_score"`
	ServeDelay float64 `yaml:"serve_delay"`
}

// PongCPU defines the computer opponent.
type PongCPU struct {
	Speed     float64 `yaml:"speed"`
	Lookahead float64 `yaml:"lookahead"` // seconds of ball travel predicted
	Reaction  float64 `yaml:"reaction"`  // chance per frame of reacting
	Deadband  float64 `yaml:"deadband"`  // cells of error tolerated before moving
}

// BreakoutConfig contains all configuration for the Breakout game.
type BreakoutConfig struct {
	Physics    BreakoutPhysics  `yaml:"physics"`
	Paddle     BreakoutPaddle   `yaml:"paddle"`
	Bricks     BreakoutBricks   `yaml:"bricks"`
	Gameplay   BreakoutGameplay `yaml:"gameplay"`
	PowerUps   PowerUpConfig    `yaml:"powerups"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BreakoutPhysics defines physics parameters for Breakout.
type BreakoutPhysics struct {
	BallSpeed      float64 `yaml:"ball_speed"`
	MaxBallSpeed   float64 `yaml:"max_ball_speed"`
	SpeedUpPerHit  float64 `yaml:"speed_up_per_hit"`
	MaxBounceAngle float64 `yaml:"max_bounce_angle"` // degrees
	PaddleSpeed    float64 `yaml:"paddle_speed"`
}

// BreakoutPaddle defines paddle parameters for Breakout.
type BreakoutPaddle struct {
	Width     int `yaml:"width"`
	WideBonus int `yaml:"wide_bonus"` // extra cells while the wide power-up is active
}

// BreakoutBricks defines the brick wall layout.
type BreakoutBricks struct {
	Columns  int `yaml:"columns"`
	BaseRows int `yaml:"base_rows"` // rows at level 1; each level adds one
	MaxRows  int `yaml:"max_rows"`
	TopGap   int `yaml:"top_gap"` // empty rows between the HUD and the wall
}

// BreakoutGameplay defines scoring and flow parameters for Breakout.
type BreakoutGameplay struct {
	Lives          int     `yaml:"lives"`
	PointsPerHit   int     `yaml:"points_per_hit"` // multiplied by a brick's max hits
	TransitionTime float64 `yaml:"transition_time"`
}

// TetrisConfig contains all configuration for the Tetris game.
type TetrisConfig struct {
	Board      TetrisBoard      `yaml:"board"`
	Timing     TetrisTiming     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TetrisBoard defines the playfield size.
type TetrisBoard struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TetrisTiming defines gravity and handling for Tetris.
type TetrisTiming struct {
	Gravity          float64 `yaml:"gravity"`            // seconds per row at level 1
	GravityPerLevel  float64 `yaml:"gravity_per_level"`  // seconds removed per level
	MinGravity       float64 `yaml:"min_gravity"`        // fastest gravity
	SoftDropInterval float64 `yaml:"soft_drop_interval"` // seconds per row while soft dropping
	DAS              float64 `yaml:"das"`                // delay before auto-shift
	ARR              float64 `yaml:"arr"`                // auto-repeat interval
	LockDelay        float64 `yaml:"lock_delay"`
	LinesPerLevel    int     `yaml:"lines_per_level"`
}

// InvadersConfig contains all configuration for the Space Invaders game.
type InvadersConfig struct {
	Formation  InvadersFormation `yaml:"formation"`
	Player     InvadersPlayer    `yaml:"player"`
	Aliens     InvadersAliens    `yaml:"aliens"`
	Shields    InvadersShields   `yaml:"shields"`
	Gameplay   InvadersGameplay  `yaml:"gameplay"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// InvadersFormation defines the alien grid.
type InvadersFormation struct {
	Rows        int     `yaml:"rows"`
	Columns     int     `yaml:"columns"`
	SpacingX    int     `yaml:"spacing_x"`
	SpacingY    int     `yaml:"spacing_y"`
	MarchStart  float64 `yaml:"march_start"` // seconds per step with a full formation
	MarchMin    float64 `yaml:"march_min"`   // seconds per step with one alien left
	StepX       int     `yaml:"step_x"`
	StepDown    int     `yaml:"step_down"`
	WaveDescent int     `yaml:"wave_descent"` // extra starting rows per wave
}

// InvadersPlayer defines the player cannon.
type InvadersPlayer struct {
	Speed       float64 `yaml:"speed"`
	BulletSpeed float64 `yaml:"bullet_speed"`
	Cooldown    float64 `yaml:"cooldown"`
}

// InvadersAliens defines alien fire.
type InvadersAliens struct {
	FireRate    float64 `yaml:"fire_rate"` // expected shots per second
	BulletSpeed float64 `yaml:"bullet_speed"`
	MaxBullets  int     `yaml:"max_bullets"`
	RowPoints   []int   `yaml:"row_points"` // points by row, top first
}

// InvadersShields defines the bunkers.
type InvadersShields struct {
	Count  int `yaml:"count"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// InvadersGameplay defines lives and the bonus saucer.
type InvadersGameplay struct {
	Lives          int     `yaml:"lives"`
	SaucerEvery    float64 `yaml:"saucer_every"`
	SaucerSpeed    float64 `yaml:"saucer_speed"`
	SaucerPoints   []int   `yaml:"saucer_points"`
	RespawnPause   float64 `yaml:"respawn_pause"`
	WaveTransition float64 `yaml:"wave_transition"`
}

// RunnerConfig contains all configuration for the tunnel runner.
type RunnerConfig struct {
	Physics    RunnerPhysics    `yaml:"physics"`
	Tunnel     RunnerTunnel     `yaml:"tunnel"`
	Gameplay   RunnerGameplay   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerPhysics defines ship movement.
type RunnerPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	Thrust       float64 `yaml:"thrust"` // upward acceleration while thrusting
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	MaxRiseSpeed float64 `yaml:"max_rise_speed"`
	BaseSpeed    float64 `yaml:"base_speed"` // scroll speed
}

// RunnerTunnel defines tunnel generation.
type RunnerTunnel struct {
	ChunkLength int     `yaml:"chunk_length"` // slices per generated chunk
	MinGap      int     `yaml:"min_gap"`
	MaxGap      int     `yaml:"max_gap"`
	MaxSlope    float64 `yaml:"max_slope"` // cells of drift per slice
	ShipX       int     `yaml:"ship_x"`
}

// RunnerGameplay defines scoring and hazards.
type RunnerGameplay struct {
	Lives          int     `yaml:"lives"`
	Bombs          int     `yaml:"bombs"`
	CoinChance     float64 `yaml:"coin_chance"`     // per slice
	ObstacleChance float64 `yaml:"obstacle_chance"` // per slice
	CoinPoints     int     `yaml:"coin_points"`
	DistancePoints int     `yaml:"distance_points"` // points per 10 cells
	InvulnSeconds  float64 `yaml:"invuln_seconds"`
	ObstaclePoints int     `yaml:"obstacle_points"`
}

// MazeConfig contains all configuration for the maze-chase game.
type MazeConfig struct {
	Timing     MazeTiming       `yaml:"timing"`
	Gameplay   MazeGameplay     `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// MazeTiming defines movement and mode timers.
type MazeTiming struct {
	PlayerStep     float64 `yaml:"player_step"`
	GhostStep      float64 `yaml:"ghost_step"`
	FrightenedStep float64 `yaml:"frightened_step"`
	Frightened     float64 `yaml:"frightened"`
	Scatter        float64 `yaml:"scatter"`
	Chase          float64 `yaml:"chase"`
	GhostRelease   float64 `yaml:"ghost_release"` // seconds between ghosts leaving the pen
}

// MazeGameplay defines scoring for the maze-chase game.
type MazeGameplay struct {
	Lives           int     `yaml:"lives"`
	PelletPoints    int     `yaml:"pellet_points"`
	PowerPoints     int     `yaml:"power_points"`
	GhostPoints     int     `yaml:"ghost_points"` // doubles for each ghost eaten per power pellet
	Ghosts          int     `yaml:"ghosts"`
	LevelTransition float64 `yaml:"level_transition"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "score", "time", "distance", or "none"
	MaxAt float64 `yaml:"max_at"` // score, seconds or cells at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Multiplier added to speed at max difficulty
	GapReduction     int     `yaml:"gap_reduction"`     // Gap size reduction at max difficulty
	SpacingReduction int     `yaml:"spacing_reduction"` // Spacing reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty selects normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return DifficultyNormal, false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies a difficulty config based on a preset.
func ApplyPreset(cfg *DifficultyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Enabled = false
		return
	}
	cfg.Enabled = true
	cfg.InitialLevel = InitialLevelForPreset(preset)
}
