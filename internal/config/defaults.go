package config

import (
	"embed"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// GameIDs lists the games with embedded default configs.
var GameIDs = []string{"breakout", "invaders", "maze", "pong", "runner", "snake", "tetris"}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	data, err := defaultsFS.ReadFile("defaults/" + gameID + ".yaml")
	if err != nil {
		return nil
	}
	return data
}

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Movement: SnakeMovement{
			StepInterval:   0.12,
			MinInterval:    0.05,
			SpeedUpPerFood: 0.002,
			Wrap:           false,
		},
		Gameplay: SnakeGameplay{
			Lives:             3,
			FoodPoints:        10,
			FoodPerLevel:      10,
			ObstaclesPerLevel: 3,
			InitialLength:     4,
		},
		PowerUps: PowerUpConfig{
			Enabled:     true,
			SpawnChance: 0.2,
			Duration:    6,
			Lifetime:    8,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 500,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.6,
			},
		},
	}
}

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Physics: PongPhysics{
			BallSpeed:      30,
			MaxBallSpeed:   70,
			SpeedUpPerHit:  2.5,
			MaxBounceAngle: 45,
			PaddleSpeed:    30,
		},
		Paddles: PongPaddles{
			Height: 5,
			Offset: 2,
		},
		Gameplay: PongGameplay{
			WinScore:   7,
			ServeDelay: 1,
		},
		CPU: PongCPU{
			Speed:     22,
			Lookahead: 0.3,
			Reaction:  0.85,
			Deadband:  0.5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 600, // 10 minutes
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultBreakoutConfig returns the default Breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Physics: BreakoutPhysics{
			BallSpeed:      22,
			MaxBallSpeed:   45,
			SpeedUpPerHit:  0.6,
			MaxBounceAngle: 60,
			PaddleSpeed:    55,
		},
		Paddle: BreakoutPaddle{
			Width:     9,
			WideBonus: 6,
		},
		Bricks: BreakoutBricks{
			Columns:  10,
			BaseRows: 4,
			MaxRows:  10,
			TopGap:   2,
		},
		Gameplay: BreakoutGameplay{
			Lives:          3,
			PointsPerHit:   10,
			TransitionTime: 2,
		},
		PowerUps: PowerUpConfig{
			Enabled:     true,
			SpawnChance: 0.12,
			Duration:    10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 2000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.4,
			},
		},
	}
}

// DefaultTetrisConfig returns the default Tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: TetrisBoard{
			Width:  10,
			Height: 20,
		},
		Timing: TetrisTiming{
			Gravity:          0.8,
			GravityPerLevel:  0.07,
			MinGravity:       0.05,
			SoftDropInterval: 0.03,
			DAS:              0.17,
			ARR:              0.05,
			LockDelay:        0.5,
			LinesPerLevel:    10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type: "none",
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultInvadersConfig returns the default Space Invaders configuration.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Formation: InvadersFormation{
			Rows:        5,
			Columns:     11,
			SpacingX:    4,
			SpacingY:    2,
			MarchStart:  0.7,
			MarchMin:    0.05,
			StepX:       1,
			StepDown:    1,
			WaveDescent: 1,
		},
		Player: InvadersPlayer{
			Speed:       30,
			BulletSpeed: 40,
			Cooldown:    0.4,
		},
		Aliens: InvadersAliens{
			FireRate:    1.2,
			BulletSpeed: 15,
			MaxBullets:  3,
			RowPoints:   []int{30, 20, 20, 10, 10},
		},
		Shields: InvadersShields{
			Count:  4,
			Width:  6,
			Height: 3,
		},
		Gameplay: InvadersGameplay{
			Lives:          3,
			SaucerEvery:    25,
			SaucerSpeed:    12,
			SaucerPoints:   []int{50, 100, 150, 300},
			RespawnPause:   1.5,
			WaveTransition: 2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultRunnerConfig returns the default tunnel runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: RunnerPhysics{
			Gravity:      45,
			Thrust:       110,
			MaxFallSpeed: 25,
			MaxRiseSpeed: 20,
			BaseSpeed:    20,
		},
		Tunnel: RunnerTunnel{
			ChunkLength: 40,
			MinGap:      7,
			MaxGap:      12,
			MaxSlope:    1,
			ShipX:       10,
		},
		Gameplay: RunnerGameplay{
			Lives:          3,
			Bombs:          3,
			CoinChance:     0.06,
			ObstacleChance: 0.03,
			CoinPoints:     50,
			DistancePoints: 1,
			InvulnSeconds:  1.5,
			ObstaclePoints: 25,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "distance",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				GapReduction:    3,
			},
		},
	}
}

// DefaultMazeConfig returns the default maze-chase configuration.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Timing: MazeTiming{
			PlayerStep:     0.13,
			GhostStep:      0.15,
			FrightenedStep: 0.25,
			Frightened:     7,
			Scatter:        7,
			Chase:          20,
			GhostRelease:   3,
		},
		Gameplay: MazeGameplay{
			Lives:           3,
			PelletPoints:    10,
			PowerPoints:     50,
			GhostPoints:     200,
			Ghosts:          4,
			LevelTransition: 2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 10000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}
