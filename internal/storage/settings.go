package storage

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/retro-arcade/internal/config"
)

// MaxPayload is the largest settings or stats blob accepted on load.
const MaxPayload = 64 << 10

var errPayloadTooLarge = errors.New("payload exceeds 64 KiB")

// Settings are the player's preferences.
type Settings struct {
	Sound      bool    `yaml:"sound"`
	Volume     float64 `yaml:"volume"` // 0..1
	Difficulty string  `yaml:"difficulty"`
}

// DefaultSettings returns the settings used when none are stored.
func DefaultSettings() Settings {
	return Settings{Sound: true, Volume: 0.6, Difficulty: string(config.DifficultyNormal)}
}

// Validate reports the first invalid field.
func (s Settings) Validate() error {
	if !(s.Volume >= 0 && s.Volume <= 1) {
		return fmt.Errorf("volume %v outside [0, 1]", s.Volume)
	}
	if _, ok := config.ParsePreset(s.Difficulty); !ok || s.Difficulty == "" {
		return fmt.Errorf("unknown difficulty %q", s.Difficulty)
	}
	return nil
}

// Preset returns the difficulty preset the settings select.
func (s Settings) Preset() config.DifficultyPreset {
	p, _ := config.ParsePreset(s.Difficulty)
	return p
}

// GameRecord is the running tally for one game.
type GameRecord struct {
	HighScore  int       `yaml:"high_score"`
	Plays      int       `yaml:"plays"`
	TotalScore int64     `yaml:"total_score"`
	LastPlayed time.Time `yaml:"last_played"`
}

// Stats holds per-game records keyed by game ID.
type Stats struct {
	Games map[string]GameRecord `yaml:"games"`
}

// DefaultStats returns empty stats.
func DefaultStats() Stats {
	return Stats{Games: make(map[string]GameRecord)}
}

// Validate reports the first invalid record.
func (s Stats) Validate() error {
	for id, r := range s.Games {
		if id == "" {
			return errors.New("empty game id")
		}
		if r.HighScore < 0 || r.Plays < 0 || r.TotalScore < 0 {
			return fmt.Errorf("game %q has negative counters", id)
		}
		if r.HighScore > 0 && r.Plays == 0 {
			return fmt.Errorf("game %q has a high score but no plays", id)
		}
	}
	return nil
}

// Record folds one finished round into the stats.
func (s *Stats) Record(gameID string, score int, at time.Time) {
	if s.Games == nil {
		s.Games = make(map[string]GameRecord)
	}
	r := s.Games[gameID]
	r.Plays++
	r.TotalScore += int64(score)
	r.HighScore = max(r.HighScore, score)
	r.LastPlayed = at
	s.Games[gameID] = r
}

// decodePayload unmarshals a stored YAML blob into v after the size check.
// Unknown fields are rejected.
func decodePayload(data []byte, v any) error {
	if len(data) > MaxPayload {
		return errPayloadTooLarge
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func encodePayload(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if len(data) > MaxPayload {
		return nil, errPayloadTooLarge
	}
	return data, nil
}
