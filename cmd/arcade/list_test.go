package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

func TestWriteGameTable(t *testing.T) {
	games := []registry.GameInfo{
		{ID: "pong", Title: "Pong"},
		{ID: "tetris", Title: "Tetris"},
	}
	stats := storage.DefaultStats()
	stats.Games["tetris"] = storage.GameRecord{HighScore: 1200, Plays: 4, TotalScore: 3000}

	var buf bytes.Buffer
	if err := writeGameTable(&buf, games, stats); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, rule and 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if got := strings.Fields(lines[2]); strings.Join(got, " ") != "pong Pong - 0" {
		t.Errorf("unplayed row = %q", lines[2])
	}
	if got := strings.Fields(lines[3]); strings.Join(got, " ") != "tetris Tetris 1200 4" {
		t.Errorf("played row = %q", lines[3])
	}
	// Columns line up.
	if strings.Index(lines[2], "Pong") != strings.Index(lines[3], "Tetris") {
		t.Errorf("title column misaligned:\n%s", buf.String())
	}
}
