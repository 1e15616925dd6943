package app_test

import (
	"testing"

	"live-quiz-service/internal/app"
)

func TestScoreBoardEnsureIsIdempotent(t *testing.T) {
	board := app.NewScoreBoard()
	board.Ensure("A")
	board.Award("A", 10)
	board.Ensure("A")

	if score, ok := board.Score("A"); !ok || score != 10 {
		t.Fatalf("expected A=10, got %d (present=%v)", score, ok)
	}
	if _, ok := board.Score("B"); ok {
		t.Fatalf("expected B absent")
	}
}

func TestScoreBoardAwardCreatesEntry(t *testing.T) {
	board := app.NewScoreBoard()
	board.Award("A", 9)
	board.Award("A", 8)
	board.Award("A", -5)

	if score, _ := board.Score("A"); score != 17 {
		t.Fatalf("expected 17, got %d", score)
	}
}

func TestScoreBoardSnapshotIsACopy(t *testing.T) {
	board := app.NewScoreBoard()
	board.RecordLatency("A", 1.23456)

	snap := board.Snapshot()
	if snap.LastLatencies["A"] != 1.235 {
		t.Fatalf("expected latency rounded to ms, got %v", snap.LastLatencies["A"])
	}
	if score, ok := snap.Scores["A"]; !ok || score != 0 {
		t.Fatalf("expected latency to register A with 0 points, got %+v", snap.Scores)
	}

	snap.Scores["A"] = 99
	if score, _ := board.Score("A"); score != 0 {
		t.Fatalf("snapshot mutation leaked into board")
	}
}
