package app

import (
	"math"

	"live-quiz-service/internal/domain"
)

// ScoreBoard holds cumulative scores and the latest answer latency per player.
// Entries are never removed. It is not safe for concurrent use; the event loop
// is its only caller.
type ScoreBoard struct {
	scores    map[string]int
	latencies map[string]float64
}

func NewScoreBoard() *ScoreBoard {
	return &ScoreBoard{
		scores:    make(map[string]int),
		latencies: make(map[string]float64),
	}
}

// Ensure creates a zero-score entry for player if none exists.
func (b *ScoreBoard) Ensure(player string) {
	if _, ok := b.scores[player]; !ok {
		b.scores[player] = 0
	}
}

// Award adds points to the player's total. Negative points are ignored so
// totals never decrease.
func (b *ScoreBoard) Award(player string, points int) {
	b.Ensure(player)
	if points > 0 {
		b.scores[player] += points
	}
}

// RecordLatency overwrites the player's last answer latency, in seconds.
func (b *ScoreBoard) RecordLatency(player string, seconds float64) {
	b.Ensure(player)
	b.latencies[player] = math.Round(seconds*1000) / 1000
}

// Score returns the player's total and whether the player is on the board.
func (b *ScoreBoard) Score(player string) (int, bool) {
	score, ok := b.scores[player]
	return score, ok
}

// Scores returns a copy of all totals.
func (b *ScoreBoard) Scores() map[string]int {
	out := make(map[string]int, len(b.scores))
	for player, score := range b.scores {
		out[player] = score
	}
	return out
}

// Snapshot returns a copy suitable for broadcasting.
func (b *ScoreBoard) Snapshot() domain.Scoreboard {
	latencies := make(map[string]float64, len(b.latencies))
	for player, seconds := range b.latencies {
		latencies[player] = seconds
	}
	return domain.Scoreboard{
		Scores:        b.Scores(),
		LastLatencies: latencies,
	}
}
