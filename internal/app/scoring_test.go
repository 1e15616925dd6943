package app

import (
	"testing"

	"live-quiz-service/internal/domain"
)

func TestRankPoints(t *testing.T) {
	var log []domain.AnswerRecord
	want := []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0, 0}
	for i, points := range want {
		if got := rankPoints(log, true); got != points {
			t.Fatalf("correct answer #%d: expected %d, got %d", i, points, got)
		}
		log = append(log, domain.AnswerRecord{Correct: true})
		// Wrong answers in between never shift the rank.
		log = append(log, domain.AnswerRecord{Correct: false})
	}
}

func TestRankPointsWrongAnswerScoresZero(t *testing.T) {
	if got := rankPoints(nil, false); got != 0 {
		t.Fatalf("expected 0 for a wrong first answer, got %d", got)
	}
}
