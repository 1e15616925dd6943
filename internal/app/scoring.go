package app

import "live-quiz-service/internal/domain"

// maxPoints is awarded to the first correct answer; each later correct answer earns one less.
const maxPoints = 10

// rankPoints scores a new answer against the log of answers recorded before it.
func rankPoints(previous []domain.AnswerRecord, correct bool) int {
	if !correct {
		return 0
	}
	rank := 0
	for _, a := range previous {
		if a.Correct {
			rank++
		}
	}
	return max(maxPoints-rank, 0)
}
