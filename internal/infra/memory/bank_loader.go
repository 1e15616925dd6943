package memory

import (
	"context"

	"live-quiz-service/internal/domain"
)

// StaticBankLoader is a simple loader backed by an in-memory slice (useful for tests/demos).
type StaticBankLoader struct {
	questions []domain.Question
}

func NewStaticBankLoader(questions []domain.Question) *StaticBankLoader {
	return &StaticBankLoader{questions: questions}
}

func (l *StaticBankLoader) LoadQuestions(_ context.Context) ([]domain.Question, error) {
	out := make([]domain.Question, len(l.questions))
	copy(out, l.questions)
	return out, nil
}

// FailingBankLoader always fails; it stands in for a missing or corrupt source.
type FailingBankLoader struct {
	Err error
}

func (l FailingBankLoader) LoadQuestions(_ context.Context) ([]domain.Question, error) {
	if l.Err == nil {
		return nil, domain.ErrQuestionBankLoad
	}
	return nil, l.Err
}
