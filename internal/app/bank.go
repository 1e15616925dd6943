package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"live-quiz-service/internal/domain"
)

// BankLoader fetches the ordered question list from a backing store (file, Postgres, cache).
type BankLoader interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

// LoadQuestionBank loads the bank once. A failing loader never aborts
// startup: the failure is logged and an empty bank is returned.
func LoadQuestionBank(ctx context.Context, loader BankLoader, logger *zap.Logger) domain.QuestionBank {
	if loader == nil {
		logger.Warn("no question bank source configured, starting with an empty bank")
		return domain.QuestionBank{}
	}
	questions, err := loader.LoadQuestions(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrQuestionBankLoad) {
			err = fmt.Errorf("%w: %w", domain.ErrQuestionBankLoad, err)
		}
		logger.Error("failed to load question bank, starting with an empty bank", zap.Error(err))
		return domain.QuestionBank{}
	}
	logger.Info("question bank loaded", zap.Int("questions", len(questions)))
	return domain.NewQuestionBank(questions)
}
