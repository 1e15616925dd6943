package app_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"live-quiz-service/internal/app"
	"live-quiz-service/internal/domain"
	"live-quiz-service/internal/infra/memory"
)

func TestLoadQuestionBankDegradesToEmpty(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	bank := app.LoadQuestionBank(context.Background(), memory.FailingBankLoader{Err: errors.New("disk on fire")}, logger)
	if bank.Len() != 0 {
		t.Fatalf("expected empty bank, got %d questions", bank.Len())
	}
	if _, err := bank.At(0); err != domain.ErrInvalidQuestionIndex {
		t.Fatalf("expected ErrInvalidQuestionIndex, got %v", err)
	}

	entries := logs.FilterMessage("failed to load question bank, starting with an empty bank").All()
	if len(entries) != 1 {
		t.Fatalf("expected the failure to be logged once, got %d", len(entries))
	}
	err, _ := entries[0].ContextMap()["error"].(string)
	if err == "" {
		t.Fatalf("expected error field in log entry")
	}
}

func TestLoadQuestionBankWithoutSource(t *testing.T) {
	bank := app.LoadQuestionBank(context.Background(), nil, zap.NewNop())
	if bank.Len() != 0 {
		t.Fatalf("expected empty bank")
	}
}

func TestLoadQuestionBank(t *testing.T) {
	bank := app.LoadQuestionBank(context.Background(), memory.NewStaticBankLoader(sampleQuestions()), zap.NewNop())
	if bank.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", bank.Len())
	}
}
