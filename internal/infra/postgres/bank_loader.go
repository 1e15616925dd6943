package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/uptrace/bun"

	"live-quiz-service/internal/domain"
)

// BankLoader loads a question bank stored as a JSONB array in Postgres.
type BankLoader struct {
	pool   *pgxpool.Pool
	bankID string
}

func NewBankLoader(pool *pgxpool.Pool, bankID string) *BankLoader {
	return &BankLoader{pool: pool, bankID: bankID}
}

func (l *BankLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_banks WHERE id=$1`, l.bankID).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("%w: load bank %q: %w", domain.ErrQuestionBankLoad, l.bankID, err)
	}
	var records []domain.QuestionRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: unmarshal bank %q: %w", domain.ErrQuestionBankLoad, l.bankID, err)
	}
	return domain.QuestionsFromRecords(records), nil
}

// SaveBank upserts a bank so the server can later load it by id.
func SaveBank(ctx context.Context, db *bun.DB, bankID string, bank domain.QuestionBank) error {
	data, err := json.Marshal(domain.RecordsFromQuestions(bank.All()))
	if err != nil {
		return fmt.Errorf("marshal bank: %w", err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO question_banks (id, data) VALUES (?, ?::jsonb) ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data, updated_at=now()`,
		bankID, string(data))
	if err != nil {
		return fmt.Errorf("save bank %q: %w", bankID, err)
	}
	return nil
}
