package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"live-quiz-service/internal/domain"
)

// BankLoader reads an ordered question list from a JSON or YAML file.
// The format is picked from the file extension; anything that is not
// .yaml or .yml is treated as JSON.
type BankLoader struct {
	path string
}

func NewBankLoader(path string) *BankLoader {
	return &BankLoader{path: path}
}

func (l *BankLoader) LoadQuestions(_ context.Context) ([]domain.Question, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrQuestionBankLoad, l.path, err)
	}

	var records []domain.QuestionRecord
	switch strings.ToLower(filepath.Ext(l.path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	default:
		err = json.Unmarshal(data, &records)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrQuestionBankLoad, l.path, err)
	}
	return domain.QuestionsFromRecords(records), nil
}
