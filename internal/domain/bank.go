package domain

// QuestionBank is the immutable, ordered list of questions loaded at startup.
type QuestionBank struct {
	questions []Question
}

// NewQuestionBank copies questions into a bank.
func NewQuestionBank(questions []Question) QuestionBank {
	qs := make([]Question, len(questions))
	for i, q := range questions {
		q.Options = append([]string(nil), q.Options...)
		qs[i] = q
	}
	return QuestionBank{questions: qs}
}

// Len reports the number of questions.
func (b QuestionBank) Len() int {
	return len(b.questions)
}

// At returns the question at index.
func (b QuestionBank) At(index int) (Question, error) {
	if index < 0 || index >= len(b.questions) {
		return Question{}, ErrInvalidQuestionIndex
	}
	return b.questions[index], nil
}

// All returns a copy of every question, correct answers included.
func (b QuestionBank) All() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Public returns every question with the correct answer withheld.
func (b QuestionBank) Public() []PublicQuestion {
	out := make([]PublicQuestion, 0, len(b.questions))
	for _, q := range b.questions {
		out = append(out, q.Public())
	}
	return out
}

// QuestionRecord is the on-disk/in-database shape of a question. A record
// without an id takes its position in the list as its id.
type QuestionRecord struct {
	ID      *QuestionID `json:"id,omitempty" yaml:"id,omitempty"`
	Text    string      `json:"text" yaml:"text"`
	Options []string    `json:"options" yaml:"options"`
	Correct string      `json:"correct" yaml:"correct"`
}

// QuestionsFromRecords converts decoded records into questions, filling missing ids.
func QuestionsFromRecords(records []QuestionRecord) []Question {
	questions := make([]Question, 0, len(records))
	for i, r := range records {
		id := IntID(i)
		if r.ID != nil && !r.ID.IsZero() {
			id = *r.ID
		}
		questions = append(questions, Question{
			ID:      id,
			Text:    r.Text,
			Options: r.Options,
			Correct: r.Correct,
		})
	}
	return questions
}

// RecordsFromQuestions is the inverse of QuestionsFromRecords; every id is kept explicitly.
func RecordsFromQuestions(questions []Question) []QuestionRecord {
	records := make([]QuestionRecord, 0, len(questions))
	for _, q := range questions {
		id := q.ID
		records = append(records, QuestionRecord{
			ID:      &id,
			Text:    q.Text,
			Options: q.Options,
			Correct: q.Correct,
		})
	}
	return records
}
