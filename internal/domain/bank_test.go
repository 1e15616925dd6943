package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestQuestionBankAt(t *testing.T) {
	bank := NewQuestionBank([]Question{
		{ID: IntID(1), Text: "2+2?", Options: []string{"3", "4"}, Correct: "4"},
	})

	q, err := bank.At(0)
	if err != nil {
		t.Fatalf("at 0: %v", err)
	}
	if q.Text != "2+2?" {
		t.Fatalf("unexpected question %+v", q)
	}

	for _, idx := range []int{-1, 1, 42} {
		if _, err := bank.At(idx); err != ErrInvalidQuestionIndex {
			t.Fatalf("index %d: expected ErrInvalidQuestionIndex, got %v", idx, err)
		}
	}

	var empty QuestionBank
	if _, err := empty.At(0); err != ErrInvalidQuestionIndex {
		t.Fatalf("empty bank: expected ErrInvalidQuestionIndex, got %v", err)
	}
}

func TestPublicViewWithholdsCorrectAnswer(t *testing.T) {
	bank := NewQuestionBank([]Question{
		{ID: IntID(7), Text: "Capital of France?", Options: []string{"Paris", "Rome"}, Correct: "Paris"},
	})

	data, err := json.Marshal(bank.Public())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "correct") {
		t.Fatalf("public view leaked the answer: %s", data)
	}
	if !strings.Contains(string(data), `"options":["Paris","Rome"]`) {
		t.Fatalf("expected options in public view: %s", data)
	}
}

func TestQuestionsFromRecordsFallsBackToPosition(t *testing.T) {
	var records []QuestionRecord
	if err := json.Unmarshal([]byte(`[
		{"id": 10, "text": "a", "options": ["x"], "correct": "x"},
		{"text": "b", "options": ["y"], "correct": "y"}
	]`), &records); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	questions := QuestionsFromRecords(records)
	if questions[0].ID != IntID(10) {
		t.Fatalf("expected explicit id 10, got %v", questions[0].ID)
	}
	if questions[1].ID != IntID(1) {
		t.Fatalf("expected positional id 1, got %v", questions[1].ID)
	}
}

func TestQuestionIDKeepsItsForm(t *testing.T) {
	var records []QuestionRecord
	if err := json.Unmarshal([]byte(`[
		{"id": "q1", "text": "a", "options": ["x"], "correct": "x"},
		{"id": 2, "text": "b", "options": ["y"], "correct": "y"},
		{"id": null, "text": "c", "options": ["z"], "correct": "z"}
	]`), &records); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	questions := QuestionsFromRecords(records)
	want := []QuestionID{StringID("q1"), IntID(2), IntID(2)}
	for i, q := range questions {
		if q.ID != want[i] {
			t.Fatalf("question %d: expected id %v, got %v", i, want[i], q.ID)
		}
	}

	data, err := json.Marshal(NewQuestionBank(questions).Public())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"id":"q1"`) || !strings.Contains(string(data), `"id":2`) {
		t.Fatalf("ids changed form on the wire: %s", data)
	}

	var bad QuestionRecord
	if err := json.Unmarshal([]byte(`{"id": true, "text": "d"}`), &bad); err == nil {
		t.Fatalf("expected a boolean id to be rejected")
	}
}

func TestQuestionBankAllReturnsCopy(t *testing.T) {
	bank := NewQuestionBank([]Question{
		{ID: IntID(1), Text: "2+2?", Options: []string{"3", "4"}, Correct: "4"},
	})

	all := bank.All()
	if len(all) != 1 || all[0].Correct != "4" {
		t.Fatalf("unexpected questions %+v", all)
	}
	all[0].Text = "changed"
	if q, _ := bank.At(0); q.Text != "2+2?" {
		t.Fatalf("bank mutated through All: %+v", q)
	}
}
