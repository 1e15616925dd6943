package http

import (
	"encoding/json"
	"errors"

	"live-quiz-service/internal/domain"
)

// Inbound message types.
const (
	TypeJoin          = "join"
	TypeStartQuestion = "startQuestion"
	TypeEndQuestion   = "endQuestion"
	TypeSubmitAnswer  = "submitAnswer"
)

// Outbound message types.
const (
	TypeQuestionsList = "questionsList"
	TypeScoreUpdate   = "scoreUpdate"
	TypeNewQuestion   = "newQuestion"
	TypeAnswerUpdate  = "answerUpdate"
	TypeQuestionEnded = "questionEnded"
	TypeYourPoints    = "yourPoints"
	TypeErrorMessage  = "errorMessage"
)

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type pointsPayload struct {
	Points int `json:"points"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func message(typ string, payload any) outboundMessage[any] {
	return outboundMessage[any]{Type: typ, Payload: payload}
}

func errorMessage(text string) outboundMessage[any] {
	return message(TypeErrorMessage, errorPayload{Message: text})
}

// errorText turns a rejected request into the text shown to the player.
func errorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotJoined):
		return "Please join with a name before answering."
	case errors.Is(err, domain.ErrNoActiveQuestion):
		return "There is no active question right now."
	case errors.Is(err, domain.ErrDuplicateAnswer):
		return "You already answered this question."
	case errors.Is(err, domain.ErrInvalidQuestionIndex):
		return "That question does not exist."
	default:
		return err.Error()
	}
}
