package domain

import "errors"

var (
	// ErrNotJoined is returned when a connection acts as a player before joining with a name.
	ErrNotJoined = errors.New("player has not joined")
	// ErrNoActiveQuestion is returned when an answer arrives while no question is running.
	ErrNoActiveQuestion = errors.New("no active question")
	// ErrDuplicateAnswer is returned when a player answers the same question twice.
	ErrDuplicateAnswer = errors.New("player already answered this question")
	// ErrInvalidQuestionIndex indicates the requested bank position does not exist.
	ErrInvalidQuestionIndex = errors.New("invalid question index")
	// ErrQuestionBankLoad indicates the question bank source could not be read or parsed.
	ErrQuestionBankLoad = errors.New("question bank load failure")
)
