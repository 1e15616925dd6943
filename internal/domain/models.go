package domain

// Question is a multiple-choice question as stored in the bank.
type Question struct {
	ID      QuestionID `json:"id" yaml:"id"`
	Text    string     `json:"text" yaml:"text"`
	Options []string   `json:"options" yaml:"options"`
	Correct string     `json:"correct" yaml:"correct"`
}

// Public returns the view of q that is safe to send to players.
func (q Question) Public() PublicQuestion {
	options := make([]string, len(q.Options))
	copy(options, q.Options)
	return PublicQuestion{ID: q.ID, Text: q.Text, Options: options}
}

// PublicQuestion is a question with the correct answer withheld.
type PublicQuestion struct {
	ID      QuestionID `json:"id"`
	Text    string     `json:"text"`
	Options []string   `json:"options"`
}

// QuestionSummary identifies a question in the end-of-question reveal.
type QuestionSummary struct {
	ID   QuestionID `json:"id"`
	Text string     `json:"text"`
}

// AnswerRecord is one accepted answer. The order of records in a question's
// log is the arrival order.
type AnswerRecord struct {
	Player    string  `json:"player"`
	Option    string  `json:"option"`
	TimeTaken float64 `json:"timeTaken"` // seconds since the question started
	Correct   bool    `json:"correct"`
}

// AnswerUpdate is the live feed entry broadcast for each accepted answer.
type AnswerUpdate struct {
	Player  string `json:"player"`
	Option  string `json:"option"`
	Correct bool   `json:"correct"`
}

// Scoreboard is a point-in-time copy of every player's score and last answer latency.
type Scoreboard struct {
	Scores        map[string]int     `json:"scores"`
	LastLatencies map[string]float64 `json:"lastLatencies"`
}

// QuestionEnded is the final tally for a question.
type QuestionEnded struct {
	Question QuestionSummary `json:"question"`
	Answers  []AnswerRecord  `json:"answers"`
	Scores   map[string]int  `json:"scores"`
}
