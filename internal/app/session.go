package app

import (
	"time"

	"live-quiz-service/internal/domain"
)

// DefaultQuestionTime is how long a question accepts answers unless configured otherwise.
const DefaultQuestionTime = 15 * time.Second

// QuestionSession is the single active-question state machine. It is Idle
// when active is nil and Active otherwise. Like ScoreBoard it is only touched
// from event loop tasks.
type QuestionSession struct {
	board     *ScoreBoard
	scheduler Scheduler
	duration  time.Duration
	now       func() time.Time

	active    *domain.Question
	startedAt time.Time
	answers   []domain.AnswerRecord
	deadline  Timer
	token     uint64
}

func NewQuestionSession(board *ScoreBoard, scheduler Scheduler, duration time.Duration) *QuestionSession {
	return NewQuestionSessionWithClock(board, scheduler, duration, time.Now)
}

// NewQuestionSessionWithClock allows deterministic timestamps in tests.
func NewQuestionSessionWithClock(board *ScoreBoard, scheduler Scheduler, duration time.Duration, now func() time.Time) *QuestionSession {
	if duration <= 0 {
		duration = DefaultQuestionTime
	}
	return &QuestionSession{
		board:     board,
		scheduler: scheduler,
		duration:  duration,
		now:       now,
	}
}

// Start makes q the active question, discarding any question already running
// along with its answers. onDeadline is called from the scheduler's goroutine
// when the deadline elapses; the caller must route the token back onto the
// event loop and pass it to Expire.
func (s *QuestionSession) Start(q domain.Question, onDeadline func(token uint64)) {
	s.disarm()

	s.active = &q
	s.answers = nil
	s.startedAt = s.now()

	s.token++
	token := s.token
	s.deadline = s.scheduler.AfterFunc(s.duration, func() { onDeadline(token) })
}

// Submit records the player's answer to the active question and returns the
// points awarded.
func (s *QuestionSession) Submit(player, option string) (domain.AnswerRecord, int, error) {
	if player == "" {
		return domain.AnswerRecord{}, 0, domain.ErrNotJoined
	}
	if s.active == nil {
		return domain.AnswerRecord{}, 0, domain.ErrNoActiveQuestion
	}
	for _, a := range s.answers {
		if a.Player == player {
			return domain.AnswerRecord{}, 0, domain.ErrDuplicateAnswer
		}
	}

	record := domain.AnswerRecord{
		Player:    player,
		Option:    option,
		TimeTaken: s.now().Sub(s.startedAt).Seconds(),
		Correct:   option == s.active.Correct,
	}
	points := rankPoints(s.answers, record.Correct)

	s.answers = append(s.answers, record)
	s.board.RecordLatency(player, record.TimeTaken)
	s.board.Award(player, points)
	return record, points, nil
}

// End finishes the active question. It reports false when the session was
// already idle.
func (s *QuestionSession) End() (domain.QuestionEnded, bool) {
	if s.active == nil {
		return domain.QuestionEnded{}, false
	}
	s.disarm()

	answers := make([]domain.AnswerRecord, len(s.answers))
	copy(answers, s.answers)
	ended := domain.QuestionEnded{
		Question: domain.QuestionSummary{ID: s.active.ID, Text: s.active.Text},
		Answers:  answers,
		Scores:   s.board.Scores(),
	}

	s.active = nil
	s.answers = nil
	s.startedAt = time.Time{}
	return ended, true
}

// Expire ends the question armed with token. A token from a deadline that was
// cancelled or superseded is ignored.
func (s *QuestionSession) Expire(token uint64) (domain.QuestionEnded, bool) {
	if s.active == nil || token != s.token {
		return domain.QuestionEnded{}, false
	}
	s.deadline = nil
	return s.End()
}

// Active returns the running question, if any.
func (s *QuestionSession) Active() (domain.Question, bool) {
	if s.active == nil {
		return domain.Question{}, false
	}
	return *s.active, true
}

// Answers returns a copy of the answer log in arrival order.
func (s *QuestionSession) Answers() []domain.AnswerRecord {
	out := make([]domain.AnswerRecord, len(s.answers))
	copy(out, s.answers)
	return out
}

func (s *QuestionSession) disarm() {
	if s.deadline != nil {
		s.deadline.Stop()
		s.deadline = nil
	}
	// Invalidate any callback that already fired but has not reached Expire.
	s.token++
}
