package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"live-quiz-service/internal/domain"
)

// Notifier fans core state changes out to every connected client. Calls are
// made from the event loop and must not block.
type Notifier interface {
	QuestionStarted(q domain.PublicQuestion)
	ScoresChanged(board domain.Scoreboard)
	AnswerReceived(update domain.AnswerUpdate)
	QuestionEnded(ended domain.QuestionEnded)
}

// Welcome is what a newly connected client receives before any broadcast.
type Welcome struct {
	Questions []domain.PublicQuestion
	Scores    domain.Scoreboard
}

// Options tunes a QuizService.
type Options struct {
	QuestionTime time.Duration
	Scheduler    Scheduler
	Now          func() time.Time
}

// QuizService contains the core quiz use cases. It owns all quiz state and
// mutates it only from tasks on its event loop.
type QuizService struct {
	loop     *Loop
	bank     domain.QuestionBank
	board    *ScoreBoard
	session  *QuestionSession
	notifier Notifier
	logger   *zap.Logger
}

func NewQuizService(loop *Loop, bank domain.QuestionBank, notifier Notifier, opts Options, logger *zap.Logger) *QuizService {
	if opts.Scheduler == nil {
		opts.Scheduler = WallScheduler{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	board := NewScoreBoard()
	return &QuizService{
		loop:     loop,
		bank:     bank,
		board:    board,
		session:  NewQuestionSessionWithClock(board, opts.Scheduler, opts.QuestionTime, opts.Now),
		notifier: notifier,
		logger:   logger,
	}
}

// Welcome returns the public question list and the current scoreboard.
func (s *QuizService) Welcome(ctx context.Context) (Welcome, error) {
	var w Welcome
	err := s.loop.Do(ctx, func() {
		w = Welcome{Questions: s.bank.Public(), Scores: s.board.Snapshot()}
	})
	return w, err
}

// Attach runs fn on the event loop with the welcome state, so no broadcast
// can reach a client registered inside fn before its welcome messages.
func (s *QuizService) Attach(ctx context.Context, fn func(Welcome)) error {
	return s.loop.Do(ctx, func() {
		fn(Welcome{Questions: s.bank.Public(), Scores: s.board.Snapshot()})
	})
}

// Join registers a display name on the scoreboard.
func (s *QuizService) Join(ctx context.Context, player string) error {
	if player == "" {
		return domain.ErrNotJoined
	}
	return s.loop.Do(ctx, func() {
		s.board.Ensure(player)
		s.notifier.ScoresChanged(s.board.Snapshot())
		s.logger.Info("player joined", zap.String("player", player))
	})
}

// StartQuestion starts the bank question at index, superseding any running question.
func (s *QuizService) StartQuestion(ctx context.Context, index int) error {
	var startErr error
	err := s.loop.Do(ctx, func() {
		q, err := s.bank.At(index)
		if err != nil {
			startErr = err
			return
		}
		s.session.Start(q, s.deadlineFired)
		s.notifier.QuestionStarted(q.Public())
		s.notifier.ScoresChanged(s.board.Snapshot())
		s.logger.Info("question started", zap.Int("index", index), zap.Stringer("id", q.ID), zap.String("text", q.Text))
	})
	if err != nil {
		return err
	}
	return startErr
}

// SubmitAnswer records a player's answer and returns the points it earned.
// When reply is set it receives the points on the loop, ahead of the
// scoreUpdate and answerUpdate broadcasts.
func (s *QuizService) SubmitAnswer(ctx context.Context, player, option string, reply func(points int)) (int, error) {
	var (
		points    int
		submitErr error
	)
	err := s.loop.Do(ctx, func() {
		record, awarded, err := s.session.Submit(player, option)
		if err != nil {
			submitErr = err
			return
		}
		points = awarded
		if reply != nil {
			reply(awarded)
		}
		s.notifier.ScoresChanged(s.board.Snapshot())
		s.notifier.AnswerReceived(domain.AnswerUpdate{
			Player:  record.Player,
			Option:  record.Option,
			Correct: record.Correct,
		})
		s.logger.Info("answer received",
			zap.String("player", player),
			zap.String("option", option),
			zap.Bool("correct", record.Correct),
			zap.Int("points", awarded),
		)
	})
	if err != nil {
		return 0, err
	}
	return points, submitErr
}

// EndQuestion ends the running question. Ending when idle is a no-op.
func (s *QuizService) EndQuestion(ctx context.Context) error {
	return s.loop.Do(ctx, func() {
		if ended, ok := s.session.End(); ok {
			s.finish(ended)
		}
	})
}

// deadlineFired runs on the scheduler's goroutine.
func (s *QuizService) deadlineFired(token uint64) {
	s.loop.Post(func() {
		if ended, ok := s.session.Expire(token); ok {
			s.logger.Info("question deadline elapsed")
			s.finish(ended)
		}
	})
}

func (s *QuizService) finish(ended domain.QuestionEnded) {
	s.notifier.QuestionEnded(ended)
	s.logger.Info("question ended",
		zap.Stringer("id", ended.Question.ID),
		zap.Int("answers", len(ended.Answers)),
	)
}
