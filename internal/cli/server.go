package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"live-quiz-service/internal/app"
	"live-quiz-service/internal/config"
	"live-quiz-service/internal/infra/file"
	pgloader "live-quiz-service/internal/infra/postgres"
	redisbank "live-quiz-service/internal/infra/redis"
	"live-quiz-service/internal/logger"
	transport "live-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loader, cleanup := bankLoader(ctx, cfg, log)
	defer cleanup()
	bank := app.LoadQuestionBank(ctx, loader, log)

	loop := app.NewLoop(256)
	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()
	go loop.Run(loopCtx)

	hub := transport.NewHub(64, log.Named("hub"))
	service := app.NewQuizService(loop, bank, hub, app.Options{QuestionTime: cfg.Quiz.QuestionTime}, log.Named("quiz"))
	wsHandler := transport.NewWSHandler(service, hub, log.Named("ws"))
	router := transport.NewRouter(wsHandler, transport.RouterOptions{
		PublicDir: cfg.Server.PublicDir,
		PublicURL: cfg.Server.PublicURL,
	}, log.Named("http"))

	server := &http.Server{
		Addr:              ":" + finalPort,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("quiz server running", zap.String("port", finalPort), zap.Duration("question_time", cfg.Quiz.QuestionTime))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error("failed to start server", zap.Error(err))
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// bankLoader picks the configured question source and, when Redis is
// configured, puts the bank cache in front of it.
func bankLoader(ctx context.Context, cfg config.Config, log *zap.Logger) (app.BankLoader, func()) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var loader redisbank.BankLoader
	switch cfg.Questions.Source {
	case config.SourcePostgres:
		if cfg.Postgres.URL == "" {
			log.Error("questions.source is postgres but postgres.url is empty")
			return nil, cleanup
		}
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			log.Error("failed to migrate question bank schema", zap.Error(err))
			return nil, cleanup
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			log.Error("failed to connect to postgres", zap.Error(err))
			return nil, cleanup
		}
		closers = append(closers, pool.Close)
		loader = pgloader.NewBankLoader(pool, cfg.Questions.BankID)
	default:
		loader = file.NewBankLoader(cfg.Questions.Path)
	}

	if cfg.Redis.Addr != "" {
		client := newRedisClient(cfg)
		closers = append(closers, func() { _ = client.Close() })
		loader = redisbank.NewBankCache(client, loader, cfg.Questions.BankID, cfg.Questions.CacheTTL, log.Named("bank-cache"))
	}
	return loader, cleanup
}
