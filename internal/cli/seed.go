package cli

import (
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"live-quiz-service/internal/config"
	"live-quiz-service/internal/domain"
	"live-quiz-service/internal/infra/file"
	"live-quiz-service/internal/infra/postgres"
	redisbank "live-quiz-service/internal/infra/redis"
	"live-quiz-service/internal/logger"
)

// NewSeedCmd imports a JSON/YAML question file into the Postgres bank table.
func NewSeedCmd(configPath *string) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import a question file into Postgres under questions.bank_id",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			if from == "" {
				from = cfg.Questions.Path
			}
			questions, err := file.NewBankLoader(from).LoadQuestions(ctx)
			if err != nil {
				return err
			}
			bank := domain.NewQuestionBank(questions)

			if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
				return err
			}
			db, err := openBunDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgres.SaveBank(ctx, db, cfg.Questions.BankID, bank); err != nil {
				return err
			}
			log.Info("question bank imported",
				zap.String("bank", cfg.Questions.BankID),
				zap.String("from", from),
				zap.Int("questions", bank.Len()),
			)

			if cfg.Redis.Addr != "" {
				client := newRedisClient(cfg)
				defer client.Close()
				cache := redisbank.NewBankCache(client, nil, cfg.Questions.BankID, cfg.Questions.CacheTTL, log)
				if err := cache.Invalidate(ctx); err != nil {
					log.Warn("failed to invalidate cached question bank", zap.Error(err))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "question file to import (defaults to questions.path)")
	return cmd
}

func newRedisClient(cfg config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
