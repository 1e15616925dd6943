package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds application configuration loaded from an optional YAML file
// and environment variables.
type Config struct {
	Env       string    `mapstructure:"env"` // local, production, ...
	Server    Server    `mapstructure:"server"`
	Quiz      Quiz      `mapstructure:"quiz"`
	Questions Questions `mapstructure:"questions"`
	Redis     Redis     `mapstructure:"redis"`
	Postgres  Postgres  `mapstructure:"postgres"`
}

type Server struct {
	Port      string `mapstructure:"port"`
	PublicDir string `mapstructure:"public_dir"` // admin/player/projector pages
	PublicURL string `mapstructure:"public_url"` // advertised in the join QR code
}

type Quiz struct {
	QuestionTime time.Duration `mapstructure:"question_time"`
}

// Questions selects where the question bank is loaded from.
type Questions struct {
	Source   string        `mapstructure:"source"`  // file or postgres
	Path     string        `mapstructure:"path"`    // file source
	BankID   string        `mapstructure:"bank_id"` // postgres row and redis cache key
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Postgres struct {
	URL string `mapstructure:"url"`
}

// Load reads configuration from path (if it exists) and the environment.
// Nested keys map to env names with dots replaced by underscores, e.g.
// QUIZ_QUESTION_TIME; PORT sets the listening port.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("env", "local")
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.public_dir", "public")
	v.SetDefault("server.public_url", "")
	v.SetDefault("quiz.question_time", "15s")
	v.SetDefault("questions.source", SourceFile)
	v.SetDefault("questions.path", "questions.json")
	v.SetDefault("questions.bank_id", "default")
	v.SetDefault("questions.cache_ttl", "10m")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("postgres.url", "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.port", "PORT", "SERVER_PORT")
	_ = v.BindEnv("env", "APP_ENV", "ENV")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("error loading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Questions.Source {
	case SourceFile, SourcePostgres:
	default:
		return fmt.Errorf("unknown questions.source %q (want %q or %q)", c.Questions.Source, SourceFile, SourcePostgres)
	}
	if c.Quiz.QuestionTime <= 0 {
		return fmt.Errorf("quiz.question_time must be positive, got %s", c.Quiz.QuestionTime)
	}
	return nil
}
