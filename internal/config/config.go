package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Logger      LoggerConfig
	Quiz        QuizConfig
	Leaderboard LeaderboardConfig
	Loader      LoaderConfig
	Redis       RedisConfig
}

type LoggerConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

type QuizConfig struct {
	QuestionThreshold int `yaml:"question_threshold"`
}

type LeaderboardConfig struct {
	// TopN is the default ranking size consumers request.
	TopN int `yaml:"top_n"`
}

type LoaderConfig struct {
	QuestionsFile string        `yaml:"questions_file"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("quiz.question_threshold", 100)
	viper.SetDefault("leaderboard.top_n", 10)
	viper.SetDefault("loader.cache_ttl", "5m")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		Quiz: QuizConfig{
			QuestionThreshold: viper.GetInt("quiz.question_threshold"),
		},
		Leaderboard: LeaderboardConfig{
			TopN: viper.GetInt("leaderboard.top_n"),
		},
		Loader: LoaderConfig{
			QuestionsFile: viper.GetString("loader.questions_file"),
			CacheTTL:      viper.GetDuration("loader.cache_ttl"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
	}

	// Override with environment variables if set
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logger.Level = level
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		config.Logger.Env = env
	}
	if file := os.Getenv("QUESTIONS_FILE"); file != "" {
		config.Loader.QuestionsFile = file
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}

	return config, nil
}
