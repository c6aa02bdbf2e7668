package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type Config struct {
	ServerPort             string        `mapstructure:"SERVER_PORT"`
	GrpcPort               string        `mapstructure:"GRPC_PORT"`
	Storage                string        `mapstructure:"STORAGE"`
	MongoUri               string        `mapstructure:"MONGO_URI"`
	MongoDatabase          string        `mapstructure:"MONGO_DATABASE"`
	RedisUrl               string        `mapstructure:"REDIS_URL"`
	RedisPassword          string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB                int           `mapstructure:"REDIS_DB"`
	IsLocalCors            bool          `mapstructure:"LOCAL_CORS"`
	Debug                  bool          `mapstructure:"DEBUG"`
	DefaultAttempts        int           `mapstructure:"DEFAULT_ATTEMPTS"`
	WordsFile              string        `mapstructure:"WORDS_FILE"`
	WordSeed               int64         `mapstructure:"WORD_SEED"`
	AverageRefreshInterval time.Duration `mapstructure:"AVERAGE_REFRESH_INTERVAL"`
	TaskWorkers            int           `mapstructure:"TASK_WORKERS"`
	TaskQueueSize          int           `mapstructure:"TASK_QUEUE_SIZE"`
	RateLimitRPS           float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst         int           `mapstructure:"RATE_LIMIT_BURST"`
}

var defaults = map[string]any{
	"SERVER_PORT":              "8080",
	"GRPC_PORT":                "8082",
	"STORAGE":                  StorageMongo,
	"MONGO_URI":                "mongodb://localhost:27017",
	"MONGO_DATABASE":           "hangman",
	"REDIS_URL":                "localhost:6379",
	"REDIS_PASSWORD":           "",
	"REDIS_DB":                 0,
	"LOCAL_CORS":               false,
	"DEBUG":                    false,
	"DEFAULT_ATTEMPTS":         5,
	"WORDS_FILE":               "",
	"WORD_SEED":                0,
	"AVERAGE_REFRESH_INTERVAL": time.Minute,
	"TASK_WORKERS":             1,
	"TASK_QUEUE_SIZE":          64,
	"RATE_LIMIT_RPS":           20.0,
	"RATE_LIMIT_BURST":         40,
}

// Setup loads cfgPath into the process environment (a missing file is not an
// error) and reads the configuration from the environment.
func Setup(cfgPath string) (*Config, error) {
	if cfgPath != "" {
		if err := godotenv.Load(cfgPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", cfgPath, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	// GRPC_PORT= disables the health server
	v.AllowEmptyEnv(true)

	var cfg Config

	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if err = cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage {
	case StorageMongo, StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE %q", c.Storage)
	}
	if c.DefaultAttempts <= 0 {
		return fmt.Errorf("DEFAULT_ATTEMPTS must be positive, got %d", c.DefaultAttempts)
	}
	if c.TaskWorkers <= 0 {
		c.TaskWorkers = 1
	}
	if c.TaskQueueSize < 0 {
		c.TaskQueueSize = 0
	}
	return nil
}
