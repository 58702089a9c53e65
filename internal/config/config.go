package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	MemoryStorage = "memory"
	RedisStorage  = "redis"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Storage    string `yaml:"storage" env:"STORAGE" env-default:"memory"`
	Redis      Redis  `yaml:"redis"`
	Bot        Bot    `yaml:"bot"`
}

type Redis struct {
	Host    string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	GameTTL time.Duration `yaml:"game-ttl" env:"REDIS_GAME_TTL" env-default:"24h"`
}

type Bot struct {
	ThinkDelay  time.Duration `yaml:"think-delay" env:"BOT_THINK_DELAY" env-default:"500ms"`
	MoveTimeout time.Duration `yaml:"move-timeout" env:"BOT_MOVE_TIMEOUT" env-default:"5s"`
	Seed        int64         `yaml:"seed" env:"BOT_SEED" env-default:"0"`
}

// Load - reads the config file, environment variables override it.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Config) validate() error {
	if that.Storage != MemoryStorage && that.Storage != RedisStorage {
		return fmt.Errorf("unknown storage %q, expected %q or %q", that.Storage, MemoryStorage, RedisStorage)
	}

	if that.Bot.ThinkDelay < 0 || that.Bot.MoveTimeout <= 0 {
		return fmt.Errorf("bot think-delay must not be negative and move-timeout must be positive, got %s and %s", that.Bot.ThinkDelay, that.Bot.MoveTimeout)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
