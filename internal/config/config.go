package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel  string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort  string  `yaml:"http-port" env:"HTTP_PORT" env-default:"8787"`
	StaticDir string  `yaml:"static-dir" env:"STATIC_DIR" env-default:"dist"`
	Storage   Storage `yaml:"storage"`
	Room      Room    `yaml:"room"`
}

type Storage struct {
	Type  string `yaml:"type" env:"STORAGE_TYPE" env-default:"memory"`
	Redis Redis  `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Room struct {
	// TTL - how long an idle room stays reachable before the sweep drops it.
	TTL time.Duration `yaml:"ttl" env:"ROOM_TTL" env-default:"6h"`
	// OnlineWindow - how recent a heartbeat must be for a player to count as connected.
	OnlineWindow time.Duration `yaml:"online-window" env:"ROOM_ONLINE_WINDOW" env-default:"15s"`
}

// MustLoad - load all configuration from config.yml, or from the environment
// alone when no file is present.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to load config from environment: %w", err))
		}

		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
