package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

type Config struct {
	LogLevel  string `yaml:"log-level" env:"LOG_LEVEL" env-default:"warn"`
	Board     Board  `yaml:"board"`
	FirstTurn string `yaml:"first-turn" env:"FIRST_TURN" env-default:"X"`
	Redis     Redis  `yaml:"redis"`
}

type Board struct {
	Rows int `yaml:"rows" env:"BOARD_ROWS" env-default:"3"`
	Cols int `yaml:"cols" env:"BOARD_COLS" env-default:"3"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load configuration from path, or from the environment alone when path does not exist.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.Board.Rows <= 0 || that.Board.Cols <= 0 {
		return fmt.Errorf("%w: %dx%d", apperror.ErrInvalidBoardSize, that.Board.Rows, that.Board.Cols)
	}

	if _, err := entity.ParseMark(that.FirstTurn); err != nil {
		return fmt.Errorf("first-turn: %w", err)
	}

	return nil
}

// FirstMark returns the validated first-turn mark.
func (that *Config) FirstMark() entity.Mark {
	mark, err := entity.ParseMark(that.FirstTurn)
	if err != nil {
		return entity.PlayerX
	}
	return mark
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
