package config

import (
	"errors"
	"fmt"
	"math/rand"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/minaorangina/wizard/game"
)

var ErrInvalid = errors.New("invalid configuration")

// Config holds the settings for both binaries, read from WIZARD_* variables.
type Config struct {
	Host           string    `env:"WIZARD_HOST"`
	Port           int       `env:"WIZARD_PORT,default=8000"`
	Players        int       `env:"WIZARD_PLAYERS,default=4"`
	BotTier        game.Tier `env:"WIZARD_BOT_TIER,default=medium"`
	HumanName      string    `env:"WIZARD_HUMAN_NAME,default=You"`
	MaxRounds      int       `env:"WIZARD_MAX_ROUNDS,default=0"`
	Seed           int64     `env:"WIZARD_SEED,default=0"`
	LogLevel       string    `env:"WIZARD_LOG_LEVEL,default=info"`
	LogFile        string    `env:"WIZARD_LOG_FILE"`
	AllowedOrigins []string  `env:"WIZARD_ALLOWED_ORIGINS,default=*"`
}

// Load reads the environment, after first loading any .env files.
// With no files named, a missing ./.env is not an error.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading env file: %w", err)
		}
	}

	var c Config
	if err := envdecode.Decode(&c); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalid, c.Port)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if game.RoundsForPlayers(c.Players) == 0 {
		return fmt.Errorf("%w: %d players", ErrInvalid, c.Players)
	}
	return nil
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Rand is seeded from Seed, or from the clock when Seed is 0.
func (c Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Game builds the game settings: the human first, then every bot at BotTier.
func (c Config) Game() game.Config {
	tiers := make([]game.Tier, 0, c.Players-1)
	for i := 1; i < c.Players; i++ {
		tiers = append(tiers, c.BotTier)
	}
	return game.Config{
		PlayerCount: c.Players,
		HumanName:   c.HumanName,
		Tiers:       tiers,
		MaxRounds:   c.MaxRounds,
		Rand:        c.Rand(),
	}
}

// Logger builds a production zap logger at LogLevel, writing to LogFile
// when one is set and to stderr otherwise.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	if c.LogFile != "" {
		zc.OutputPaths = []string{c.LogFile}
	}
	return zc.Build()
}
