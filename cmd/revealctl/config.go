package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// config is the resolved configuration of one revealctl invocation, merged
// from defaults, an optional config file, REVEAL_* environment variables and
// flags.
type config struct {
	Debug    bool           `mapstructure:"debug"`
	Log      logConfig      `mapstructure:"log"`
	Simulate simulateConfig `mapstructure:"simulate"`

	logger *zap.Logger
}

type logConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

type simulateConfig struct {
	FPS           int           `mapstructure:"fps"`
	Frames        int           `mapstructure:"frames"`
	Fetch         bool          `mapstructure:"fetch"`
	MaxConcurrent int64         `mapstructure:"max_concurrent"`
	Settle        time.Duration `mapstructure:"settle"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.compress", false)
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 7)
	v.SetDefault("simulate.fps", 60)
	v.SetDefault("simulate.frames", 120)
	v.SetDefault("simulate.fetch", false)
	v.SetDefault("simulate.max_concurrent", 4)
	v.SetDefault("simulate.settle", 5*time.Second)
}

// loadConfig reads cfgFile (or ./revealctl.yaml when empty) and the
// environment into v.
func loadConfig(v *viper.Viper, cfgFile string) (*config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("revealctl")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("REVEAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Simulate.FPS <= 0 {
		return nil, fmt.Errorf("simulate.fps must be positive, got %d", cfg.Simulate.FPS)
	}
	return &cfg, nil
}

type configKeyType struct{}

var configKey configKeyType

func configFrom(ctx context.Context) *config {
	cfg, _ := ctx.Value(configKey).(*config)
	return cfg
}
