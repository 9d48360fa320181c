package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	configFileKey  = "config-file"
	logLevelKey    = "log-level"
	concurrencyKey = "concurrency"
	suffixKey      = "suffix"
	forceKey       = "force"
	stdoutKey      = "stdout"
	maxSizeKey     = "max-size"
	metricsKey     = "metrics"

	envPrefix = "bpe"
)

var (
	errInvalidConcurrency = errors.New("concurrency must be positive")
	errEmptySuffix        = errors.New("suffix must not be empty")
)

type Config struct {
	LogLevel    zapcore.Level
	Concurrency int
	Suffix      string
	Force       bool
	Stdout      bool
	MaxSize     int64
	Metrics     bool
}

func addFlags(fs *pflag.FlagSet) {
	fs.String(configFileKey, "", "Path to a config file (yaml, json or toml)")
	fs.String(logLevelKey, "info", "Log level: debug, info, warn or error")
	fs.IntP(concurrencyKey, "c", 4, "Number of files processed at once")
	fs.StringP(suffixKey, "S", ".bpe", "Suffix of compressed files")
	fs.BoolP(forceKey, "f", false, "Overwrite existing output files")
	fs.Bool(stdoutKey, false, "Write output to stdout instead of files")
	fs.Int64(maxSizeKey, 1<<30, "Largest file accepted, compressed or not, in bytes")
	fs.Bool(metricsKey, false, "Log a summary of codec metrics on exit")
}

// newViper binds fs and BPE_* environment variables, then reads the config
// file if one is given.
func newViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if path := v.GetString(configFileKey); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("couldn't read config file %q: %w", path, err)
		}
	}
	return v, nil
}

func getConfig(v *viper.Viper) (Config, error) {
	config := Config{
		Concurrency: v.GetInt(concurrencyKey),
		Suffix:      v.GetString(suffixKey),
		Force:       v.GetBool(forceKey),
		Stdout:      v.GetBool(stdoutKey),
		MaxSize:     v.GetInt64(maxSizeKey),
		Metrics:     v.GetBool(metricsKey),
	}
	if err := config.LogLevel.UnmarshalText([]byte(v.GetString(logLevelKey))); err != nil {
		return Config{}, err
	}
	if config.Concurrency <= 0 {
		return Config{}, fmt.Errorf("%w: %d", errInvalidConcurrency, config.Concurrency)
	}
	if config.Suffix == "" {
		return Config{}, errEmptySuffix
	}
	return config, nil
}
