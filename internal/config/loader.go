package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultQuestionsFile    = "trivia_questions.json"
	DefaultQuestionsPerGame = 5
)

// LoadConfig reads trivia.yaml from configPath (if set), the working directory or
// ./config. A missing file is fine: every key has a default. Environment variables
// prefixed with TRIVIA_ override file values, e.g. TRIVIA_SERVER_LOCAL_PORT.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.local.host", "localhost")
	v.SetDefault("server.local.port", 5001)
	v.SetDefault("server.remote.host", "0.0.0.0")
	v.SetDefault("server.remote.port", 5001)
	v.SetDefault("client.local.host", "localhost")
	v.SetDefault("client.local.port", 5001)
	v.SetDefault("client.remote.host", "")
	v.SetDefault("client.remote.port", -1)
	v.SetDefault("questionsFile", DefaultQuestionsFile)
	v.SetDefault("questionsPerGame", DefaultQuestionsPerGame)
	v.SetDefault("logLevel", "info")

	v.SetConfigName("trivia")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	// default config path
	v.AddConfigPath(".")
	v.AddConfigPath("config")

	v.SetEnvPrefix("TRIVIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validateConfig(config *Config) error {
	if config.QuestionsFile == "" {
		return fmt.Errorf("questionsFile must not be empty")
	}

	if config.QuestionsPerGame <= 0 {
		return fmt.Errorf("questionsPerGame must be positive, got %d", config.QuestionsPerGame)
	}

	// The remote client endpoint ships unconfigured, so only the server side is checked.
	for name, ep := range map[string]Endpoint{
		"server.local":  config.Server.Local,
		"server.remote": config.Server.Remote,
	} {
		if !ep.Configured() {
			return fmt.Errorf("invalid port %d for %s", ep.Port, name)
		}
	}

	return nil
}
