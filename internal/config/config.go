package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/KOFI-GYIMAH/github-digest/pkg/errors"
	"github.com/KOFI-GYIMAH/github-digest/pkg/logger"
	"github.com/joho/godotenv"
)

const (
	DefaultGitHubAPIURL  = "https://api.github.com"
	DefaultOpenAIBaseURL = "https://api.openai.com"
	DefaultOpenAIModel   = "gpt-4o-mini"
)

// Config is loaded once at process start and handed to every component.
type Config struct {
	GitHubToken   string
	GitHubUser    string
	GitHubAPIURL  string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	Workers       int
	RabbitMQURL   string
}

// * LoadConfiguration reads the configuration from the .env file and the
// * environment, applying defaults for everything optional.
func LoadConfiguration() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		GitHubToken:   os.Getenv("GITHUB_TOKEN"),
		GitHubUser:    os.Getenv("GITHUB_USERNAME"),
		GitHubAPIURL:  os.Getenv("GITHUB_API_URL"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   os.Getenv("OPENAI_MODEL"),
		RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
		Workers:       1,
	}

	if cfg.GitHubAPIURL == "" {
		cfg.GitHubAPIURL = DefaultGitHubAPIURL
	}

	if cfg.OpenAIBaseURL == "" {
		cfg.OpenAIBaseURL = DefaultOpenAIBaseURL
	}

	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = DefaultOpenAIModel
	}

	if raw := os.Getenv("WORKERS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, configError(fmt.Sprintf("WORKERS must be a positive integer, got %q", raw))
		}
		cfg.Workers = n
	}

	logger.Debug("env content loaded")
	return cfg, nil
}

// * Validate checks the secrets a pipeline needs. The report pipeline also
// * needs the model API key; the index pipeline does not.
func (c *Config) Validate(requireLLM bool) error {
	if c.GitHubToken == "" {
		return configError("GITHUB_TOKEN is required")
	}

	if c.GitHubUser == "" {
		return configError("GITHUB_USERNAME is required")
	}

	if requireLLM && c.OpenAIAPIKey == "" {
		return configError("OPENAI_API_KEY is required")
	}

	return nil
}

func configError(detail string) error {
	return errors.New(
		"CONFIG_ERROR",
		"Invalid configuration",
		detail,
		nil,
		errors.LevelFatal,
	)
}
