package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AppPort      int
	DatabaseURL  string
	QdrantHost   string
	QdrantPort   int
	EmbeddingURL string
	SettingsPath string
}

// Settings are the tunable recommender parameters, optionally overridden by a
// YAML file pointed at by RECOMMENDER_SETTINGS_PATH.
type Settings struct {
	LexicalWeight     float64  `yaml:"lexical_weight"`
	CategoricalWeight float64  `yaml:"categorical_weight"`
	TopN              int      `yaml:"top_n"`
	StopWords         []string `yaml:"stop_words"`
}

func Load() (*Config, error) {
	appPort, err := strconv.Atoi(getEnv("APP_PORT"))
	if err != nil {
		return nil, err
	}
	qdrantPort, err := strconv.Atoi(getEnv("QDRANT_PORT"))
	if err != nil {
		return nil, err
	}

	return &Config{
		AppPort:      appPort,
		DatabaseURL:  getEnv("DATABASE_URL"),
		QdrantHost:   getEnv("QDRANT_HOST"),
		QdrantPort:   qdrantPort,
		EmbeddingURL: getEnv("EMBEDDING_URL"),
		SettingsPath: os.Getenv("RECOMMENDER_SETTINGS_PATH"),
	}, nil
}

func DefaultSettings() Settings {
	return Settings{
		LexicalWeight:     0.7,
		CategoricalWeight: 0.3,
		TopN:              5,
	}
}

// LoadSettings reads the settings file at path, falling back to defaults when
// path is empty. The two weights must be positive and sum to 1 so that
// combined similarities stay bounded.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings file: %w", err)
	}

	if s.LexicalWeight <= 0 || s.CategoricalWeight <= 0 {
		return s, fmt.Errorf("feature weights must be positive, got %v and %v", s.LexicalWeight, s.CategoricalWeight)
	}
	if sum := s.LexicalWeight + s.CategoricalWeight; sum < 0.999 || sum > 1.001 {
		return s, fmt.Errorf("feature weights must sum to 1, got %v", sum)
	}
	if s.TopN <= 0 {
		s.TopN = 5
	}
	return s, nil
}

func getEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Environment variable %s is required but not set", key)
	}
	return value
}
