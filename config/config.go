package config

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/tranvd/ragchat-be/types"
)

type Config struct {
	Port              string          `mapstructure:"port"`
	AIProvider        string          `mapstructure:"ai_provider"`
	AIEndpoint        string          `mapstructure:"ai_endpoint"`
	Model             string          `mapstructure:"model"`
	OpenAIAPIKey      string          `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKeys     []string        `mapstructure:"gemini_api_keys"`
	MongoURI          string          `mapstructure:"MONGODB_URI"`
	EnablePersistence bool            `mapstructure:"enable_persistence"`
	RAGConfig         types.RAGConfig `mapstructure:"rag_config"`
	SearchConfig      SearchConfig    `mapstructure:"search_config"`
}

type SearchConfig struct {
	APIKey   string `mapstructure:"GOOGLE_SEARCH_API_KEY"`
	EngineID string `mapstructure:"engine_id"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("MONGODB_URI")
	v.BindEnv("search_config.GOOGLE_SEARCH_API_KEY", "GOOGLE_SEARCH_API_KEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
