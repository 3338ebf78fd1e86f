// file: internal/config/config.go
// version: 2.0.0
// guid: 5b6c7d8e-9f0a-1b2c-3d4e-5f6a7b8c9da5

package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server struct {
		Host         string
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		IdleTimeout  time.Duration
	}
	OpenAI struct {
		APIKey            string
		Model             string
		Enabled           bool
		RequestsPerMinute int
	}
	Matching struct {
		EnableFuzzy         bool
		FuzzyThreshold      float64
		MaxSearchRange      int
		MatchCacheSize      int
		SimilarityCacheSize int
		Debug               bool
		ErrorLogLevel       string
	}
}

var AppConfig Config

// InitConfig initializes the application configuration
func InitConfig() {
	// Set defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("openai.model", "gpt-4o-mini")
	viper.SetDefault("openai.requests_per_minute", 20)
	viper.SetDefault("matching.enable_fuzzy", false)
	viper.SetDefault("matching.fuzzy_threshold", 0.7)
	viper.SetDefault("matching.max_search_range", 50)
	viper.SetDefault("matching.match_cache_size", 500)
	viper.SetDefault("matching.similarity_cache_size", 2000)
	viper.SetDefault("matching.error_log_level", "minimal")

	AppConfig.Server.Host = viper.GetString("server.host")
	AppConfig.Server.Port = viper.GetString("server.port")
	AppConfig.Server.ReadTimeout = viper.GetDuration("server.read_timeout")
	AppConfig.Server.WriteTimeout = viper.GetDuration("server.write_timeout")
	AppConfig.Server.IdleTimeout = viper.GetDuration("server.idle_timeout")

	AppConfig.OpenAI.APIKey = viper.GetString("openai.api_key")
	AppConfig.OpenAI.Model = viper.GetString("openai.model")
	AppConfig.OpenAI.RequestsPerMinute = viper.GetInt("openai.requests_per_minute")
	AppConfig.OpenAI.Enabled = AppConfig.OpenAI.APIKey != ""

	AppConfig.Matching.EnableFuzzy = viper.GetBool("matching.enable_fuzzy")
	AppConfig.Matching.FuzzyThreshold = viper.GetFloat64("matching.fuzzy_threshold")
	AppConfig.Matching.MaxSearchRange = viper.GetInt("matching.max_search_range")
	AppConfig.Matching.MatchCacheSize = viper.GetInt("matching.match_cache_size")
	AppConfig.Matching.SimilarityCacheSize = viper.GetInt("matching.similarity_cache_size")
	AppConfig.Matching.Debug = viper.GetBool("matching.debug")
	AppConfig.Matching.ErrorLogLevel = viper.GetString("matching.error_log_level")

	if AppConfig.Matching.FuzzyThreshold <= 0 || AppConfig.Matching.FuzzyThreshold > 1 {
		AppConfig.Matching.FuzzyThreshold = 0.7
	}
}
