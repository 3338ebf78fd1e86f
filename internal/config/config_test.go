// file: internal/config/config_test.go
// version: 1.1.0
// guid: 1f2a3b4c-5d6e-7f8a-9b0c-1d2e3f4a5b15

package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestInitConfigDefaults(t *testing.T) {
	resetViper(t)
	InitConfig()

	assert.Equal(t, "localhost", AppConfig.Server.Host)
	assert.Equal(t, "8080", AppConfig.Server.Port)
	assert.Equal(t, 15*time.Second, AppConfig.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, AppConfig.Server.IdleTimeout)

	assert.Equal(t, "gpt-4o-mini", AppConfig.OpenAI.Model)
	assert.Equal(t, 20, AppConfig.OpenAI.RequestsPerMinute)
	assert.False(t, AppConfig.OpenAI.Enabled)

	assert.False(t, AppConfig.Matching.EnableFuzzy)
	assert.Equal(t, 0.7, AppConfig.Matching.FuzzyThreshold)
	assert.Equal(t, 50, AppConfig.Matching.MaxSearchRange)
	assert.Equal(t, 500, AppConfig.Matching.MatchCacheSize)
	assert.Equal(t, 2000, AppConfig.Matching.SimilarityCacheSize)
	assert.Equal(t, "minimal", AppConfig.Matching.ErrorLogLevel)
}

func TestInitConfigOverrides(t *testing.T) {
	resetViper(t)
	viper.Set("server.port", "9090")
	viper.Set("openai.api_key", "sk-test")
	viper.Set("matching.enable_fuzzy", true)
	viper.Set("matching.fuzzy_threshold", 0.85)
	InitConfig()

	assert.Equal(t, "9090", AppConfig.Server.Port)
	assert.True(t, AppConfig.OpenAI.Enabled)
	assert.True(t, AppConfig.Matching.EnableFuzzy)
	assert.Equal(t, 0.85, AppConfig.Matching.FuzzyThreshold)
}

func TestInitConfigInvalidThresholdFallsBack(t *testing.T) {
	resetViper(t)
	for _, bad := range []float64{0, -0.2, 1.5} {
		viper.Set("matching.fuzzy_threshold", bad)
		InitConfig()
		assert.Equal(t, 0.7, AppConfig.Matching.FuzzyThreshold, "threshold %v", bad)
	}
}
