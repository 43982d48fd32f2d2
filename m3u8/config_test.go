package m3u8

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	require.NotNil(t, config.Parser)
	assert.False(t, config.Parser.Strict)
	require.NotNil(t, config.Logging)
	assert.Equal(t, "warn", config.Logging.Level)
	assert.NoError(t, config.Validate())
}

func TestParseConfig(t *testing.T) {
	t.Run("overrides layer over defaults", func(t *testing.T) {
		config, err := ParseConfig([]byte("parser:\n  strict: true\n"))

		require.NoError(t, err)
		assert.True(t, config.Parser.Strict)
		assert.Equal(t, "warn", config.Logging.Level)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := ParseConfig([]byte("parser: [not a mapping"))

		assert.Error(t, err)
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, err := ParseConfig([]byte("logging:\n  level: loud\n"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("testdata/does-not-exist.yaml")

	assert.Error(t, err)
}
